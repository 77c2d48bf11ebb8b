package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/config"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/store"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
)

// Seeds a demo dataset: two agencies with markup schedules, three workers
// with two weeks of timesheet history including an agency transfer and an
// overtime week.
func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Error("seed failed")
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	s, err := store.Open(cfg.DBDriver, cfg.DSN)
	if err != nil {
		return err
	}
	if err := s.AutoMigrate(); err != nil {
		return err
	}

	agencies := map[string]float64{
		"Eastline Staffing": 0.30,
		"Pacific Labor":     0.35,
	}
	for name, markup := range agencies {
		agency, err := s.AgencyAdmin().FindOrCreate(name)
		if err != nil {
			return err
		}
		if err := s.AgencyAdmin().AddMarkup(&model.AgencyMarkup{
			AgencyID:      agency.ID,
			Markup:        markup,
			EffectiveDate: utils.MustParseDate("2025-01-01"),
		}); err != nil {
			return err
		}
	}

	workers := []string{
		"WH-" + uuid.NewString()[:8],
		"WH-" + uuid.NewString()[:8],
		"WH-" + uuid.NewString()[:8],
	}

	week1 := []string{"2025-01-06", "2025-01-07", "2025-01-08", "2025-01-09", "2025-01-10"}
	week2 := []string{"2025-01-13", "2025-01-14", "2025-01-15", "2025-01-16", "2025-01-17"}

	var entries []model.TimesheetEntry
	for i, workerID := range workers {
		if err := s.Workers().EnsureExists(workerID); err != nil {
			return err
		}

		agency := "Eastline Staffing"
		for _, day := range week1 {
			entries = append(entries, entry(workerID, day, 8, 16.5, agency))
		}
		// The second worker transfers agencies in week 2; the third works
		// overtime.
		outHour := 16.5
		if i == 1 {
			agency = "Pacific Labor"
		}
		if i == 2 {
			outHour = 18.5
		}
		for _, day := range week2 {
			entries = append(entries, entry(workerID, day, 8, outHour, agency))
		}
	}
	if err := s.Entries().BulkInsert(entries); err != nil {
		return err
	}

	fmt.Printf("seeded %d agencies, %d workers, %d timesheet entries\n",
		len(agencies), len(workers), len(entries))
	return nil
}

func entry(workerID, day string, inHour, outHour float64, agency string) model.TimesheetEntry {
	d := utils.MustParseDate(day)
	return model.TimesheetEntry{
		WorkerID:     workerID,
		Date:         d,
		TimeIn:       d.Add(time.Duration(inHour * float64(time.Hour))),
		TimeOut:      d.Add(time.Duration(outHour * float64(time.Hour))),
		LunchMinutes: 30,
		Agency:       &agency,
	}
}
