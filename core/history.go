package core

import (
	"time"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
)

// History derives hire dates and current agency affiliation from timesheet
// records. Timesheet history is the source of truth for both.
type History struct {
	entries TimesheetStore
	rates   WageRateStore
	now     func() time.Time
}

func NewHistory(entries TimesheetStore, rates WageRateStore, now func() time.Time) *History {
	if now == nil {
		now = time.Now
	}
	return &History{entries: entries, rates: rates, now: now}
}

// HireDate is the worker's earliest timesheet date. A worker with no history
// is treated as hired today.
func (h *History) HireDate(workerID string) (time.Time, error) {
	first, err := h.entries.FirstEntryDate(workerID)
	if err != nil {
		return time.Time{}, err
	}
	if first == nil {
		return utils.DateOf(h.now()), nil
	}
	return utils.DateOf(*first), nil
}

// CurrentAgency is the agency on the worker's most recent timesheet entry
// that names one. When the timesheets are silent it falls back to the agency
// on an existing wage rate record; "" means the agency is unresolvable.
func (h *History) CurrentAgency(workerID string) (string, error) {
	agency, err := h.entries.LatestAgency(workerID)
	if err != nil {
		return "", err
	}
	if agency != "" {
		return agency, nil
	}

	rates, err := h.rates.ForWorker(workerID)
	if err != nil {
		return "", err
	}
	if rate := utils.Find(rates, func(r model.WageRate) bool {
		return r.Agency != nil && *r.Agency != ""
	}); rate != nil {
		return *rate.Agency, nil
	}
	return "", nil
}

// AgencyPeriod is one contiguous stretch of a worker's history under a
// single agency, used for transfer audits.
type AgencyPeriod struct {
	WorkerID  string    `json:"worker_id"`
	Agency    string    `json:"agency"`
	StartDate time.Time `json:"start_date"`
}

// AgencyPeriods walks a worker's entries in date order and returns a period
// for every agency change. Entries without an agency do not open a period.
func (h *History) AgencyPeriods(workerID string) ([]AgencyPeriod, error) {
	entries, err := h.entries.EntriesForWorker(workerID)
	if err != nil {
		return nil, err
	}

	var periods []AgencyPeriod
	current := ""
	for _, e := range entries {
		agency := e.AgencyName()
		if agency == current {
			continue
		}
		current = agency
		if agency == "" {
			continue
		}
		periods = append(periods, AgencyPeriod{
			WorkerID:  workerID,
			Agency:    agency,
			StartDate: utils.DateOf(e.Date),
		})
	}
	return periods, nil
}
