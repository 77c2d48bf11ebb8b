package ingest

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/core"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
)

const (
	minShiftHours   = 0.5
	maxShiftHours   = 24.0
	maxLunchMinutes = 120
	defaultLunch    = 30
)

// TimesheetUpload is a fully validated timesheet file. Positions carries the
// optional per-worker position labels (already normalized) seen in the file,
// used to seed wage rate roles for first-time workers.
type TimesheetUpload struct {
	Entries   []model.TimesheetEntry
	Positions map[string]string
}

// ParseTimesheetCSV validates and converts a timesheet CSV upload. Any
// invalid row rejects the whole file with a ValidationError listing every
// problem.
func ParseTimesheetCSV(r io.Reader) (*TimesheetUpload, error) {
	records, err := utils.ParseCSV(r)
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return parseTimesheetRows(records)
}

// ParseTimesheetXLSX reads the first sheet of an Excel upload and applies
// the same validation as the CSV path.
func ParseTimesheetXLSX(r io.Reader) (*TimesheetUpload, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return parseTimesheetRows(rows)
}

func parseTimesheetRows(records [][]string) (*TimesheetUpload, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	idx := utils.HeaderIndex(records[0])
	if err := utils.RequireColumns(idx, "worker_id", "date", "time_in", "time_out", "agency"); err != nil {
		return nil, err
	}

	upload := &TimesheetUpload{Positions: map[string]string{}}
	verr := &ValidationError{}

	for i, row := range records[1:] {
		rowNum := i + 2 // 1-based, after the header

		entry, position, err := parseTimesheetRow(row, idx)
		if err != nil {
			verr.add(rowNum, "%v", err)
			continue
		}
		upload.Entries = append(upload.Entries, *entry)
		if position != "" {
			upload.Positions[entry.WorkerID] = core.NormalizePosition(position)
		}
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	if len(upload.Entries) == 0 {
		return nil, fmt.Errorf("file has no data rows")
	}
	return upload, nil
}

func parseTimesheetRow(row []string, idx map[string]int) (*model.TimesheetEntry, string, error) {
	workerID := utils.Field(row, idx, "worker_id")
	if workerID == "" {
		return nil, "", fmt.Errorf("worker_id is required")
	}

	date, err := utils.ParseFlexibleDate(utils.Field(row, idx, "date"))
	if err != nil {
		return nil, "", err
	}
	date = utils.DateOf(date)

	timeIn, err := utils.ParseClockTime(date, utils.Field(row, idx, "time_in"))
	if err != nil {
		return nil, "", fmt.Errorf("time_in: %v", err)
	}
	timeOut, err := utils.ParseClockTime(date, utils.Field(row, idx, "time_out"))
	if err != nil {
		return nil, "", fmt.Errorf("time_out: %v", err)
	}

	lunch := defaultLunch
	if raw := utils.Field(row, idx, "lunch_minutes"); raw != "" {
		lunch, err = strconv.Atoi(raw)
		if err != nil {
			return nil, "", fmt.Errorf("lunch_minutes must be an integer, got %q", raw)
		}
	}
	if lunch < 0 || lunch > maxLunchMinutes {
		return nil, "", fmt.Errorf("lunch_minutes %d out of range [0, %d]", lunch, maxLunchMinutes)
	}

	entry := &model.TimesheetEntry{
		WorkerID:     workerID,
		Date:         date,
		TimeIn:       timeIn,
		TimeOut:      timeOut,
		LunchMinutes: lunch,
	}
	if agency := utils.Field(row, idx, "agency"); agency != "" {
		entry.Agency = &agency
	}

	in, out := entry.Span()
	duration := out.Sub(in).Hours()
	if duration < minShiftHours || duration > maxShiftHours {
		return nil, "", fmt.Errorf("shift duration %.2fh outside [%.1fh, %.0fh]", duration, minShiftHours, maxShiftHours)
	}

	return entry, utils.Field(row, idx, "position"), nil
}
