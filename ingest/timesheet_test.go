package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/core"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
)

func TestParseTimesheetCSV(t *testing.T) {
	csv := strings.Join([]string{
		"worker_id,date,time_in,time_out,agency,lunch_minutes,position",
		"W001,2025-01-06,08:00,16:30,Agency A,30,Forklift Driver",
		"W002,1/7/25,09:00,17:00,Agency B,,",
	}, "\n")

	upload, err := ParseTimesheetCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, upload.Entries, 2)

	first := upload.Entries[0]
	assert.Equal(t, "W001", first.WorkerID)
	assert.True(t, utils.SameDate(utils.MustParseDate("2025-01-06"), first.Date))
	assert.Equal(t, 8, first.TimeIn.Hour())
	assert.Equal(t, 16, first.TimeOut.Hour())
	assert.Equal(t, 30, first.TimeOut.Minute())
	assert.Equal(t, 30, first.LunchMinutes)
	require.NotNil(t, first.Agency)
	assert.Equal(t, "Agency A", *first.Agency)

	second := upload.Entries[1]
	assert.True(t, utils.SameDate(utils.MustParseDate("2025-01-07"), second.Date))
	assert.Equal(t, 30, second.LunchMinutes) // default when omitted

	assert.Equal(t, map[string]string{"W001": core.PositionForkliftDriver}, upload.Positions)
}

func TestParseTimesheetXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"worker_id", "date", "time_in", "time_out", "agency", "position"},
		{"W001", "2025-01-06", "08:00", "16:30", "Agency A", "Forklift Driver"},
		{"W002", "2025-01-06", "22:00", "06:00", "Agency B", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	upload, err := ParseTimesheetXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, upload.Entries, 2)

	first := upload.Entries[0]
	assert.Equal(t, "W001", first.WorkerID)
	assert.True(t, utils.SameDate(utils.MustParseDate("2025-01-06"), first.Date))
	assert.Equal(t, 8, first.TimeIn.Hour())
	assert.Equal(t, map[string]string{"W001": core.PositionForkliftDriver}, upload.Positions)

	// Overnight row survives the workbook round trip too.
	in, out := upload.Entries[1].Span()
	assert.InDelta(t, 8, out.Sub(in).Hours(), 1e-9)
}

func TestParseTimesheetXLSXRejectsBadRow(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"worker_id", "date", "time_in", "time_out", "agency"},
		{"W001", "not-a-date", "08:00", "16:30", "Agency A"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := ParseTimesheetXLSX(&buf)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Rows, 1)
	assert.Equal(t, 2, verr.Rows[0].Row)
}

func TestParseTimesheetCSVOvernightShift(t *testing.T) {
	csv := strings.Join([]string{
		"worker_id,date,time_in,time_out,agency",
		"W001,2025-01-06,22:00,06:00,Agency A",
	}, "\n")

	upload, err := ParseTimesheetCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, upload.Entries, 1)

	in, out := upload.Entries[0].Span()
	assert.InDelta(t, 8, out.Sub(in).Hours(), 1e-9)
}

func TestParseTimesheetCSVMissingColumn(t *testing.T) {
	csv := strings.Join([]string{
		"worker_id,date,time_in,agency",
		"W001,2025-01-06,08:00,Agency A",
	}, "\n")

	_, err := ParseTimesheetCSV(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time_out")
}

func TestParseTimesheetCSVRejectsWholeFile(t *testing.T) {
	// One bad row poisons the upload; both problems are reported.
	csv := strings.Join([]string{
		"worker_id,date,time_in,time_out,agency,lunch_minutes",
		"W001,2025-01-06,08:00,16:30,Agency A,30",
		"W002,2025-01-06,08:00,16:30,Agency A,200",
		"W003,not-a-date,08:00,16:30,Agency A,30",
	}, "\n")

	_, err := ParseTimesheetCSV(strings.NewReader(csv))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Rows, 2)
	assert.Equal(t, 3, verr.Rows[0].Row)
	assert.Contains(t, verr.Rows[0].Message, "lunch_minutes")
	assert.Equal(t, 4, verr.Rows[1].Row)
	assert.Contains(t, verr.Rows[1].Message, "date")
}

func TestParseTimesheetCSVShiftDurationBounds(t *testing.T) {
	tests := []struct {
		name string
		row  string
		ok   bool
	}{
		{"too short", "W001,2025-01-06,08:00,08:15,Agency A", false},
		{"minimum", "W001,2025-01-06,08:00,08:30,Agency A", true},
		{"normal", "W001,2025-01-06,08:00,16:30,Agency A", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := "worker_id,date,time_in,time_out,agency\n" + tt.row
			_, err := ParseTimesheetCSV(strings.NewReader(csv))
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseTimesheetCSVBadTime(t *testing.T) {
	csv := strings.Join([]string{
		"worker_id,date,time_in,time_out,agency",
		"W001,2025-01-06,8am,16:30,Agency A",
	}, "\n")

	_, err := ParseTimesheetCSV(strings.NewReader(csv))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Rows[0].Message, "time_in")
}

func TestParseTimesheetCSVEmptyFile(t *testing.T) {
	_, err := ParseTimesheetCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ParseTimesheetCSV(strings.NewReader("worker_id,date,time_in,time_out,agency\n"))
	assert.Error(t, err)
}
