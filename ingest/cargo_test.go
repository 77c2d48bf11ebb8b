package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
)

func TestParseCargoCSV(t *testing.T) {
	csv := strings.Join([]string{
		"Date,MAWB,Carton Number",
		"01/06/2025,160-12345675,120",
		"1/7/25,160-99887766,45",
	}, "\n")

	rows, err := ParseCargoCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.True(t, utils.SameDate(utils.MustParseDate("2025-01-06"), rows[0].Date))
	assert.Equal(t, "160-12345675", rows[0].MAWB)
	assert.Equal(t, 120, rows[0].CartonNumber)
	assert.True(t, utils.SameDate(utils.MustParseDate("2025-01-07"), rows[1].Date))
}

func TestParseCargoCSVMissingColumn(t *testing.T) {
	csv := "Date,MAWB\n01/06/2025,160-12345675"
	_, err := ParseCargoCSV(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Carton Number")
}

func TestParseCargoCSVInvalidRows(t *testing.T) {
	csv := strings.Join([]string{
		"Date,MAWB,Carton Number",
		"2025-01-06,160-12345675,120",
		"01/07/2025,,45",
		"01/08/2025,160-11112222,-3",
	}, "\n")

	_, err := ParseCargoCSV(strings.NewReader(csv))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Rows, 3)
	assert.Equal(t, 2, verr.Rows[0].Row)
	assert.Equal(t, 3, verr.Rows[1].Row)
	assert.Equal(t, 4, verr.Rows[2].Row)
}
