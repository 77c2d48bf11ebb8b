package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/core"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
)

func newHistory(e *env) *core.History {
	return core.NewHistory(e.store.Timesheets(), e.store.WageRates(), fixedNow)
}

func TestHireDate(t *testing.T) {
	e := newEnv(t)
	e.addEntry(t, "W001", "2025-03-10", "Agency A")
	e.addEntry(t, "W001", "2025-01-06", "Agency A")

	hire, err := newHistory(e).HireDate("W001")
	require.NoError(t, err)
	assert.True(t, utils.SameDate(utils.MustParseDate("2025-01-06"), hire))
}

func TestHireDateWithoutHistoryIsToday(t *testing.T) {
	e := newEnv(t)

	hire, err := newHistory(e).HireDate("W001")
	require.NoError(t, err)
	assert.True(t, utils.SameDate(testToday, hire))
}

func TestCurrentAgencyPicksMostRecent(t *testing.T) {
	e := newEnv(t)
	e.addEntry(t, "W001", "2025-01-06", "Agency A")
	e.addEntry(t, "W001", "2025-02-03", "Agency B")
	e.addEntry(t, "W001", "2025-02-10", "")

	agency, err := newHistory(e).CurrentAgency("W001")
	require.NoError(t, err)
	assert.Equal(t, "Agency B", agency)
}

func TestAgencyPeriods(t *testing.T) {
	e := newEnv(t)
	e.addEntry(t, "W001", "2025-01-06", "Agency A")
	e.addEntry(t, "W001", "2025-01-07", "Agency A")
	e.addEntry(t, "W001", "2025-01-08", "")
	e.addEntry(t, "W001", "2025-02-03", "Agency B")
	e.addEntry(t, "W001", "2025-03-03", "Agency A")

	periods, err := newHistory(e).AgencyPeriods("W001")
	require.NoError(t, err)
	require.Len(t, periods, 3)

	assert.Equal(t, "Agency A", periods[0].Agency)
	assert.True(t, utils.SameDate(utils.MustParseDate("2025-01-06"), periods[0].StartDate))
	assert.Equal(t, "Agency B", periods[1].Agency)
	assert.True(t, utils.SameDate(utils.MustParseDate("2025-02-03"), periods[1].StartDate))
	assert.Equal(t, "Agency A", periods[2].Agency)
	assert.True(t, utils.SameDate(utils.MustParseDate("2025-03-03"), periods[2].StartDate))
}

func TestResolveMarkupUnregisteredAgency(t *testing.T) {
	e := newEnv(t)

	markup, err := core.NewMarkupResolver(e.store.Agencies()).ResolveMarkup("Nobody", testToday)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, markup, 1e-9)
}

func TestResolveMarkupSchedule(t *testing.T) {
	e := newEnv(t)
	e.addMarkup(t, "Agency A", 0.30, "2025-01-01")
	e.addMarkup(t, "Agency A", 0.35, "2025-06-01")

	resolver := core.NewMarkupResolver(e.store.Agencies())

	markup, err := resolver.ResolveMarkup("Agency A", utils.MustParseDate("2025-03-15"))
	require.NoError(t, err)
	assert.InDelta(t, 0.30, markup, 1e-9)

	markup, err = resolver.ResolveMarkup("Agency A", utils.MustParseDate("2025-07-01"))
	require.NoError(t, err)
	assert.InDelta(t, 0.35, markup, 1e-9)

	// Before the schedule starts there is nothing in effect.
	markup, err = resolver.ResolveMarkup("Agency A", utils.MustParseDate("2024-06-01"))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, markup, 1e-9)
}
