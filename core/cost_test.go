package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/core"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
)

func TestAgencyCostsCurrentBasis(t *testing.T) {
	e := newEnv(t)
	e.addMarkup(t, "Agency A", 0.30, "2025-01-01")
	e.addEntry(t, "W001", "2025-01-06", "Agency A")
	e.addEntry(t, "W001", "2025-01-07", "Agency A")
	e.addWageRate(t, model.WageRate{
		WorkerID: "W001",
		BaseRate: utils.Ptr(20.00),
		Role:     utils.Ptr(core.PositionGeneralLabor),
		Agency:   utils.Ptr("Agency A"),
		Markup:   utils.Ptr(0.30),
	})

	calc := core.NewCostCalculator(e.store, nil, fixedNow)
	entries, err := e.store.Entries().All()
	require.NoError(t, err)

	costs, err := calc.AgencyCosts(entries, core.MarkupBasisCurrent)
	require.NoError(t, err)
	require.Len(t, costs, 1)

	// 16 hours x 20.00 x 1.30
	assert.Equal(t, "Agency A", costs[0].Agency)
	assert.Equal(t, "2025-01", costs[0].Month)
	assert.InDelta(t, 16, costs[0].TotalHours, 1e-9)
	assert.InDelta(t, 416.00, costs[0].TotalCost, 1e-6)
}

func TestAgencyCostsHistoricalBasis(t *testing.T) {
	// The markup rises mid-period; historical basis prices each entry with
	// the markup in effect on its date.
	e := newEnv(t)
	e.addMarkup(t, "Agency A", 0.30, "2025-01-01")
	e.addMarkup(t, "Agency A", 0.50, "2025-02-01")
	e.addEntry(t, "W001", "2025-01-06", "Agency A")
	e.addEntry(t, "W001", "2025-02-03", "Agency A")
	e.addWageRate(t, model.WageRate{
		WorkerID: "W001",
		BaseRate: utils.Ptr(20.00),
		Markup:   utils.Ptr(0.50),
	})

	calc := core.NewCostCalculator(e.store, nil, fixedNow)
	entries, err := e.store.Entries().All()
	require.NoError(t, err)

	costs, err := calc.AgencyCosts(entries, core.MarkupBasisHistorical)
	require.NoError(t, err)
	require.Len(t, costs, 2)

	// January: 8h x 20.00 x 1.30; February: 8h x 20.00 x 1.50.
	assert.Equal(t, "2025-01", costs[0].Month)
	assert.InDelta(t, 208.00, costs[0].TotalCost, 1e-6)
	assert.Equal(t, "2025-02", costs[1].Month)
	assert.InDelta(t, 240.00, costs[1].TotalCost, 1e-6)
}

func TestAgencyCostsDefaultsForUnreconciledWorker(t *testing.T) {
	// No wage rate row: the general labor default and the live markup apply.
	e := newEnv(t)
	e.addMarkup(t, "Agency A", 0.25, "2025-01-01")
	e.addEntry(t, "W001", "2025-01-06", "Agency A")

	calc := core.NewCostCalculator(e.store, nil, fixedNow)
	entries, err := e.store.Entries().All()
	require.NoError(t, err)

	costs, err := calc.AgencyCosts(entries, core.MarkupBasisCurrent)
	require.NoError(t, err)
	require.Len(t, costs, 1)
	// 8h x 16.00 x 1.25
	assert.InDelta(t, 160.00, costs[0].TotalCost, 1e-6)
}

func TestAgencyCostsSkipsEntriesWithoutAgency(t *testing.T) {
	e := newEnv(t)
	e.addEntry(t, "W001", "2025-01-06", "")

	calc := core.NewCostCalculator(e.store, nil, fixedNow)
	entries, err := e.store.Entries().All()
	require.NoError(t, err)

	costs, err := calc.AgencyCosts(entries, core.MarkupBasisCurrent)
	require.NoError(t, err)
	assert.Empty(t, costs)
}

func TestAgencyCostsRejectsUnknownBasis(t *testing.T) {
	e := newEnv(t)
	calc := core.NewCostCalculator(e.store, nil, fixedNow)

	_, err := calc.AgencyCosts(nil, core.MarkupBasis("latest"))
	assert.Error(t, err)
}
