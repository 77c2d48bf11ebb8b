package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
)

// MarkupBasis selects which markup a cost calculation applies to past work.
// Current mirrors the wage rate cache (today's contractual terms applied to
// all periods); Historical resolves the markup in effect on each entry's
// date. Callers must pick one explicitly.
type MarkupBasis string

const (
	MarkupBasisCurrent    MarkupBasis = "current"
	MarkupBasisHistorical MarkupBasis = "historical"
)

// AgencyCost is the labor cost attributed to one agency for one month.
type AgencyCost struct {
	Agency     string  `json:"agency"`
	Month      string  `json:"month"`
	TotalHours float64 `json:"total_hours"`
	TotalCost  float64 `json:"total_cost"`
}

// CostCalculator prices aggregated hours using the reconciled wage rates,
// falling back to position table defaults for workers without one.
type CostCalculator struct {
	stores Stores
	rates  *RateTable
	now    func() time.Time
}

func NewCostCalculator(stores Stores, rates *RateTable, now func() time.Time) *CostCalculator {
	if rates == nil {
		rates = DefaultRateTable()
	}
	if now == nil {
		now = time.Now
	}
	return &CostCalculator{stores: stores, rates: rates, now: now}
}

// AgencyCosts computes per-agency per-month labor cost:
// hours x base rate x (1 + markup).
func (c *CostCalculator) AgencyCosts(entries []model.TimesheetEntry, basis MarkupBasis) ([]AgencyCost, error) {
	if basis != MarkupBasisCurrent && basis != MarkupBasisHistorical {
		return nil, fmt.Errorf("invalid markup basis: %q", basis)
	}

	rateRows, err := c.stores.WageRates().All()
	if err != nil {
		return nil, err
	}
	rateByWorker := map[string]*model.WageRate{}
	for i := range rateRows {
		existing, ok := rateByWorker[rateRows[i].WorkerID]
		if !ok || rateRows[i].ID < existing.ID {
			rateByWorker[rateRows[i].WorkerID] = &rateRows[i]
		}
	}

	resolver := NewMarkupResolver(c.stores.Agencies())
	defaultRate, err := c.rates.StandardRate(PositionGeneralLabor)
	if err != nil {
		return nil, err
	}

	totals := map[agencyMonthKey]*AgencyCost{}
	for i := range entries {
		entry := &entries[i]
		wage := rateByWorker[entry.WorkerID]

		agency := entry.AgencyName()
		if agency == "" && wage != nil && wage.Agency != nil {
			agency = *wage.Agency
		}
		if agency == "" {
			continue
		}

		baseRate := defaultRate
		if wage != nil && wage.BaseRate != nil {
			baseRate = *wage.BaseRate
		}

		var markup float64
		switch {
		case basis == MarkupBasisHistorical:
			markup, err = resolver.ResolveMarkup(agency, utils.DateOf(entry.Date))
		case wage != nil && wage.Markup != nil:
			markup = *wage.Markup
		default:
			markup, err = resolver.ResolveMarkup(agency, utils.DateOf(c.now()))
		}
		if err != nil {
			return nil, err
		}

		hours := DailyHours(entry)
		bucket := agencyMonthKey{agency: agency, month: utils.MonthKey(entry.Date)}
		cost, ok := totals[bucket]
		if !ok {
			cost = &AgencyCost{Agency: agency, Month: bucket.month}
			totals[bucket] = cost
		}
		cost.TotalHours += hours
		cost.TotalCost += hours * baseRate * (1 + markup)
	}

	costs := make([]AgencyCost, 0, len(totals))
	for _, cost := range totals {
		costs = append(costs, *cost)
	}
	sort.Slice(costs, func(i, j int) bool {
		if costs[i].Agency != costs[j].Agency {
			return costs[i].Agency < costs[j].Agency
		}
		return costs[i].Month < costs[j].Month
	})
	return costs, nil
}
