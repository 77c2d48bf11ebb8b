package core

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
)

// DedupResult reports which duplicate wage rate rows were removed for a
// worker and the follow-up reconciliation of the surviving row.
type DedupResult struct {
	WorkerID   string        `json:"worker_id"`
	KeptID     uint          `json:"kept_id"`
	RemovedIDs []uint        `json:"removed_ids,omitempty"`
	Result     *WorkerResult `json:"result,omitempty"`
}

// Analysis is a snapshot of wage rate table health taken before a batch run.
type Analysis struct {
	TotalRows        int            `json:"total_rows"`
	UniqueWorkers    int            `json:"unique_workers"`
	CompleteRows     int            `json:"complete_rows"`
	IncompleteRows   int            `json:"incomplete_rows"`
	DuplicateWorkers map[string]int `json:"duplicate_workers,omitempty"`
}

// Analyze summarizes the current wage rate table without mutating anything.
func (r *Reconciler) Analyze() (*Analysis, error) {
	rows, err := r.stores.WageRates().All()
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{
		TotalRows:        len(rows),
		DuplicateWorkers: map[string]int{},
	}
	perWorker := utils.GroupBy(rows, func(w model.WageRate) string { return w.WorkerID })
	analysis.UniqueWorkers = len(perWorker)
	for workerID, group := range perWorker {
		if len(group) > 1 {
			analysis.DuplicateWorkers[workerID] = len(group)
		}
	}
	for i := range rows {
		if rows[i].Complete() {
			analysis.CompleteRows++
		} else {
			analysis.IncompleteRows++
		}
	}
	return analysis, nil
}

// Deduplicate collapses multiple wage rate rows for one worker down to the
// best-scoring row, deletes the rest, and reconciles the survivor. With a
// single row it goes straight to reconciliation.
func (r *Reconciler) Deduplicate(workerID string, dryRun bool) (*DedupResult, error) {
	var result *DedupResult
	err := r.stores.Transaction(func(tx Stores) error {
		var err error
		result, err = r.deduplicate(tx, workerID)
		if err != nil {
			return err
		}
		if dryRun {
			return errDryRun
		}
		return nil
	})
	if errors.Is(err, errDryRun) {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeduplicateAll runs Deduplicate for every worker that currently has more
// than one wage rate row, in one transaction.
func (r *Reconciler) DeduplicateAll(dryRun bool) ([]DedupResult, error) {
	var results []DedupResult
	err := r.stores.Transaction(func(tx Stores) error {
		rows, err := tx.WageRates().All()
		if err != nil {
			return err
		}
		perWorker := utils.GroupBy(rows, func(w model.WageRate) string { return w.WorkerID })

		var workerIDs []string
		for workerID, group := range perWorker {
			if len(group) > 1 {
				workerIDs = append(workerIDs, workerID)
			}
		}
		sort.Strings(workerIDs)

		for _, workerID := range workerIDs {
			result, err := r.deduplicate(tx, workerID)
			if err != nil {
				if isDomainError(err) {
					continue
				}
				return err
			}
			results = append(results, *result)
		}

		if dryRun {
			return errDryRun
		}
		return nil
	})
	if errors.Is(err, errDryRun) {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Reconciler) deduplicate(tx Stores, workerID string) (*DedupResult, error) {
	rows, err := tx.WageRates().ForWorker(workerID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		recResult, err := r.reconcile(tx, workerID)
		if err != nil {
			return nil, err
		}
		return &DedupResult{WorkerID: workerID, KeptID: recResult.Rate.ID, Result: recResult}, nil
	}

	best := selectBestRate(rows, utils.DateOf(r.now()))

	result := &DedupResult{WorkerID: workerID, KeptID: best.ID}
	for i := range rows {
		if rows[i].ID == best.ID {
			continue
		}
		if err := tx.WageRates().Delete(rows[i].ID); err != nil {
			return nil, err
		}
		result.RemovedIDs = append(result.RemovedIDs, rows[i].ID)
	}

	recResult, err := r.reconcile(tx, workerID)
	if err != nil {
		return nil, err
	}
	result.Result = recResult
	return result, nil
}

// selectBestRate applies the completeness-plus-recency score; ties keep the
// first-created (lowest id) row so repeated runs always pick the same winner.
func selectBestRate(rows []model.WageRate, today time.Time) model.WageRate {
	best := rows[0]
	bestScore := scoreRate(&rows[0], today)
	for i := 1; i < len(rows); i++ {
		score := scoreRate(&rows[i], today)
		if score > bestScore || (score == bestScore && rows[i].ID < best.ID) {
			best = rows[i]
			bestScore = score
		}
	}
	return best
}

// scoreRate awards 10 points per populated field and up to 5 recency points
// that decay linearly over a year from the effective date.
func scoreRate(rate *model.WageRate, today time.Time) float64 {
	score := 0.0
	if rate.Role != nil {
		score += 10
	}
	if rate.BaseRate != nil {
		score += 10
	}
	if rate.Markup != nil {
		score += 10
	}
	if rate.EffectiveDate != nil {
		score += 10
		days := today.Sub(utils.DateOf(*rate.EffectiveDate)).Hours() / 24
		score += math.Max(0, 365-days) / 365 * 5
	}
	return score
}
