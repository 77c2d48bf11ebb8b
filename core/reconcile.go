package core

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/utils"
)

// Base rates within a cent of the standard are the standard; anything past
// that is a deliberate override.
const overrideTolerance = 0.01

// markupTolerance matches the precision markup fractions are entered with.
const markupTolerance = 0.001

// errDryRun forces the surrounding transaction to roll back after a dry run
// has computed its diff.
var errDryRun = errors.New("dry run rollback")

// Reconciler brings wage rate records into their canonical state: one row
// per worker, effective from the hire date, carrying the worker's current
// agency and that agency's markup as of today. Markup is deliberately
// resolved against today rather than the entry dates: the cached record
// reflects current billing terms.
type Reconciler struct {
	stores Stores
	rates  *RateTable
	now    func() time.Time
}

func NewReconciler(stores Stores, rates *RateTable, now func() time.Time) *Reconciler {
	if rates == nil {
		rates = DefaultRateTable()
	}
	if now == nil {
		now = time.Now
	}
	return &Reconciler{stores: stores, rates: rates, now: now}
}

type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionUnchanged Action = "unchanged"
)

// FieldChange is one entry of a reconciliation diff.
type FieldChange struct {
	Field string `json:"field"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// WorkerResult reports what reconciliation did (or, under dry run, would do)
// for one worker.
type WorkerResult struct {
	WorkerID          string         `json:"worker_id"`
	Action            Action         `json:"action"`
	Changes           []FieldChange  `json:"changes,omitempty"`
	OverridePreserved bool           `json:"override_preserved"`
	Rate              model.WageRate `json:"rate"`
}

// WorkerError is one worker's failure inside a batch run.
type WorkerError struct {
	WorkerID string `json:"worker_id"`
	Message  string `json:"error"`
}

// Summary is the outcome of a batch reconciliation.
type Summary struct {
	Created   int            `json:"created"`
	Updated   int            `json:"updated"`
	Unchanged int            `json:"unchanged"`
	Errors    []WorkerError  `json:"errors,omitempty"`
	Results   []WorkerResult `json:"results,omitempty"`
}

// ReconcileWorker reconciles a single worker inside its own transaction.
// Under dryRun the transaction is rolled back and the returned result
// describes what would have changed.
func (r *Reconciler) ReconcileWorker(workerID string, dryRun bool) (*WorkerResult, error) {
	var result *WorkerResult
	err := r.stores.Transaction(func(tx Stores) error {
		var err error
		result, err = r.reconcile(tx, workerID)
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

// ReconcileAll reconciles every worker with timesheet history in one
// transaction. Per-worker domain failures are collected and do not abort the
// batch; a storage failure rolls the whole batch back. Dry runs always roll
// back.
func (r *Reconciler) ReconcileAll(dryRun bool) (*Summary, error) {
	summary := &Summary{}
	err := r.stores.Transaction(func(tx Stores) error {
		workerIDs, err := tx.Timesheets().WorkerIDs()
		if err != nil {
			return fmt.Errorf("list workers: %w", err)
		}
		sort.Strings(workerIDs)

		for _, workerID := range workerIDs {
			result, err := r.reconcile(tx, workerID)
			if err != nil {
				if isDomainError(err) {
					summary.Errors = append(summary.Errors, WorkerError{WorkerID: workerID, Message: err.Error()})
					continue
				}
				return err
			}
			switch result.Action {
			case ActionCreated:
				summary.Created++
			case ActionUpdated:
				summary.Updated++
			default:
				summary.Unchanged++
			}
			summary.Results = append(summary.Results, *result)
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
	return summary, nil
}

// reconcile runs the resolution steps for one worker against transactional
// stores and persists the outcome. Callers own the dry-run rollback.
func (r *Reconciler) reconcile(tx Stores, workerID string) (*WorkerResult, error) {
	hist := NewHistory(tx.Timesheets(), tx.WageRates(), r.now)

	hireDate, err := hist.HireDate(workerID)
	if err != nil {
		return nil, err
	}
	agency, err := hist.CurrentAgency(workerID)
	if err != nil {
		return nil, err
	}
	if agency == "" {
		return nil, &UnresolvableAgencyError{WorkerID: workerID}
	}

	rows, err := tx.WageRates().ForWorker(workerID)
	if err != nil {
		return nil, err
	}
	var existing *model.WageRate
	if len(rows) > 0 {
		// Lowest id is the authoritative row; extra rows are legacy
		// duplicates handled by Deduplicate.
		existing = &rows[0]
	}

	position := PositionGeneralLabor
	if existing != nil && existing.Role != nil && *existing.Role != "" {
		position = NormalizePosition(*existing.Role)
	}

	hasOverride := false
	overrideRate := 0.0
	if existing != nil && existing.BaseRate != nil && existing.Role != nil {
		standard, err := r.rates.StandardRate(NormalizePosition(*existing.Role))
		if err == nil && math.Abs(*existing.BaseRate-standard) > overrideTolerance {
			hasOverride = true
			overrideRate = *existing.BaseRate
		}
	}

	baseRate := overrideRate
	if !hasOverride {
		baseRate, err = r.rates.StandardRate(position)
		if err != nil {
			return nil, err
		}
	}

	markup, err := NewMarkupResolver(tx.Agencies()).ResolveMarkup(agency, utils.DateOf(r.now()))
	if err != nil {
		return nil, err
	}

	target := model.WageRate{
		WorkerID:      workerID,
		BaseRate:      utils.Ptr(baseRate),
		Role:          utils.Ptr(position),
		Agency:        utils.Ptr(agency),
		Markup:        utils.Ptr(markup),
		EffectiveDate: utils.Ptr(hireDate),
	}

	if existing == nil {
		if err := tx.WageRates().Create(&target); err != nil {
			return nil, err
		}
		return &WorkerResult{
			WorkerID: workerID,
			Action:   ActionCreated,
			Changes:  diffRates(&model.WageRate{WorkerID: workerID}, &target),
			Rate:     target,
		}, nil
	}

	changes := diffRates(existing, &target)
	if len(changes) == 0 {
		return &WorkerResult{
			WorkerID:          workerID,
			Action:            ActionUnchanged,
			OverridePreserved: hasOverride,
			Rate:              *existing,
		}, nil
	}

	existing.BaseRate = target.BaseRate
	existing.Role = target.Role
	existing.Agency = target.Agency
	existing.Markup = target.Markup
	existing.EffectiveDate = target.EffectiveDate
	if err := tx.WageRates().Save(existing); err != nil {
		return nil, err
	}

	return &WorkerResult{
		WorkerID:          workerID,
		Action:            ActionUpdated,
		Changes:           changes,
		OverridePreserved: hasOverride,
		Rate:              *existing,
	}, nil
}

func isDomainError(err error) bool {
	var unresolvable *UnresolvableAgencyError
	var unknownPos *UnknownPositionError
	return errors.As(err, &unresolvable) || errors.As(err, &unknownPos)
}

// diffRates lists the field changes needed to turn current into target.
// Float comparisons use the same tolerances as override detection so a
// no-op reconciliation reports no changes.
func diffRates(current, target *model.WageRate) []FieldChange {
	var changes []FieldChange

	if !floatPtrEqual(current.BaseRate, target.BaseRate, overrideTolerance) {
		changes = append(changes, FieldChange{Field: "base_rate", From: utils.Format(current.BaseRate), To: utils.Format(target.BaseRate)})
	}
	if !stringPtrEqual(current.Role, target.Role) {
		changes = append(changes, FieldChange{Field: "role", From: utils.Format(current.Role), To: utils.Format(target.Role)})
	}
	if !stringPtrEqual(current.Agency, target.Agency) {
		changes = append(changes, FieldChange{Field: "agency", From: utils.Format(current.Agency), To: utils.Format(target.Agency)})
	}
	if !floatPtrEqual(current.Markup, target.Markup, markupTolerance) {
		changes = append(changes, FieldChange{Field: "markup", From: utils.Format(current.Markup), To: utils.Format(target.Markup)})
	}
	if !datePtrEqual(current.EffectiveDate, target.EffectiveDate) {
		changes = append(changes, FieldChange{Field: "effective_date", From: formatDate(current.EffectiveDate), To: formatDate(target.EffectiveDate)})
	}
	return changes
}

func floatPtrEqual(a, b *float64, tolerance float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return math.Abs(*a-*b) <= tolerance
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func datePtrEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return utils.DateOf(*a).Equal(utils.DateOf(*b))
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
