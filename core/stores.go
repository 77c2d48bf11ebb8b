package core

import (
	"time"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
)

// TimesheetStore is the read surface over timesheet history that the
// reconciliation engine and aggregators need.
type TimesheetStore interface {
	// WorkerIDs lists the distinct worker ids with timesheet history.
	WorkerIDs() ([]string, error)
	// EntriesForWorker returns a worker's entries ordered by date ascending,
	// then id ascending.
	EntriesForWorker(workerID string) ([]model.TimesheetEntry, error)
	// FirstEntryDate is the worker's earliest entry date, nil without history.
	FirstEntryDate(workerID string) (*time.Time, error)
	// LatestAgency is the agency on the most recent entry that has one, ""
	// when no entry names an agency.
	LatestAgency(workerID string) (string, error)
}

// WageRateStore reads and mutates wage rate records.
type WageRateStore interface {
	// ForWorker returns a worker's wage rate rows ordered by id ascending.
	ForWorker(workerID string) ([]model.WageRate, error)
	All() ([]model.WageRate, error)
	Create(rate *model.WageRate) error
	Save(rate *model.WageRate) error
	Delete(id uint) error
}

// AgencyStore reads agency identities and their markup schedules.
type AgencyStore interface {
	// FindByName returns nil (not an error) for an unregistered agency.
	FindByName(name string) (*model.Agency, error)
	// MarkupAsOf returns the markup row with the greatest effective_date on
	// or before asOf, ties broken by highest id; nil when no row qualifies.
	MarkupAsOf(agencyID uint, asOf time.Time) (*model.AgencyMarkup, error)
}

// Stores bundles the repositories the engine operates on. Transaction runs fn
// against stores bound to a single database transaction; returning an error
// rolls the whole transaction back.
type Stores interface {
	Timesheets() TimesheetStore
	WageRates() WageRateStore
	Agencies() AgencyStore
	Transaction(fn func(tx Stores) error) error
}
