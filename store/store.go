package store

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/core"
	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
)

// Store bundles the gorm-backed repositories. It satisfies core.Stores so
// the reconciliation engine can run every batch inside one transaction.
type Store struct {
	db *gorm.DB
}

// Open connects using the configured driver: "sqlite" for a local file or
// in-memory database, "mysql" for a server DSN.
func Open(driver, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver: %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return New(db), nil
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(
		&model.Worker{},
		&model.TimesheetEntry{},
		&model.WageRate{},
		&model.Agency{},
		&model.AgencyMarkup{},
		&model.CargoVolume{},
	)
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Timesheets() core.TimesheetStore {
	return &TimesheetRepo{db: s.db}
}

func (s *Store) WageRates() core.WageRateStore {
	return &WageRateRepo{db: s.db}
}

func (s *Store) Agencies() core.AgencyStore {
	return &AgencyRepo{db: s.db}
}

func (s *Store) Workers() *WorkerRepo {
	return &WorkerRepo{db: s.db}
}

func (s *Store) Cargo() *CargoRepo {
	return &CargoRepo{db: s.db}
}

// EntryRepo exposes the full timesheet repository, beyond the read surface
// core needs.
func (s *Store) Entries() *TimesheetRepo {
	return &TimesheetRepo{db: s.db}
}

// AgencyAdmin exposes the markup schedule administration methods.
func (s *Store) AgencyAdmin() *AgencyRepo {
	return &AgencyRepo{db: s.db}
}

// Transaction runs fn with a Store bound to a single database transaction.
// Any error from fn rolls the transaction back.
func (s *Store) Transaction(fn func(tx core.Stores) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// WithinTransaction is Transaction with the concrete store type, for callers
// that need repositories beyond the core interfaces.
func (s *Store) WithinTransaction(fn func(tx *Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
