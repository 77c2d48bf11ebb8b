package model

import "time"

// WageRate is the authoritative pay-rate record for a worker. The
// reconciliation engine keeps exactly one row per worker: effective_date is
// the hire date, agency is the worker's most recent agency, markup is the
// schedule value as of today. A base rate that deviates from the position
// standard by more than one cent is a manual override and survives
// reconciliation.
type WageRate struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	WorkerID      string     `gorm:"size:100;not null;index" json:"worker_id"`
	BaseRate      *float64   `json:"base_rate"`
	Role          *string    `gorm:"size:100" json:"role"`
	Agency        *string    `gorm:"size:100" json:"agency"`
	Markup        *float64   `json:"markup"`
	EffectiveDate *time.Time `gorm:"type:date" json:"effective_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (WageRate) TableName() string {
	return "wage_rates"
}

// Complete reports whether every resolvable field has a value.
func (w *WageRate) Complete() bool {
	return w.Role != nil && w.BaseRate != nil && w.Markup != nil && w.EffectiveDate != nil
}

// TotalRate is the billed hourly rate: base rate plus the agency markup.
// Returns 0 when the base rate is unresolved.
func (w *WageRate) TotalRate() float64 {
	if w.BaseRate == nil {
		return 0
	}
	markup := 0.0
	if w.Markup != nil {
		markup = *w.Markup
	}
	return *w.BaseRate * (1 + markup)
}
