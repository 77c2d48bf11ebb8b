package model

import "time"

// TimesheetEntry is one raw clock-in/clock-out record as ingested from a
// timesheet upload. It is the source of truth for hire dates and agency
// transfer history.
type TimesheetEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	WorkerID     string    `gorm:"size:100;not null;index" json:"worker_id"`
	Date         time.Time `gorm:"type:date;not null;index" json:"date"`
	TimeIn       time.Time `gorm:"not null" json:"time_in"`
	TimeOut      time.Time `gorm:"not null" json:"time_out"`
	LunchMinutes int       `gorm:"not null;default:30" json:"lunch_minutes"`
	Agency       *string   `gorm:"size:100;index" json:"agency"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TimesheetEntry) TableName() string {
	return "timesheet_entries"
}

// Span returns the clock-in and clock-out instants with the overnight
// correction applied: a clock-out at or before the clock-in time is treated
// as a next-day checkout.
func (e *TimesheetEntry) Span() (time.Time, time.Time) {
	out := e.TimeOut
	if !out.After(e.TimeIn) {
		out = out.Add(24 * time.Hour)
	}
	return e.TimeIn, out
}

// AgencyName returns the agency string or "" when the entry has none.
func (e *TimesheetEntry) AgencyName() string {
	if e.Agency == nil {
		return ""
	}
	return *e.Agency
}
