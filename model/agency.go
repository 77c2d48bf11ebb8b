package model

import "time"

// Agency is a staffing agency workers are billed through.
type Agency struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	Markups []AgencyMarkup `gorm:"foreignKey:AgencyID" json:"markups,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Agency) TableName() string {
	return "agencies"
}

// AgencyMarkup is one point in an agency's markup time series. The markup in
// effect on a date D is the row with the greatest effective_date <= D.
type AgencyMarkup struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AgencyID      uint      `gorm:"not null;index" json:"agency_id"`
	Markup        float64   `gorm:"not null" json:"markup"`
	EffectiveDate time.Time `gorm:"type:date;not null" json:"effective_date"`

	CreatedAt time.Time `json:"created_at"`
}

func (AgencyMarkup) TableName() string {
	return "agency_markups"
}
