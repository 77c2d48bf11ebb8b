package model

import "time"

// CargoVolume is one inbound cargo record, used to relate warehouse labor to
// cargo throughput.
type CargoVolume struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Date         time.Time `gorm:"type:date;not null;index" json:"date"`
	MAWB         string    `gorm:"size:64;not null;index;column:mawb" json:"mawb"`
	CartonNumber int       `gorm:"not null" json:"carton_number"`

	CreatedAt time.Time `json:"created_at"`
}

func (CargoVolume) TableName() string {
	return "cargo_volume"
}
