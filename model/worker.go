package model

import "time"

// Worker identity. WorkerID doubles as the display name and is the key used
// across timesheet and wage rate records.
type Worker struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	WorkerID string  `gorm:"size:100;uniqueIndex;not null" json:"worker_id"`
	Name     *string `gorm:"size:200" json:"name"`
	IsActive bool    `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Worker) TableName() string {
	return "workers"
}

func (w *Worker) DisplayName() string {
	if w.Name != nil && *w.Name != "" {
		return *w.Name
	}
	return w.WorkerID
}
