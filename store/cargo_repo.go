package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
)

type CargoRepo struct {
	db *gorm.DB
}

func (r *CargoRepo) BulkInsert(rows []model.CargoVolume) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.CreateInBatches(rows, 200).Error
}

func (r *CargoRepo) All() ([]model.CargoVolume, error) {
	var rows []model.CargoVolume
	err := r.db.Order("date asc, id asc").Find(&rows).Error
	return rows, err
}

func (r *CargoRepo) Between(from, to time.Time) ([]model.CargoVolume, error) {
	var rows []model.CargoVolume
	err := r.db.Where("date >= ? AND date <= ?", from, to).
		Order("date asc, id asc").
		Find(&rows).Error
	return rows, err
}
