package store

import (
	"gorm.io/gorm"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
)

type WageRateRepo struct {
	db *gorm.DB
}

func (r *WageRateRepo) ForWorker(workerID string) ([]model.WageRate, error) {
	var rates []model.WageRate
	err := r.db.Where("worker_id = ?", workerID).
		Order("id asc").
		Find(&rates).Error
	return rates, err
}

func (r *WageRateRepo) All() ([]model.WageRate, error) {
	var rates []model.WageRate
	err := r.db.Order("worker_id asc, id asc").Find(&rates).Error
	return rates, err
}

func (r *WageRateRepo) FindByID(id uint) (*model.WageRate, error) {
	var rate model.WageRate
	if err := r.db.First(&rate, id).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *WageRateRepo) Create(rate *model.WageRate) error {
	return r.db.Create(rate).Error
}

func (r *WageRateRepo) Save(rate *model.WageRate) error {
	return r.db.Save(rate).Error
}

func (r *WageRateRepo) Delete(id uint) error {
	return r.db.Delete(&model.WageRate{}, id).Error
}
