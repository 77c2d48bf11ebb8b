package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
)

type WorkerRepo struct {
	db *gorm.DB
}

func (r *WorkerRepo) FindByWorkerID(workerID string) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.Where("worker_id = ?", workerID).First(&worker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

// EnsureExists registers workerID as an active worker when it has not been
// seen before.
func (r *WorkerRepo) EnsureExists(workerID string) error {
	worker, err := r.FindByWorkerID(workerID)
	if err != nil {
		return err
	}
	if worker != nil {
		return nil
	}
	return r.db.Create(&model.Worker{WorkerID: workerID, IsActive: true}).Error
}

func (r *WorkerRepo) SetActive(workerID string, active bool) error {
	result := r.db.Model(&model.Worker{}).
		Where("worker_id = ?", workerID).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *WorkerRepo) List() ([]model.Worker, error) {
	var workers []model.Worker
	err := r.db.Order("worker_id asc").Find(&workers).Error
	return workers, err
}

func (r *WorkerRepo) ActiveIDs() ([]string, error) {
	var ids []string
	err := r.db.Model(&model.Worker{}).
		Where("is_active = ?", true).
		Order("worker_id asc").
		Pluck("worker_id", &ids).Error
	return ids, err
}
