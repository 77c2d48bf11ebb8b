package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
)

type TimesheetRepo struct {
	db *gorm.DB
}

func (r *TimesheetRepo) WorkerIDs() ([]string, error) {
	var ids []string
	err := r.db.Model(&model.TimesheetEntry{}).
		Distinct("worker_id").
		Order("worker_id asc").
		Pluck("worker_id", &ids).Error
	return ids, err
}

func (r *TimesheetRepo) EntriesForWorker(workerID string) ([]model.TimesheetEntry, error) {
	var entries []model.TimesheetEntry
	err := r.db.Where("worker_id = ?", workerID).
		Order("date asc, id asc").
		Find(&entries).Error
	return entries, err
}

func (r *TimesheetRepo) FirstEntryDate(workerID string) (*time.Time, error) {
	var entry model.TimesheetEntry
	err := r.db.Where("worker_id = ?", workerID).
		Order("date asc, id asc").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry.Date, nil
}

func (r *TimesheetRepo) LatestAgency(workerID string) (string, error) {
	var entry model.TimesheetEntry
	err := r.db.Where("worker_id = ? AND agency IS NOT NULL AND agency != ''", workerID).
		Order("date desc, id desc").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return entry.AgencyName(), nil
}

func (r *TimesheetRepo) All() ([]model.TimesheetEntry, error) {
	var entries []model.TimesheetEntry
	err := r.db.Order("date asc, id asc").Find(&entries).Error
	return entries, err
}

func (r *TimesheetRepo) Between(from, to time.Time) ([]model.TimesheetEntry, error) {
	var entries []model.TimesheetEntry
	err := r.db.Where("date >= ? AND date <= ?", from, to).
		Order("date asc, id asc").
		Find(&entries).Error
	return entries, err
}

func (r *TimesheetRepo) FindByID(id uint) (*model.TimesheetEntry, error) {
	var entry model.TimesheetEntry
	if err := r.db.First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Exists reports whether an entry with the same worker, date, and clock-in
// is already stored. Uploads use it to skip rows from a re-submitted file.
func (r *TimesheetRepo) Exists(workerID string, date, timeIn time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&model.TimesheetEntry{}).
		Where("worker_id = ? AND date = ? AND time_in = ?", workerID, date, timeIn).
		Count(&count).Error
	return count > 0, err
}

func (r *TimesheetRepo) Create(entry *model.TimesheetEntry) error {
	return r.db.Create(entry).Error
}

func (r *TimesheetRepo) BulkInsert(entries []model.TimesheetEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.CreateInBatches(entries, 200).Error
}

func (r *TimesheetRepo) Save(entry *model.TimesheetEntry) error {
	return r.db.Save(entry).Error
}

func (r *TimesheetRepo) Delete(id uint) error {
	return r.db.Delete(&model.TimesheetEntry{}, id).Error
}
