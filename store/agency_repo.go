package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yassinebouassriaexternal-ship-it/warehouse-tracker/model"
)

type AgencyRepo struct {
	db *gorm.DB
}

func (r *AgencyRepo) FindByName(name string) (*model.Agency, error) {
	var agency model.Agency
	err := r.db.Where("name = ?", name).First(&agency).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &agency, nil
}

// MarkupAsOf returns the markup whose effective date is the greatest one not
// after asOf. Same-day rows resolve to the latest inserted one.
func (r *AgencyRepo) MarkupAsOf(agencyID uint, asOf time.Time) (*model.AgencyMarkup, error) {
	var markup model.AgencyMarkup
	err := r.db.Where("agency_id = ? AND effective_date <= ?", agencyID, asOf).
		Order("effective_date desc, id desc").
		First(&markup).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &markup, nil
}

func (r *AgencyRepo) List() ([]model.Agency, error) {
	var agencies []model.Agency
	err := r.db.Preload("Markups", func(db *gorm.DB) *gorm.DB {
		return db.Order("effective_date asc, id asc")
	}).Order("name asc").Find(&agencies).Error
	return agencies, err
}

func (r *AgencyRepo) Create(agency *model.Agency) error {
	return r.db.Create(agency).Error
}

// FindOrCreate returns the agency with the given name, creating it when no
// row exists yet.
func (r *AgencyRepo) FindOrCreate(name string) (*model.Agency, error) {
	agency, err := r.FindByName(name)
	if err != nil {
		return nil, err
	}
	if agency != nil {
		return agency, nil
	}
	agency = &model.Agency{Name: name}
	if err := r.db.Create(agency).Error; err != nil {
		return nil, err
	}
	return agency, nil
}

func (r *AgencyRepo) AddMarkup(markup *model.AgencyMarkup) error {
	return r.db.Create(markup).Error
}

func (r *AgencyRepo) DeleteMarkup(id uint) error {
	return r.db.Delete(&model.AgencyMarkup{}, id).Error
}
