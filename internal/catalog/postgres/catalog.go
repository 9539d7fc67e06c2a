package postgres

import (
	"gorm.io/gorm"

	"github.com/mindgraphix/platform/internal/catalog"
	catalogDatamodel "github.com/mindgraphix/platform/internal/core/datamodel/catalog"
)

type OfferingRepository struct {
	db *gorm.DB
}

func NewOfferingRepository(db *gorm.DB) catalog.RepositoryAPI {
	return &OfferingRepository{db: db}
}

func (r *OfferingRepository) GetAll(skip, limit int) ([]*catalogDatamodel.Offering, error) {
	var offerings []*catalogDatamodel.Offering
	err := r.db.Order("id").Offset(skip).Limit(limit).Find(&offerings).Error
	return offerings, err
}

func (r *OfferingRepository) GetByCategory(category string, skip, limit int) ([]*catalogDatamodel.Offering, error) {
	var offerings []*catalogDatamodel.Offering
	err := r.db.Where("category = ?", category).Order("id").Offset(skip).Limit(limit).Find(&offerings).Error
	return offerings, err
}

func (r *OfferingRepository) GetByID(id int64) (*catalogDatamodel.Offering, error) {
	var o catalogDatamodel.Offering
	err := r.db.Where("id = ?", id).First(&o).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *OfferingRepository) Create(o *catalogDatamodel.Offering) error {
	return r.db.Create(o).Error
}
