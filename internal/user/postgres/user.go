package postgres

import (
	"gorm.io/gorm"

	profileDatamodel "github.com/mindgraphix/platform/internal/core/datamodel/profile"
	"github.com/mindgraphix/platform/internal/user"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) user.RepositoryAPI {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetAll(skip, limit int) ([]*profileDatamodel.UserProfile, error) {
	var profiles []*profileDatamodel.UserProfile
	err := r.db.Order("id").Offset(skip).Limit(limit).Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepository) GetByUserID(userID int64) (*profileDatamodel.UserProfile, error) {
	var p profileDatamodel.UserProfile
	err := r.db.Where("user_id = ?", userID).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Create(p *profileDatamodel.UserProfile) error {
	return r.db.Create(p).Error
}

func (r *ProfileRepository) DeleteByUserID(userID int64) (bool, error) {
	res := r.db.Where("user_id = ?", userID).Delete(&profileDatamodel.UserProfile{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
