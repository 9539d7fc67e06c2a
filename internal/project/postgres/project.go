package postgres

import (
	"gorm.io/gorm"

	projectDatamodel "github.com/mindgraphix/platform/internal/core/datamodel/project"
	"github.com/mindgraphix/platform/internal/project"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) project.RepositoryAPI {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) GetAll(skip, limit int) ([]*projectDatamodel.Project, error) {
	var projects []*projectDatamodel.Project
	err := r.db.Order("id").Offset(skip).Limit(limit).Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) GetByID(id int64) (*projectDatamodel.Project, error) {
	var p projectDatamodel.Project
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Create(p *projectDatamodel.Project) error {
	return r.db.Create(p).Error
}
