package project

import (
	"log/slog"

	"github.com/mindgraphix/platform/internal"
	projectDatamodel "github.com/mindgraphix/platform/internal/core/datamodel/project"
)

type RepositoryAPI interface {
	GetAll(skip, limit int) ([]*projectDatamodel.Project, error)
	GetByID(id int64) (*projectDatamodel.Project, error)
	Create(project *projectDatamodel.Project) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAll(skip, limit int) ([]*Project, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	rows, err := s.repo.GetAll(skip, limit)
	if err != nil {
		s.logger.Error("failed to list projects", "error", err)
		return nil, err
	}

	projects := make([]*Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, FromDataModel(row))
	}
	return projects, nil
}

func (s *Service) GetByID(id int64) (*Project, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get project", "project_id", id, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, internal.NewNotFoundError("project not found", internal.ErrCodeProjectNotFound)
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(dto CreateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := NewProject(dto.Title, dto.Description)
	row := ToDataModel(p)
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create project", "title", dto.Title, "error", err)
		return nil, err
	}
	return FromDataModel(row), nil
}
