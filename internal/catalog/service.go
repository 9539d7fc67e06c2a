package catalog

import (
	"log/slog"

	"github.com/mindgraphix/platform/internal"
	catalogDatamodel "github.com/mindgraphix/platform/internal/core/datamodel/catalog"
)

type RepositoryAPI interface {
	GetAll(skip, limit int) ([]*catalogDatamodel.Offering, error)
	GetByID(id int64) (*catalogDatamodel.Offering, error)
	GetByCategory(category string, skip, limit int) ([]*catalogDatamodel.Offering, error)
	Create(offering *catalogDatamodel.Offering) error
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

func (s *Service) GetAll(category string, skip, limit int) ([]*Offering, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var rows []*catalogDatamodel.Offering
	var err error
	if category != "" {
		rows, err = s.repo.GetByCategory(category, skip, limit)
	} else {
		rows, err = s.repo.GetAll(skip, limit)
	}
	if err != nil {
		s.logger.Error("failed to list offerings", "category", category, "error", err)
		return nil, err
	}

	offerings := make([]*Offering, 0, len(rows))
	for _, row := range rows {
		offerings = append(offerings, FromDataModel(row))
	}
	return offerings, nil
}

func (s *Service) GetByID(id int64) (*Offering, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get offering", "offering_id", id, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, internal.NewNotFoundError("service not found", internal.ErrCodeServiceNotFound)
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(dto CreateOfferingDTO) (*Offering, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &catalogDatamodel.Offering{
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price,
		Category:    dto.Category,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create offering", "name", dto.Name, "error", err)
		return nil, err
	}
	return FromDataModel(row), nil
}
