package contact

import (
	"context"
	"log/slog"

	"github.com/mindgraphix/platform/internal"
	contactDatamodel "github.com/mindgraphix/platform/internal/core/datamodel/contact"
	"github.com/mindgraphix/platform/internal/core/events"
)

type RepositoryAPI interface {
	GetAll(skip, limit int) ([]*contactDatamodel.Message, error)
	GetByID(id int64) (*contactDatamodel.Message, error)
	Create(msg *contactDatamodel.Message) error
}

type Service struct {
	repo     RepositoryAPI
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *Service) GetAll(skip, limit int) ([]*Message, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	rows, err := s.repo.GetAll(skip, limit)
	if err != nil {
		s.logger.Error("failed to list contact messages", "error", err)
		return nil, err
	}

	messages := make([]*Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, FromDataModel(row))
	}
	return messages, nil
}

func (s *Service) GetByID(id int64) (*Message, error) {
	row, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get contact message", "contact_id", id, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, internal.NewNotFoundError("contact not found", internal.ErrCodeContactNotFound)
	}
	return FromDataModel(row), nil
}

func (s *Service) Submit(ctx context.Context, dto SubmitMessageDTO) (*Message, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &contactDatamodel.Message{
		Name:    dto.Name,
		Email:   dto.Email,
		Message: dto.Message,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to store contact message", "email", dto.Email, "error", err)
		return nil, err
	}

	if s.eventBus != nil {
		event := events.NewContactReceivedEvent(row.ID, row.Name, row.Email)
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish contact event", "contact_id", row.ID, "error", err)
		}
	}

	return FromDataModel(row), nil
}
