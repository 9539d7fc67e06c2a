package user

import (
	"log/slog"

	"github.com/mindgraphix/platform/internal"
	profileDatamodel "github.com/mindgraphix/platform/internal/core/datamodel/profile"
)

type RepositoryAPI interface {
	GetAll(skip, limit int) ([]*profileDatamodel.UserProfile, error)
	GetByUserID(userID int64) (*profileDatamodel.UserProfile, error)
	Create(p *profileDatamodel.UserProfile) error
	DeleteByUserID(userID int64) (bool, error)
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

func (s *Service) GetAll(skip, limit int) ([]*Profile, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	rows, err := s.repo.GetAll(skip, limit)
	if err != nil {
		s.logger.Error("failed to list profiles", "error", err)
		return nil, err
	}

	profiles := make([]*Profile, 0, len(rows))
	for _, row := range rows {
		profiles = append(profiles, FromDataModel(row))
	}
	return profiles, nil
}

func (s *Service) GetByUserID(userID int64) (*Profile, error) {
	row, err := s.repo.GetByUserID(userID)
	if err != nil {
		s.logger.Error("failed to get profile", "user_id", userID, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(dto CreateProfileDTO) (*Profile, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &profileDatamodel.UserProfile{
		UserID:    dto.UserID,
		Bio:       dto.Bio,
		AvatarURL: dto.AvatarURL,
		Website:   dto.Website,
		Location:  dto.Location,
		Company:   dto.Company,
	}
	if err := s.repo.Create(row); err != nil {
		s.logger.Error("failed to create profile", "user_id", dto.UserID, "error", err)
		return nil, err
	}
	return FromDataModel(row), nil
}

// Update is not wired to the credential store yet. Identity fields are owned
// by the auth service, so for now every update reports the user as missing.
func (s *Service) Update(userID int64, dto UpdateUserDTO) (*Profile, error) {
	return nil, internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
}

func (s *Service) Delete(userID int64) error {
	deleted, err := s.repo.DeleteByUserID(userID)
	if err != nil {
		s.logger.Error("failed to delete profile", "user_id", userID, "error", err)
		return err
	}
	if !deleted {
		return internal.NewNotFoundError("user not found", internal.ErrCodeUserNotFound)
	}
	return nil
}
