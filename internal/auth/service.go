package auth

import (
	"context"

	"github.com/mindgraphix/platform/internal"
	"github.com/mindgraphix/platform/internal/core/events"
)

// ServiceAPI is the operation surface exposed to handlers and to the other
// services behind the gateway.
type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	Register(dto RegisterDTO) (*User, error)
	CurrentUser(accessToken string) (*User, error)

	CreateRole(dto RoleDTO) (*Role, error)
	CreatePermission(dto PermissionDTO) (*Permission, error)
	ListRoles(skip, limit int) ([]Role, error)
	ListPermissions(skip, limit int) ([]Permission, error)
	AddPermissionToRole(roleID, permissionID int64) error
	AddRoleToUser(userID, roleID int64) error

	ResolvePermissions(userID int64) ([]Permission, error)
	HasPermission(userID int64, name string) (bool, error)
	HasRole(userID int64, name string) (bool, error)
}

type Service struct {
	repo       Repository
	tokens     TokenAPI
	bcryptCost int
	eventBus   *events.EventBus
}

func NewService(repo Repository, tokens TokenAPI, bcryptCost int, eventBus *events.EventBus) *Service {
	return &Service{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		eventBus:   eventBus,
	}
}

// Authenticate validates credentials and returns an access/refresh token pair.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	user, err := s.repo.FindUserByEmail(dto.Email)
	if err != nil {
		return AuthTokens{}, internal.NewInternalError("credential lookup failed", err)
	}
	if user == nil || !VerifyPassword(user.PasswordHash, dto.Password) {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.Email)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(user.Email)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// RefreshTokens rotates a refresh token into a new access token. The refresh
// token itself is not invalidated and remains usable until expiry.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	accessToken, err := s.tokens.RotateAccessToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

// Register creates a new user account. The default role exists in the role
// data but is not assigned here; only the seeder honors the is_default flag.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindUserByEmail(dto.Email)
	if err != nil {
		return nil, internal.NewInternalError("user lookup failed", err)
	}
	if existing != nil {
		return nil, internal.ErrEmailRegistered
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("password hashing failed", err)
	}

	user, err := s.repo.CreateUser(dto.Email, dto.FullName, hash)
	if err != nil {
		return nil, internal.NewInternalError("user creation failed", err)
	}

	if s.eventBus != nil {
		_ = s.eventBus.Publish(context.Background(), events.NewUserRegisteredEvent(user.ID, user.Email))
	}

	return user, nil
}

// CurrentUser resolves an access token to its backing user record. The
// active flag is not checked; a deactivated user's still-valid token
// authenticates, and a deleted user's token surfaces as not-found.
func (s *Service) CurrentUser(accessToken string) (*User, error) {
	subject, err := s.tokens.VerifyToken(accessToken)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}

	user, err := s.repo.FindUserByEmail(subject)
	if err != nil {
		return nil, internal.NewInternalError("user lookup failed", err)
	}
	if user == nil {
		return nil, internal.ErrUserNotFound
	}
	return user, nil
}

func (s *Service) CreateRole(dto RoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindRoleByName(dto.Name)
	if err != nil {
		return nil, internal.NewInternalError("role lookup failed", err)
	}
	if existing != nil {
		return nil, internal.ErrRoleExists
	}

	role, err := s.repo.CreateRole(dto.Name, dto.Description, dto.IsDefault)
	if err != nil {
		return nil, internal.NewInternalError("role creation failed", err)
	}
	return role, nil
}

func (s *Service) CreatePermission(dto PermissionDTO) (*Permission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindPermissionByName(dto.Name)
	if err != nil {
		return nil, internal.NewInternalError("permission lookup failed", err)
	}
	if existing != nil {
		return nil, internal.ErrPermissionExists
	}

	perm, err := s.repo.CreatePermission(dto.Name, dto.Description)
	if err != nil {
		return nil, internal.NewInternalError("permission creation failed", err)
	}
	return perm, nil
}

func (s *Service) ListRoles(skip, limit int) ([]Role, error) {
	return s.repo.ListRoles(skip, normalizeLimit(limit))
}

func (s *Service) ListPermissions(skip, limit int) ([]Permission, error) {
	return s.repo.ListPermissions(skip, normalizeLimit(limit))
}

// AddPermissionToRole grants a permission to a role. Both sides must exist;
// granting an existing pair is a no-op because membership is a set.
func (s *Service) AddPermissionToRole(roleID, permissionID int64) error {
	role, err := s.repo.FindRoleByID(roleID)
	if err != nil {
		return internal.NewInternalError("role lookup failed", err)
	}
	if role == nil {
		return internal.ErrRoleNotFound
	}

	perm, err := s.repo.FindPermissionByID(permissionID)
	if err != nil {
		return internal.NewInternalError("permission lookup failed", err)
	}
	if perm == nil {
		return internal.ErrPermNotFound
	}

	if err := s.repo.AddPermissionToRole(roleID, permissionID); err != nil {
		return internal.NewInternalError("permission grant failed", err)
	}
	return nil
}

// AddRoleToUser assigns a role to a user, idempotently. Unknown users and
// roles are rejected before the association is written.
func (s *Service) AddRoleToUser(userID, roleID int64) error {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return internal.NewInternalError("user lookup failed", err)
	}
	if user == nil {
		return internal.ErrUserNotFound
	}

	role, err := s.repo.FindRoleByID(roleID)
	if err != nil {
		return internal.NewInternalError("role lookup failed", err)
	}
	if role == nil {
		return internal.ErrRoleNotFound
	}

	if err := s.repo.AddRoleToUser(userID, roleID); err != nil {
		return internal.NewInternalError("role assignment failed", err)
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
