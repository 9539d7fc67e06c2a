package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is the identity record owned by the credential store. Tokens carry the
// email as their subject claim, so email is the natural key everywhere in
// this package.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role is a named bundle of permissions. IsDefault marks the role intended
// for new registrants; registration does not currently assign it, the flag is
// only honored by the seeder.
type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	IsDefault   bool         `json:"is_default"`
	CreatedAt   time.Time    `json:"created_at"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// Permission is an atomic named capability, granted to roles only.
type Permission struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type"`
}

// Repository is the credential store consumed by the auth core. RolesOf
// materializes each role with its full permission set in one call; there is
// no lazy association traversal anywhere above this interface.
type Repository interface {
	FindUserByEmail(email string) (*User, error)
	FindUserByID(id int64) (*User, error)
	CreateUser(email, fullName, passwordHash string) (*User, error)

	FindRoleByName(name string) (*Role, error)
	FindRoleByID(id int64) (*Role, error)
	CreateRole(name, description string, isDefault bool) (*Role, error)
	ListRoles(skip, limit int) ([]Role, error)

	FindPermissionByName(name string) (*Permission, error)
	FindPermissionByID(id int64) (*Permission, error)
	CreatePermission(name, description string) (*Permission, error)
	ListPermissions(skip, limit int) ([]Permission, error)

	AddPermissionToRole(roleID, permissionID int64) error
	AddRoleToUser(userID, roleID int64) error

	RolesOf(userID int64) ([]Role, error)
}

// TokenAPI is the token service surface consumed by the service layer and the
// authorization gate.
type TokenAPI interface {
	GenerateAccessToken(subject string) (string, error)
	GenerateRefreshToken(subject string) (string, error)
	VerifyToken(tokenString string) (string, error)
	RotateAccessToken(refreshToken string) (string, error)
}

type ctxKey string

const ContextUserKey ctxKey = "user"

// UserFromContext returns the user resolved by the authorization gate for the
// current request, so guarded handlers never re-fetch it.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

// HashPassword produces a salted bcrypt hash; two calls on the same plaintext
// yield different hashes.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash. A
// malformed hash verifies as false rather than erroring out to the caller.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
