package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mindgraphix/platform/internal"
)

// Claims is the signed payload of both token kinds: subject (user email) and
// expiry, nothing else.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenGenerator issues and verifies HS256-signed bearer tokens with a single
// process-wide secret. Access and refresh tokens differ only in lifetime;
// both are stateless, so there is no server-side revocation and a refresh
// token stays usable until its natural expiry.
type TokenGenerator struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenGenerator(cfg internal.SecurityConfig) *TokenGenerator {
	return &TokenGenerator{
		secret:     []byte(cfg.TokenSecret),
		accessTTL:  cfg.AccessTokenDuration,
		refreshTTL: cfg.RefreshTokenDuration,
	}
}

// GenerateAccessToken mints a short-lived token for the subject using the
// configured default TTL.
func (g *TokenGenerator) GenerateAccessToken(subject string) (string, error) {
	return g.GenerateAccessTokenWithTTL(subject, g.accessTTL)
}

// GenerateAccessTokenWithTTL mints an access token with an explicit lifetime.
func (g *TokenGenerator) GenerateAccessTokenWithTTL(subject string, ttl time.Duration) (string, error) {
	return g.sign(subject, ttl)
}

// GenerateRefreshToken mints a long-lived token used solely to rotate new
// access tokens.
func (g *TokenGenerator) GenerateRefreshToken(subject string) (string, error) {
	return g.sign(subject, g.refreshTTL)
}

func (g *TokenGenerator) sign(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// VerifyToken checks signature and expiry and returns the subject claim.
// Signature failure, expiry and a missing subject all collapse into the same
// invalid-token outcome; callers cannot distinguish them. Garbage input
// returns the error, it never panics.
func (g *TokenGenerator) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil {
		return "", internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", internal.ErrInvalidToken
	}
	return claims.Subject, nil
}

// RotateAccessToken verifies a refresh token and mints a fresh access token
// for the same subject. The presented refresh token is not invalidated.
func (g *TokenGenerator) RotateAccessToken(refreshToken string) (string, error) {
	subject, err := g.VerifyToken(refreshToken)
	if err != nil {
		return "", err
	}
	return g.GenerateAccessToken(subject)
}
