package service

import (
	"errors"
	"time"

	"zentora/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrTokenMalformed is returned for tokens that fail signature or
	// structural validation, or that carry the wrong type claim.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenExpired is returned for structurally valid tokens past
	// their expiry.
	ErrTokenExpired = errors.New("token expired")
)

// AccessClaims is the decoded identity carried by an access token.
type AccessClaims struct {
	UserID uuid.UUID
	Email  string
	Role   entity.Role
}

// RefreshClaims is the decoded identity carried by a refresh token.
type RefreshClaims struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateAccessToken creates a short-lived access token.
	GenerateAccessToken(claims AccessClaims) (string, error)

	// GenerateRefreshToken creates a long-lived refresh token.
	GenerateRefreshToken(claims RefreshClaims) (string, error)

	// ParseAccessToken validates and decodes an access token.
	// Returns ErrTokenExpired or ErrTokenMalformed on failure.
	ParseAccessToken(tokenString string) (*AccessClaims, error)

	// ParseRefreshToken validates and decodes a refresh token.
	// Returns ErrTokenExpired or ErrTokenMalformed on failure.
	ParseRefreshToken(tokenString string) (*RefreshClaims, error)

	// AccessTokenDuration returns the configured access token lifetime.
	AccessTokenDuration() time.Duration

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}
