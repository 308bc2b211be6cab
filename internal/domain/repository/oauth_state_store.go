package repository

import (
	"context"
	"errors"

	"zentora/internal/domain/entity"
)

// ErrStateNotFound is returned when an OAuth state is missing or expired.
var ErrStateNotFound = errors.New("oauth state not found")

// OAuthStateStore keeps the CSRF state values issued when building
// provider authorization URLs.
type OAuthStateStore interface {
	// Save stores state -> provider with the state TTL.
	Save(ctx context.Context, state string, provider entity.AuthProvider) error

	// Take returns the provider the state was issued for and deletes it,
	// or returns ErrStateNotFound.
	Take(ctx context.Context, state string) (entity.AuthProvider, error)
}
