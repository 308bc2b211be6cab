package service

import (
	"context"
	"errors"

	"zentora/internal/domain/entity"
)

// ErrNoVerifiedEmail is returned when the provider account has no
// verified email address to key the local account on.
var ErrNoVerifiedEmail = errors.New("provider returned no verified email")

// OAuthProvider abstracts a single social identity provider behind the
// standard authorization-code flow.
type OAuthProvider interface {
	// Name identifies the provider.
	Name() entity.AuthProvider

	// AuthorizationURL builds the provider consent page URL carrying the
	// CSRF state.
	AuthorizationURL(state string) string

	// ExchangeCode trades the authorization code for a normalized profile.
	ExchangeCode(ctx context.Context, code string) (*entity.SocialProfile, error)
}

// OAuthProviders maps provider names to their implementations.
type OAuthProviders map[entity.AuthProvider]OAuthProvider

// Get returns the provider implementation for the name, if registered.
func (p OAuthProviders) Get(name entity.AuthProvider) (OAuthProvider, bool) {
	provider, ok := p[name]

	return provider, ok
}
