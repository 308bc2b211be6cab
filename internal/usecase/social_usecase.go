package usecase

import (
	"context"

	"zentora/internal/domain/entity"
)

// CallbackInput carries the provider redirect parameters.
type CallbackInput struct {
	Provider entity.AuthProvider
	State    string
	Code     string
}

// ExchangeOutput returns the token pair stashed by the OAuth callback.
type ExchangeOutput struct {
	AccessToken  string
	RefreshToken string
	User         *UserSummary
}

// SocialUsecase defines the social sign-in flow: consent URL, provider
// callback and the temp-code exchange that hands tokens to the browser.
type SocialUsecase interface {
	// AuthorizationURL builds the provider consent URL with a stored
	// CSRF state.
	AuthorizationURL(ctx context.Context, provider entity.AuthProvider) (string, error)

	// HandleCallback validates the state, exchanges the authorization
	// code for a profile, links or creates the account and returns a
	// single-use exchange code.
	HandleCallback(ctx context.Context, input *CallbackInput) (string, error)

	// Exchange redeems the single-use exchange code for the stashed
	// token pair and activates the account.
	Exchange(ctx context.Context, code string) (*ExchangeOutput, error)
}
