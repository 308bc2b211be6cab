package oauth

import (
	"context"

	"zentora/config"
	"zentora/internal/domain/entity"
	"zentora/internal/domain/service"
	"zentora/internal/errors"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// googleProvider implements service.OAuthProvider for Google.
type googleProvider struct {
	conf *oauth2.Config
}

func newGoogleProvider(cfg *config.OAuthProviderConfig) *googleProvider {
	return &googleProvider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// Name identifies the provider.
func (p *googleProvider) Name() entity.AuthProvider {
	return entity.ProviderGoogle
}

// AuthorizationURL builds the Google consent page URL.
func (p *googleProvider) AuthorizationURL(state string) string {
	return p.conf.AuthCodeURL(state)
}

// ExchangeCode trades the authorization code for the user's profile.
func (p *googleProvider) ExchangeCode(ctx context.Context, code string) (*entity.SocialProfile, error) {
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "google code exchange failed")
	}

	client := p.conf.Client(ctx, token)

	var user struct {
		ID            string `json:"id"`
		Email         string `json:"email"`
		VerifiedEmail bool   `json:"verified_email"`
		Name          string `json:"name"`
		Picture       string `json:"picture"`
	}
	if err := fetchJSON(ctx, client, googleUserinfoURL, &user); err != nil {
		return nil, errors.Wrap(err, "failed to fetch google userinfo")
	}

	if user.Email == "" || !user.VerifiedEmail {
		return nil, service.ErrNoVerifiedEmail
	}

	return &entity.SocialProfile{
		Provider:   entity.ProviderGoogle,
		ProviderID: user.ID,
		Email:      user.Email,
		FullName:   user.Name,
		AvatarURL:  user.Picture,
	}, nil
}
