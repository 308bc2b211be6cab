package oauth

import (
	"context"
	"strconv"

	"zentora/config"
	"zentora/internal/domain/entity"
	"zentora/internal/domain/service"
	"zentora/internal/errors"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const (
	githubUserURL   = "https://api.github.com/user"
	githubEmailsURL = "https://api.github.com/user/emails"
)

// githubProvider implements service.OAuthProvider for GitHub.
type githubProvider struct {
	conf *oauth2.Config
}

func newGitHubProvider(cfg *config.OAuthProviderConfig) *githubProvider {
	return &githubProvider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
	}
}

// Name identifies the provider.
func (p *githubProvider) Name() entity.AuthProvider {
	return entity.ProviderGitHub
}

// AuthorizationURL builds the GitHub consent page URL.
func (p *githubProvider) AuthorizationURL(state string) string {
	return p.conf.AuthCodeURL(state)
}

// ExchangeCode trades the authorization code for the user's profile.
// GitHub may hide the email on the /user payload, so the /user/emails
// endpoint is consulted and only a primary verified address is accepted.
func (p *githubProvider) ExchangeCode(ctx context.Context, code string) (*entity.SocialProfile, error) {
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "github code exchange failed")
	}

	client := p.conf.Client(ctx, token)

	var user struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := fetchJSON(ctx, client, githubUserURL, &user); err != nil {
		return nil, errors.Wrap(err, "failed to fetch github user")
	}

	email := user.Email
	if email == "" {
		var emails []struct {
			Email    string `json:"email"`
			Primary  bool   `json:"primary"`
			Verified bool   `json:"verified"`
		}
		if err := fetchJSON(ctx, client, githubEmailsURL, &emails); err != nil {
			return nil, errors.Wrap(err, "failed to fetch github emails")
		}

		for _, candidate := range emails {
			if candidate.Primary && candidate.Verified {
				email = candidate.Email

				break
			}
		}
	}
	if email == "" {
		return nil, service.ErrNoVerifiedEmail
	}

	fullName := user.Name
	if fullName == "" {
		fullName = user.Login
	}

	return &entity.SocialProfile{
		Provider:   entity.ProviderGitHub,
		ProviderID: strconv.FormatInt(user.ID, 10),
		Email:      email,
		FullName:   fullName,
		AvatarURL:  user.AvatarURL,
	}, nil
}
