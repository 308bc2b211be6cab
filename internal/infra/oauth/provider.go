// Package oauth implements the social sign-in providers over the
// standard OAuth2 authorization-code flow.
package oauth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"zentora/config"
	"zentora/internal/domain/service"
	"zentora/internal/errors"
)

// NewProviders builds the provider registry from configuration. Only
// providers with credentials configured are registered.
func NewProviders(cfg *config.Config) (service.OAuthProviders, error) {
	providers := service.OAuthProviders{}

	if cfg.OAuth == nil {
		return providers, nil
	}

	if gh := cfg.OAuth.GitHub; gh != nil && gh.ClientID != "" {
		provider := newGitHubProvider(gh)
		providers[provider.Name()] = provider
	}
	if gg := cfg.OAuth.Google; gg != nil && gg.ClientID != "" {
		provider := newGoogleProvider(gg)
		providers[provider.Name()] = provider
	}

	return providers, nil
}

// fetchJSON issues a GET with the token-bearing client and decodes the
// JSON response into out.
func fetchJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build provider request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrap(err, "provider request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return errors.Errorf("provider returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode provider response")
	}

	return nil
}
