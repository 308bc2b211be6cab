package redis

import (
	"context"
	"time"

	"zentora/config"
	"zentora/internal/domain/entity"
	"zentora/internal/domain/repository"
	"zentora/internal/errors"

	goredis "github.com/redis/go-redis/v9"
)

const stateKeyPrefix = "oauth_state:"

// oauthStateStore implements repository.OAuthStateStore.
type oauthStateStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewOAuthStateStore is the constructor for oauthStateStore.
func NewOAuthStateStore(client *goredis.Client, cfg *config.Config) repository.OAuthStateStore {
	return &oauthStateStore{
		client: client,
		ttl:    cfg.Auth.OAuthStateTTL,
	}
}

// Save stores state -> provider.
func (s *oauthStateStore) Save(ctx context.Context, state string, provider entity.AuthProvider) error {
	if err := s.client.Set(ctx, stateKeyPrefix+state, string(provider), s.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to save oauth state")
	}

	return nil
}

// Take atomically reads and deletes the state so it validates only once.
func (s *oauthStateStore) Take(ctx context.Context, state string) (entity.AuthProvider, error) {
	provider, err := s.client.GetDel(ctx, stateKeyPrefix+state).Result()
	if errors.Is(err, goredis.Nil) {
		return "", repository.ErrStateNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to take oauth state")
	}

	return entity.AuthProvider(provider), nil
}
