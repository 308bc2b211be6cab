package redis

import (
	"context"
	"time"

	"zentora/config"
	"zentora/internal/domain/repository"
	"zentora/internal/errors"

	goredis "github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "blacklisted_token:"

// tokenBlacklist implements repository.TokenBlacklist with one key per
// revoked token string.
type tokenBlacklist struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewTokenBlacklist is the constructor for tokenBlacklist.
func NewTokenBlacklist(client *goredis.Client, cfg *config.Config) repository.TokenBlacklist {
	return &tokenBlacklist{
		client: client,
		ttl:    cfg.Auth.BlacklistTTL,
	}
}

// Add records the token as revoked.
func (b *tokenBlacklist) Add(ctx context.Context, token string) error {
	if err := b.client.Set(ctx, blacklistKeyPrefix+token, "true", b.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to blacklist token")
	}

	return nil
}

// Contains reports whether the exact token string has been revoked.
func (b *tokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	count, err := b.client.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to check token blacklist")
	}

	return count > 0, nil
}
