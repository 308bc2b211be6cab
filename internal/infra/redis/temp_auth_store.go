package redis

import (
	"context"
	"encoding/json"
	"time"

	"zentora/config"
	"zentora/internal/domain/entity"
	"zentora/internal/domain/repository"
	"zentora/internal/errors"

	goredis "github.com/redis/go-redis/v9"
)

const tempAuthKeyPrefix = "temp_auth:"

// tempAuthStore implements repository.TempAuthStore with one JSON blob
// per exchange code.
type tempAuthStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewTempAuthStore is the constructor for tempAuthStore.
func NewTempAuthStore(client *goredis.Client, cfg *config.Config) repository.TempAuthStore {
	return &tempAuthStore{
		client: client,
		ttl:    cfg.Auth.TempAuthTTL,
	}
}

// Save stores the payload under the exchange code.
func (s *tempAuthStore) Save(ctx context.Context, code string, payload *entity.TempAuthPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to encode temp auth payload")
	}

	if err := s.client.Set(ctx, tempAuthKeyPrefix+code, raw, s.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to save temp auth payload")
	}

	return nil
}

// Take atomically reads and deletes the payload so the exchange code is
// single-use even under concurrent requests.
func (s *tempAuthStore) Take(ctx context.Context, code string) (*entity.TempAuthPayload, error) {
	raw, err := s.client.GetDel(ctx, tempAuthKeyPrefix+code).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, repository.ErrTempAuthNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to take temp auth payload")
	}

	payload := &entity.TempAuthPayload{}
	if err := json.Unmarshal([]byte(raw), payload); err != nil {
		return nil, errors.Wrap(repository.ErrTempAuthCorrupted, err.Error())
	}

	return payload, nil
}
