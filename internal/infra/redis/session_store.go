package redis

import (
	"context"
	"time"

	"zentora/config"
	"zentora/internal/domain/entity"
	"zentora/internal/domain/repository"
	"zentora/internal/errors"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "refresh_token:"

// sessionStore implements repository.SessionStore over a Redis hash per user.
type sessionStore struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewSessionStore is the constructor for sessionStore. The record TTL is
// the refresh token lifetime, so a session can never outlive its token.
func NewSessionStore(client *goredis.Client, cfg *config.Config) repository.SessionStore {
	return &sessionStore{
		client: client,
		ttl:    cfg.JWT.RefreshTokenTTL,
	}
}

func sessionKey(userID uuid.UUID) string {
	return sessionKeyPrefix + userID.String()
}

// Save replaces the user's session record wholesale. The delete before
// the write drops fields a previous record may have had.
func (s *sessionStore) Save(ctx context.Context, session *entity.Session) error {
	key := sessionKey(session.UserID)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]any{
		"refresh_token": session.RefreshToken,
		"user_id":       session.UserID.String(),
		"email":         session.Email,
		"full_name":     session.FullName,
		"role":          string(session.Role),
		"status":        string(session.Status),
		"created_at":    session.CreatedAt.UTC().Format(time.RFC3339),
	})
	pipe.Expire(ctx, key, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(err, "failed to save session")
	}

	return nil
}

// Find returns the session record for the user.
func (s *sessionStore) Find(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	fields, err := s.client.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read session")
	}
	if len(fields) == 0 {
		return nil, repository.ErrSessionNotFound
	}

	session := &entity.Session{
		UserID:       userID,
		RefreshToken: fields["refresh_token"],
		Email:        fields["email"],
		FullName:     fields["full_name"],
		Role:         entity.Role(fields["role"]),
		Status:       entity.UserStatus(fields["status"]),
	}
	if createdAt, parseErr := time.Parse(time.RFC3339, fields["created_at"]); parseErr == nil {
		session.CreatedAt = createdAt
	}

	return session, nil
}

// Delete removes the session record.
func (s *sessionStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}
