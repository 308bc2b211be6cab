package redis

import (
	"context"
	"time"

	"zentora/config"
	"zentora/internal/domain/repository"
	"zentora/internal/errors"

	goredis "github.com/redis/go-redis/v9"
)

const (
	verificationKeyPrefix = "email_verification:"
	resetKeyPrefix        = "password_reset:"

	codeScanBatchSize = 100
)

// codeStore implements repository.CodeStore over plain Redis strings.
type codeStore struct {
	client          *goredis.Client
	verificationTTL time.Duration
	resetTTL        time.Duration
}

// NewCodeStore is the constructor for codeStore.
func NewCodeStore(client *goredis.Client, cfg *config.Config) repository.CodeStore {
	return &codeStore{
		client:          client,
		verificationTTL: cfg.Auth.VerificationCodeTTL,
		resetTTL:        cfg.Auth.ResetCodeTTL,
	}
}

// SaveVerificationCode stores code -> email with the verification TTL.
func (s *codeStore) SaveVerificationCode(ctx context.Context, code, email string) error {
	if err := s.client.Set(ctx, verificationKeyPrefix+code, email, s.verificationTTL).Err(); err != nil {
		return errors.Wrap(err, "failed to save verification code")
	}

	return nil
}

// ConsumeVerificationCode atomically reads and deletes the code, making
// it single-use.
func (s *codeStore) ConsumeVerificationCode(ctx context.Context, code string) (string, error) {
	email, err := s.client.GetDel(ctx, verificationKeyPrefix+code).Result()
	if errors.Is(err, goredis.Nil) {
		return "", repository.ErrCodeNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to consume verification code")
	}

	return email, nil
}

// DeleteVerificationCodesForEmail scans the verification namespace and
// removes every code bound to the email. Best effort; the codes expire
// on their own anyway.
func (s *codeStore) DeleteVerificationCodesForEmail(ctx context.Context, email string) error {
	iter := s.client.Scan(ctx, 0, verificationKeyPrefix+"*", codeScanBatchSize).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		boundEmail, err := s.client.Get(ctx, key).Result()
		if errors.Is(err, goredis.Nil) {
			continue
		}
		if err != nil {
			return errors.Wrap(err, "failed to inspect verification code")
		}

		if boundEmail == email {
			if err := s.client.Del(ctx, key).Err(); err != nil {
				return errors.Wrap(err, "failed to delete verification code")
			}
		}
	}
	if err := iter.Err(); err != nil {
		return errors.Wrap(err, "failed to scan verification codes")
	}

	return nil
}

// SaveResetCode stores code -> email with the reset TTL.
func (s *codeStore) SaveResetCode(ctx context.Context, code, email string) error {
	if err := s.client.Set(ctx, resetKeyPrefix+code, email, s.resetTTL).Err(); err != nil {
		return errors.Wrap(err, "failed to save reset code")
	}

	return nil
}

// FindResetCode reads the code without consuming it. The code stays
// valid until InvalidateResetCode runs after a successful password write.
func (s *codeStore) FindResetCode(ctx context.Context, code string) (string, error) {
	email, err := s.client.Get(ctx, resetKeyPrefix+code).Result()
	if errors.Is(err, goredis.Nil) {
		return "", repository.ErrCodeNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to read reset code")
	}

	return email, nil
}

// InvalidateResetCode removes the reset code.
func (s *codeStore) InvalidateResetCode(ctx context.Context, code string) error {
	if err := s.client.Del(ctx, resetKeyPrefix+code).Err(); err != nil {
		return errors.Wrap(err, "failed to invalidate reset code")
	}

	return nil
}
