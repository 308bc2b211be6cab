package repository

import (
	"context"
	"errors"

	"zentora/internal/domain/entity"
)

var (
	// ErrTempAuthNotFound is returned when the exchange code is missing or expired.
	ErrTempAuthNotFound = errors.New("temp auth record not found")

	// ErrTempAuthCorrupted is returned when the stored payload cannot be decoded.
	ErrTempAuthCorrupted = errors.New("temp auth record corrupted")
)

// TempAuthStore keeps the short-lived auth payloads that bridge an OAuth
// callback redirect and the follow-up exchange request.
type TempAuthStore interface {
	// Save stores the payload under the exchange code with the temp-auth TTL.
	Save(ctx context.Context, code string, payload *entity.TempAuthPayload) error

	// Take returns the payload and deletes it in the same call, making
	// the exchange code single-use. Returns ErrTempAuthNotFound or
	// ErrTempAuthCorrupted.
	Take(ctx context.Context, code string) (*entity.TempAuthPayload, error)
}
