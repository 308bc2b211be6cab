package repository

import (
	"context"
	"errors"

	"zentora/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no session record exists for a user.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps the single refresh session record per user in the
// ephemeral store. Save always replaces the whole record, which is what
// enforces the one-session-per-user rule.
type SessionStore interface {
	// Save writes the session record wholesale with the refresh TTL.
	Save(ctx context.Context, session *entity.Session) error

	// Find returns the session record for the user, or ErrSessionNotFound.
	Find(ctx context.Context, userID uuid.UUID) (*entity.Session, error)

	// Delete removes the session record. Deleting a missing record is not an error.
	Delete(ctx context.Context, userID uuid.UUID) error
}
