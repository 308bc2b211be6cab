package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the single refresh session record kept per user.
// A new login or refresh replaces the record wholesale, so only the most
// recently issued refresh token is ever valid.
type Session struct {
	UserID       uuid.UUID
	RefreshToken string
	Email        string
	FullName     string
	Role         Role
	Status       UserStatus
	CreatedAt    time.Time
}
