// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity of the system, representing a single account
// regardless of how it authenticates (password or social provider).
type User struct {
	ID           uuid.UUID     // The Global Unique Identifier (GUID) for the user.
	Email        string        // The user's primary contact email, used as the login identifier.
	PasswordHash string        // bcrypt digest. Empty for accounts created through a social provider.
	FullName     string        // The user's display name.
	Role         Role          // Authorization role (user or admin).
	Bio          string        // Optional free-form profile text.
	AvatarURL    string        // Optional avatar image URL, backfilled from social providers.
	IsVerified   bool          // Whether the email address has been confirmed.
	Status       UserStatus    // Lifecycle status (active, inactive, suspended, deleted).
	Provider     AuthProvider  // Which identity provider owns the credentials.
	ProviderID   string        // The provider-side account ID. Empty for local accounts.
	LastLoginAt  *time.Time    // Timestamp of the most recent successful login, nil before first login.
	CreatedAt    time.Time     // Timestamp of when this account was created.
	UpdatedAt    time.Time     // Timestamp of the last modification to this account.
}

// IsLocal reports whether the account authenticates with a password
// managed by this service.
func (u *User) IsLocal() bool {
	return u.Provider == ProviderLocal
}
