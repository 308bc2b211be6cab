package entity

// UserStatus represents the lifecycle status of a user account.
//
// Transitions: registration creates an inactive account; verification and
// login activate it; logout and credential revocation return it to
// inactive; suspension is an administrative action; deletion is a soft
// state reversible through reactivation.
type UserStatus string

const (
	// StatusActive marks an account with a live session.
	StatusActive UserStatus = "active"

	// StatusInactive marks a verified account without a live session.
	StatusInactive UserStatus = "inactive"

	// StatusSuspended marks an account blocked by an administrator.
	StatusSuspended UserStatus = "suspended"

	// StatusDeleted marks a soft-deleted account.
	StatusDeleted UserStatus = "deleted"
)

// IsValid reports whether the status is one of the known values.
func (s UserStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended, StatusDeleted:
		return true
	}

	return false
}
