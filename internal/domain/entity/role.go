package entity

// Role represents the authorization role of a user account.
type Role string

const (
	// RoleUser is the default role for every registered account.
	RoleUser Role = "USER"

	// RoleAdmin grants access to administrative operations.
	RoleAdmin Role = "ADMIN"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}

	return false
}
