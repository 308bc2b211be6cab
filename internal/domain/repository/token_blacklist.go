package repository

import "context"

// TokenBlacklist records revoked JWTs by their exact string for a bounded
// window. Membership is a pure string-presence check, no decoding.
type TokenBlacklist interface {
	// Add records the token as revoked with the blacklist TTL.
	Add(ctx context.Context, token string) error

	// Contains reports whether the token has been revoked.
	Contains(ctx context.Context, token string) (bool, error)
}
