// Package delivery defines the contract every transport adapter satisfies.
package delivery

import "context"

// Delivery is a long-running transport front end, started once at boot.
type Delivery interface {
	Serve(ctx context.Context) error
}
