// Package delivery defines the contract every transport entry point of
// the application satisfies.
package delivery

import "context"

// Delivery is a long-running server started by the application entry
// point. Serve blocks until the server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
