// Package session keeps per-visitor state between requests.
package session

import "context"

// Store holds one value per visitor id.
type Store[T any] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	Put(ctx context.Context, id string, v T) error
	// Delete removes id and returns the value it held, so the caller can
	// release it.
	Delete(ctx context.Context, id string) (T, bool, error)
	NewID() string
}
