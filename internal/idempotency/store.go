// Package idempotency remembers the outcome of requests carrying an Idempotency-Key
// so that retries return the original result instead of repeating the side effect.
package idempotency

import "context"

// pending marks a key whose first request has not finished yet.
const pending = "\x00pending"

// Store reserves keys and records request results.
type Store interface {
	// Reserve claims key for the caller. When a previous request already completed under
	// key, its result is returned with replay set. A key still held by another request
	// yields errors.ErrIdempotencyInFlight.
	Reserve(ctx context.Context, key string) (result string, replay bool, err error)
	// Complete stores the result for a reserved key.
	Complete(ctx context.Context, key, result string) error
	// Release frees a reserved key so the request can be retried.
	Release(ctx context.Context, key string) error
	Close() error
}
