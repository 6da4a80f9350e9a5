// Package cache persists the last-known note collection and the current
// selection so the app stays usable when the note service is unreachable.
// The layout is deliberately a key-value store: one durable key for the
// serialized collection, one for the serialized selection.
package cache

import "context"

// Repository is a durable key-value store.
type Repository interface {
	// Get returns the value for key, or (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Save applies a batch of writes and deletes atomically. The store uses
	// it to mirror the note collection and the selection in one step.
	Save(ctx context.Context, set map[string][]byte, del []string) error

	// Clear removes all keys.
	Clear(ctx context.Context) error
}
