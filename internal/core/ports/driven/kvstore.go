package driven

import (
	"context"
	"encoding/json"
)

// KeyValueStore persists JSON values under string keys.
// Writes are durable once Set returns.
type KeyValueStore interface {
	// Get returns the value stored under key.
	// The boolean is false when the key does not exist.
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value json.RawMessage) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
