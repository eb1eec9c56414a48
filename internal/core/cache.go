package core

import (
	"context"
	"time"
)

// ResultCache is a key-value store with per-entry expiry holding serialized
// inspection results keyed by job id. Entry lifecycle is independent of the
// job record: a miss after expiry is expected behavior, not an error.
type ResultCache interface {
	// Set stores a value under the key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get retrieves a value by key. A miss returns nil, nil.
	Get(ctx context.Context, key string) ([]byte, error)

	// Health checks the health of the cache backend.
	Health(ctx context.Context) error
}
