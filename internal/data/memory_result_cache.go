package data

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const memoryCacheJanitorInterval = time.Minute

// MemoryResultCache implements core.ResultCache in process, backed by
// go-cache with per-entry expiry. Used when no Redis address is configured
// and in tests.
type MemoryResultCache struct {
	store *gocache.Cache
}

// NewMemoryResultCache creates an empty in-process result cache.
func NewMemoryResultCache() *MemoryResultCache {
	return &MemoryResultCache{
		store: gocache.New(gocache.NoExpiration, memoryCacheJanitorInterval),
	}
}

// Set stores a value under the key with the given TTL.
func (m *MemoryResultCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	m.store.Set(key, value, ttl)
	return nil
}

// Get retrieves a value by key. A missing or expired key returns nil, nil.
func (m *MemoryResultCache) Get(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}
	v, ok := m.store.Get(key)
	if !ok {
		return nil, nil
	}
	value, ok := v.([]byte)
	if !ok {
		return nil, errors.New("unexpected cache entry type")
	}
	return value, nil
}

// Health always reports healthy for the in-process cache.
func (m *MemoryResultCache) Health(_ context.Context) error {
	return nil
}
