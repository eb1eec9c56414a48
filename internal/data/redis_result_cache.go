// Package data provides the storage implementations behind the core ports:
// job stores and result caches.
package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisResultCache implements core.ResultCache on Redis. Entries are written
// with SET and a TTL; expiry is handled server-side.
type RedisResultCache struct {
	client redis.UniversalClient
}

// NewRedisResultCache creates a RedisResultCache with the given client.
func NewRedisResultCache(client redis.UniversalClient) *RedisResultCache {
	return &RedisResultCache{client: client}
}

// Set stores a value in Redis with the given key and TTL.
func (r *RedisResultCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Get retrieves a value from Redis by key. A missing or expired key returns
// nil, nil.
func (r *RedisResultCache) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return []byte(result), nil
}

// Health checks the health of the Redis connection.
func (r *RedisResultCache) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
