package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryResultCacheSetGet(t *testing.T) {
	cache := NewMemoryResultCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "job-1", []byte(`{"image":"alpine"}`), time.Minute))

	got, err := cache.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, `{"image":"alpine"}`, string(got))
}

func TestMemoryResultCacheMiss(t *testing.T) {
	cache := NewMemoryResultCache()

	got, err := cache.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryResultCacheExpiry(t *testing.T) {
	cache := NewMemoryResultCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "job-1", []byte("payload"), 10*time.Millisecond))
	time.Sleep(50 * time.Millisecond)

	got, err := cache.Get(ctx, "job-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryResultCacheEmptyKey(t *testing.T) {
	cache := NewMemoryResultCache()
	ctx := context.Background()

	assert.Error(t, cache.Set(ctx, "", []byte("x"), time.Minute))
	_, err := cache.Get(ctx, "")
	assert.Error(t, err)
}

func TestMemoryResultCacheHealth(t *testing.T) {
	assert.NoError(t, NewMemoryResultCache().Health(context.Background()))
}
