package external

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherdash.app/pkg/errors"
)

func TestMemoryCacheProvider_SetGet(t *testing.T) {
	cache := NewMemoryCacheProvider()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "search:kyi", []byte("kyiv"), time.Minute))

	value, err := cache.Get(ctx, "search:kyi")
	require.NoError(t, err)
	assert.Equal(t, []byte("kyiv"), value)

	exists, err := cache.Exists(ctx, "search:kyi")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = cache.Get(ctx, "search:lvi")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestMemoryCacheProvider_Expiry(t *testing.T) {
	cache := NewMemoryCacheProvider()
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "old", []byte("1"), time.Minute))

	now = now.Add(2 * time.Minute)
	_, err := cache.Get(ctx, "old")
	assert.True(t, errors.IsNotFoundError(err))

	exists, err := cache.Exists(ctx, "old")
	require.NoError(t, err)
	assert.False(t, exists)

	// writes sweep expired entries
	require.NoError(t, cache.Set(ctx, "new", []byte("2"), time.Minute))
	assert.Equal(t, 1, cache.Len())
}

func TestMemoryCacheProvider_DeleteClear(t *testing.T) {
	cache := NewMemoryCacheProvider()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, cache.Delete(ctx, "a"))
	assert.Equal(t, 1, cache.Len())

	require.NoError(t, cache.Clear(ctx))
	assert.Equal(t, 0, cache.Len())
	assert.NoError(t, cache.Ping(ctx))
}

func TestMemoryCacheProvider_Validation(t *testing.T) {
	cache := NewMemoryCacheProvider()
	ctx := context.Background()

	_, err := cache.Get(ctx, "")
	assert.True(t, errors.IsValidationError(err))
	assert.True(t, errors.IsValidationError(cache.Set(ctx, "", []byte("x"), time.Minute)))
	assert.True(t, errors.IsValidationError(cache.Set(ctx, "k", nil, time.Minute)))
	assert.True(t, errors.IsValidationError(cache.Set(ctx, "k", []byte("x"), -time.Second)))
	assert.True(t, errors.IsValidationError(cache.Delete(ctx, "")))
	_, err = cache.Exists(ctx, "")
	assert.True(t, errors.IsValidationError(err))
}

func TestMemoryCacheProvider_Stats(t *testing.T) {
	cache := NewMemoryCacheProvider()
	ctx := context.Background()

	stats := cache.GetStats()
	assert.Zero(t, stats.HitRatio)

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	_, _ = cache.Get(ctx, "k")
	_, _ = cache.Get(ctx, "missing")

	stats = cache.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 0.5, stats.HitRatio)
	assert.Equal(t, int64(3), cache.Operations())
}

func TestMemoryCacheProvider_Concurrent(t *testing.T) {
	cache := NewMemoryCacheProvider()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%26))
			_ = cache.Set(ctx, key, []byte{byte(i)}, time.Minute)
			_, _ = cache.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 26, cache.Len())
	assert.Equal(t, int64(50), cache.GetStats().Hits)
}
