package external

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"weatherdash.app/internal/ports"
	"weatherdash.app/pkg/errors"
)

// MemoryCacheProvider is a process-local CacheProvider. Expired entries are
// dropped lazily on read and swept on write.
type MemoryCacheProvider struct {
	entries map[string]memoryCacheEntry
	mutex   sync.RWMutex
	now     func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
	ops    atomic.Int64
}

type memoryCacheEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryCacheEntry) expired(now time.Time) bool {
	return now.After(e.expiresAt)
}

func NewMemoryCacheProvider() *MemoryCacheProvider {
	return &MemoryCacheProvider{
		entries: make(map[string]memoryCacheEntry),
		now:     time.Now,
	}
}

func (c *MemoryCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists || entry.expired(c.now()) {
		c.RecordMiss()
		return nil, errors.NewNotFoundError("cache miss")
	}

	c.RecordHit()
	return entry.value, nil
}

func (c *MemoryCacheProvider) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}
	if value == nil {
		return errors.NewValidationError("cache value cannot be nil")
	}
	if ttl <= 0 {
		return errors.NewValidationError("cache TTL must be positive")
	}

	now := c.now()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = memoryCacheEntry{value: value, expiresAt: now.Add(ttl)}
	c.ops.Add(1)

	return nil
}

func (c *MemoryCacheProvider) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)
	return nil
}

func (c *MemoryCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.NewValidationError("cache key cannot be empty")
	}

	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	return exists && !entry.expired(c.now()), nil
}

func (c *MemoryCacheProvider) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]memoryCacheEntry)
	return nil
}

// Ping always succeeds; the memory cache has no backend to lose
func (c *MemoryCacheProvider) Ping(ctx context.Context) error {
	return nil
}

// Len returns the number of stored entries, expired ones included
func (c *MemoryCacheProvider) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

func (c *MemoryCacheProvider) GetStats() ports.CacheStats {
	hits := c.hits.Load()
	misses := c.misses.Load()
	return newCacheStats(hits, misses)
}

func (c *MemoryCacheProvider) RecordHit() {
	c.hits.Add(1)
	c.ops.Add(1)
}

func (c *MemoryCacheProvider) RecordMiss() {
	c.misses.Add(1)
	c.ops.Add(1)
}

func (c *MemoryCacheProvider) RecordOperation(operation string, duration time.Duration) {
	c.ops.Add(1)
}

// Operations returns the number of recorded cache operations
func (c *MemoryCacheProvider) Operations() int64 {
	return c.ops.Load()
}

func newCacheStats(hits, misses int64) ports.CacheStats {
	total := hits + misses
	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	return ports.CacheStats{
		Hits:        hits,
		Misses:      misses,
		TotalOps:    total,
		HitRatio:    hitRatio,
		LastUpdated: time.Now(),
	}
}

var (
	_ ports.CacheProvider = (*MemoryCacheProvider)(nil)
	_ ports.CacheMetrics  = (*MemoryCacheProvider)(nil)
	_ ports.CachePinger   = (*MemoryCacheProvider)(nil)
)
