package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/efe-storefront/backend/internal/domain"
)

// MemoryCache is a thread-safe in-memory cache with TTL support
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache.
// defaultTTL applies when Set is called with a zero TTL; cleanupInterval is
// how often expired entries are purged.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, found := c.store.Get(key)
	if !found {
		return nil, domain.ErrCacheMiss
	}
	payload, ok := value.([]byte)
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return payload, nil
}

// Set stores a value in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	// Copy so callers can reuse their buffer
	stored := make([]byte, len(value))
	copy(stored, value)
	c.store.Set(key, stored, ttl)
	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	_, found := c.store.Get(key)
	return found, nil
}

// Size returns the current number of items in the cache, expired ones included
func (c *MemoryCache) Size() int {
	return c.store.ItemCount()
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.store.Flush()
}
