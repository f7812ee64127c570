package cache

import (
	"fmt"
	"time"

	"github.com/efe-storefront/backend/internal/domain"
)

// Supported cache backends
const (
	TypeMemory = "memory"
	TypeRedis  = "redis"
)

// New creates the cache backend named by cacheType
func New(cacheType, redisURL string, ttl, cleanupInterval time.Duration) (domain.CacheRepository, error) {
	switch cacheType {
	case TypeMemory, "":
		return NewMemoryCache(ttl, cleanupInterval), nil
	case TypeRedis:
		redisCache, err := NewRedisCache(redisURL)
		if err != nil {
			return nil, err
		}
		return redisCache, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cacheType)
	}
}
