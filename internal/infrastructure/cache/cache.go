package cache

import (
	"context"
	"fmt"

	"github.com/MarieAhluwalia/nutrimap/internal/domain"
)

// Cache is a CacheRepository that owns resources to release on shutdown
type Cache interface {
	domain.CacheRepository
	Close() error
}

// New builds the cache backend named by cacheType ("memory" or "redis")
func New(ctx context.Context, cacheType, redisURL string) (Cache, error) {
	switch cacheType {
	case "", "memory":
		return NewMemoryCache(0), nil
	case "redis":
		return NewRedisCache(ctx, redisURL)
	default:
		return nil, fmt.Errorf("unknown cache type %q", cacheType)
	}
}
