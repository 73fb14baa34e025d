// Package cache holds the per-sport freshness cache and the keyed stores behind it.
package cache

import (
	"context"
	"fmt"

	"github.com/yourusername/sports-companion/internal/config"
)

// Store is a process-wide keyed value store. Set replaces the whole value atomically.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

// NewStore creates the backend named in configuration
func NewStore(cfg config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		return NewRedisStore(cfg.RedisURL, cfg.KeyPrefix)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}
