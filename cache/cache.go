package cache

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache coordinates lookups against a Store. Concurrent misses for the
// same key are collapsed to a single computation via singleflight.
type Cache struct {
	store Store
	group singleflight.Group
	log   *slog.Logger
}

// New creates a Cache on top of store. The logger may be nil.
func New(store Store, log *slog.Logger) *Cache {
	return &Cache{store: store, log: log}
}

// GetOrCompute returns the cached value for key if a live entry exists,
// without invoking compute. On a miss it runs compute once, stores the
// result for ttl and returns it. Failed computations are never stored;
// the error propagates untouched and the next call retries. A failed
// store write is logged and the freshly computed value is still returned.
func (c *Cache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute func() ([]byte, error)) ([]byte, error) {
	if value, ok := c.store.Get(ctx, key); ok {
		return value, nil
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		// A concurrent flight may have filled the entry while this
		// caller was waiting on the group.
		if value, ok := c.store.Get(ctx, key); ok {
			return value, nil
		}

		value, err := compute()
		if err != nil {
			return nil, err
		}

		if err := c.store.Set(ctx, key, value, ttl); err != nil && c.log != nil {
			c.log.Warn("failed to store cache entry", "key", key, "error", err)
		}
		return value, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}
