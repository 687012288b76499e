package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/monitoring/logging"
	"github.com/rxprasetya/sebaran-penjualan/pkg/errors"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New(errors.ErrCodeCacheError, "cache miss")

// Cache is a JSON-serialising read-through cache.  The coverage service uses
// it to avoid re-running the full map join on every request.
type Cache struct {
	client *Client
	ttl    time.Duration
	logger logging.Logger
}

// NewCache builds a Cache with the given default TTL.
func NewCache(client *Client, ttl time.Duration, logger logging.Logger) *Cache {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// Get unmarshals the cached value at key into dest.  Absent keys return
// ErrCacheMiss; corrupt entries are deleted and also read as a miss.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, err := c.client.Get(ctx, key)
	if err == goredis.Nil {
		return ErrCacheMiss
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "cache read failed")
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		c.logger.Warn("Dropping corrupt cache entry", logging.String("key", key), logging.Err(err))
		_ = c.client.Del(ctx, key)
		return ErrCacheMiss
	}
	return nil
}

// Set marshals value and stores it under key with the cache's TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "cache value is not serialisable")
	}
	if err := c.client.Set(ctx, key, raw, c.ttl); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "cache write failed")
	}
	return nil
}

// Invalidate removes keys from the cache.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "cache invalidation failed")
	}
	return nil
}
