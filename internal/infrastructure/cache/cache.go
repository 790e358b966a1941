package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/blogsvc/domain"
)

// DefaultTTL is how long cached query results live.
const DefaultTTL = 3600 * time.Second

// RedisCache implements domain.Cache with a cache-aside strategy. Backend
// errors propagate to the caller instead of silently falling through to the
// loader: a cache outage surfaces as a request failure (fail closed).
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a new cache-aside helper with the default TTL.
func New(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, ttl: DefaultTTL}
}

// NewWithTTL creates a cache-aside helper with a custom TTL.
func NewWithTTL(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// GetOrSet implements domain.Cache. The loader result is JSON round-tripped
// into dest on miss too, so hit and miss produce identical shapes.
func (c *RedisCache) GetOrSet(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return json.Unmarshal(data, dest)
	}
	if !errors.Is(err, redis.Nil) {
		return fmt.Errorf("cache get %q: %w", key, err)
	}

	fresh, err := loader(ctx)
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(fresh)
	if err != nil {
		return fmt.Errorf("cache encode %q: %w", key, err)
	}
	if err := c.client.SetEx(ctx, key, encoded, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return json.Unmarshal(encoded, dest)
}

// DeletePattern removes every key matching a glob pattern such as "posts:*".
// Deleting keys that no longer exist is a no-op, so the operation is
// idempotent and safe to retry.
func (c *RedisCache) DeletePattern(ctx context.Context, pattern string) (int, error) {
	var deleted int
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, fmt.Errorf("cache delete %q: %w", iter.Val(), err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("cache scan %q: %w", pattern, err)
	}
	return deleted, nil
}

var _ domain.Cache = (*RedisCache)(nil)

// Key builds a deterministic cache key from a namespace and the query
// parameters: the canonical JSON encoding keeps distinct filter/pagination
// combinations from colliding.
func Key(namespace string, params any) string {
	encoded, err := json.Marshal(params)
	if err != nil {
		// Marshal of the plain request structs used here cannot fail;
		// fall back to the bare namespace rather than panic.
		return namespace
	}
	return namespace + string(encoded)
}
