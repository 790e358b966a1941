package database

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis constructs a redis client; the caller owns its lifecycle.
func NewRedis(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

// Ping verifies the connection at startup.
func Ping(ctx context.Context, client *redis.Client) error {
	return client.Ping(ctx).Err()
}
