package config

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// OpenRedis connects to Redis and pings it once to fail fast on a bad
// address.
func OpenRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}
