package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// CooldownRedis implements the limiter port with SET NX + TTL: the first
// Acquire per key wins and arms the window, later ones lose until it
// expires.
type CooldownRedis struct {
	Client *redis.Client
}

func NewCooldownRedis(client *redis.Client) *CooldownRedis {
	return &CooldownRedis{Client: client}
}

func (r *CooldownRedis) Acquire(ctx context.Context, key string, window time.Duration) (bool, error) {
	return r.Client.SetNX(ctx, "cooldown:"+key, 1, window).Result()
}
