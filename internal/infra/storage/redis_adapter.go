package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter exposes the small key-value surface the seeder uses for
// its run-once lock, keeping redis types out of the seeding logic.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(c *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: c}
}

func (r *RedisAdapter) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return r.client.SetNX(ctx, key, value, expiration).Result()
}

func (r *RedisAdapter) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
