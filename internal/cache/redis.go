package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries as plain Redis strings without expiration.
type RedisCache struct {
	redisClient *redis.Client
	keyPrefix   string
}

var _ Cache = (*RedisCache)(nil)

func NewRedisCache(redisClient *redis.Client, keyPrefix string) *RedisCache {
	return &RedisCache{
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.redisClient.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}
	return val, nil
}

func (c *RedisCache) Put(ctx context.Context, key string, value []byte) error {
	if err := c.redisClient.Set(ctx, c.keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s in redis: %w", key, err)
	}
	return nil
}
