package storage

import (
	"context"
	"encoding/json"
	"time"

	"savoria-backend/internal/domain"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{Client: client}
}

// MenuKey derives a cache key from the listing filter. The same filter
// always yields the same key.
func (c *RedisCache) MenuKey(filter domain.MenuFilter) string {
	key := "menu:items:available=true"
	if !filter.Available {
		key = "menu:items:available=false"
	}
	if filter.Category != "" {
		key += ":category=" + filter.Category
	}
	if filter.Dietary != "" {
		key += ":dietary=" + filter.Dietary
	}
	if filter.Search != "" {
		key += ":search=" + filter.Search
	}
	return key
}

// Get unmarshals the cached value into dest. The boolean reports whether
// the key was present.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, payload, ttl).Err()
}
