package paramstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/huuhoait/los-demo/services/credit-decisioning/internal/domain"
)

// RedisCache is the Cache implementation fronting the parameter store,
// grounded on
// _examples/huuhoait-los-demo/services/shared/pkg/cache/cache.go's
// Repository/Remember cache-aside idiom.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an existing redis client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (domain.ParamValue, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return domain.ParamValue{}, false, nil
	}
	if err != nil {
		return domain.ParamValue{}, false, err
	}
	var v domain.ParamValue
	if err := json.Unmarshal(data, &v); err != nil {
		return domain.ParamValue{}, false, err
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value domain.ParamValue, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// InvalidatePrefix deletes every cached resolution for paramKey across all
// condition/minute-bucket variants (spec §5's single-writer invalidation),
// grounded on
// _examples/huuhoait-los-demo/services/shared/pkg/cache/cache.go's
// DeleteByPattern (KEYS + DEL).
func (c *RedisCache) InvalidatePrefix(ctx context.Context, paramKey string) error {
	pattern := "paramstore:" + paramKey + ":*"
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
