package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/linkguard/go-url-guard/internal/check/domain"
)

const (
	verdictPrefix = "verdict:"
	defaultTTL    = 12 * time.Hour
)

// RedisCache caches reputation verdicts so repeated checks of the same
// normalized URL skip the remote lookup.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, normalizedURL string) (
	*domain.Reputation, error) {

	key := fmt.Sprintf("%s%s", verdictPrefix, normalizedURL)

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	var rep domain.Reputation
	if err := json.Unmarshal([]byte(val), &rep); err != nil {
		return nil, fmt.Errorf("cache unmarshal error: %w", err)
	}

	return &rep, nil
}

func (c *RedisCache) Set(ctx context.Context, normalizedURL string,
	rep *domain.Reputation) error {

	key := fmt.Sprintf("%s%s", verdictPrefix, normalizedURL)

	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, key, data, defaultTTL).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	return nil
}
