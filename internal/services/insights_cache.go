package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"reviewpulse/pkg/memcache"
)

// InsightsCacheInterface fronts the computed-insights cache. Both backends are
// best-effort: a miss or a backend error just means recomputing.
type InsightsCacheInterface interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

type redisInsightsCache struct {
	client *redis.Client
	logger *zap.SugaredLogger
}

// NewInsightsCache returns a Redis-backed cache, or the in-process TTL cache
// when no Redis client is available.
func NewInsightsCache(client *redis.Client, logger *zap.SugaredLogger) InsightsCacheInterface {
	if client == nil {
		return memcache.NewTTLCache()
	}
	return &redisInsightsCache{client: client, logger: logger}
}

func (c *redisInsightsCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warnw("insights cache get failed", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

func (c *redisInsightsCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warnw("insights cache set failed", "key", key, "error", err)
	}
}

func (c *redisInsightsCache) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warnw("insights cache delete failed", "keys", keys, "error", err)
	}
}
