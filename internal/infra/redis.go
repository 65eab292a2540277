package infra

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"reviewpulse/internal/config"
)

// NewRedisClient builds a Redis client for the insights cache. Returns nil
// when no address is configured or the server is unreachable; callers degrade
// to the in-process cache.
func NewRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis: ping failed, falling back to in-process cache: %v", err)
		return nil
	}
	return client
}
