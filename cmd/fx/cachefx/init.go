package cachefx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"reviewpulse/internal/config"
	"reviewpulse/internal/infra"
	"reviewpulse/internal/services"
)

var Module = fx.Provide(
	provideRedisClient, provideInsightsCache,
)

func provideRedisClient(cfg *config.Config) *redis.Client {
	return infra.NewRedisClient(cfg)
}

func provideInsightsCache(client *redis.Client, logger *zap.SugaredLogger) services.InsightsCacheInterface {
	return services.NewInsightsCache(client, logger)
}
