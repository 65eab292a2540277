package configfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"reviewpulse/internal/config"
)

var Module = fx.Provide(
	provideConfig, provideLogger, provideSugaredLogger,
)

func provideConfig() (*config.Config, error) {
	return config.Load()
}

func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func provideSugaredLogger(logger *zap.Logger) *zap.SugaredLogger {
	return logger.Sugar()
}
