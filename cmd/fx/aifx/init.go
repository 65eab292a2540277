package aifx

import (
	"go.uber.org/fx"

	"reviewpulse/internal/config"
	"reviewpulse/internal/services"
	"reviewpulse/pkg/utils"
)

var Module = fx.Provide(
	provideAIClient, provideAnalysisService,
)

func provideAIClient(cfg *config.Config) (utils.AIClientInterface, error) {
	return utils.NewAIClient(cfg.AIProvider, cfg.AIAPIKey, cfg.AIModel)
}

func provideAnalysisService(client utils.AIClientInterface, cfg *config.Config) services.AnalysisServiceInterface {
	return services.NewAnalysisService(client, cfg.AITimeout)
}
