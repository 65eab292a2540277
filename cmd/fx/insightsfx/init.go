package insightsfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"reviewpulse/internal/api/controllers"
	"reviewpulse/internal/config"
	"reviewpulse/internal/repositories"
	"reviewpulse/internal/services"
)

var Module = fx.Provide(
	provideBrandRepo, provideInsightsService, provideInsightsRefresher, provideInsightsController,
)

func provideBrandRepo(db *gorm.DB) repositories.BrandRepositoryInterface {
	return repositories.NewBrandRepository(db)
}

func provideInsightsService(
	reviews repositories.ReviewRepositoryInterface,
	products repositories.ProductRepositoryInterface,
	brands repositories.BrandRepositoryInterface,
	links repositories.LinkRepositoryInterface,
	analysis services.AnalysisServiceInterface,
	cache services.InsightsCacheInterface,
	cfg *config.Config,
	logger *zap.SugaredLogger,
) services.InsightsServiceInterface {
	return services.NewInsightsService(reviews, products, brands, links, analysis, cache, cfg.InsightsCacheTTL, logger)
}

func provideInsightsRefresher(insights services.InsightsServiceInterface) services.InsightsRefresher {
	return insights
}

func provideInsightsController(insights services.InsightsServiceInterface) *controllers.InsightsController {
	return controllers.NewInsightsController(insights)
}
