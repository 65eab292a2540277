package linksfx

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
	provideLinkRepo, provideLinkService, provideLinkController,
)

func provideLinkRepo(db *gorm.DB) repositories.LinkRepositoryInterface {
	return repositories.NewLinkRepository(db)
}

func provideLinkService(
	links repositories.LinkRepositoryInterface,
	mail services.IMailService,
	cfg *config.Config,
	logger *zap.SugaredLogger,
) services.LinkServiceInterface {
	return services.NewLinkService(links, mail, cfg.AppBaseURL, cfg.ReviewLinkTTL, logger)
}

func provideLinkController(linkService services.LinkServiceInterface) *controllers.LinkController {
	return controllers.NewLinkController(linkService)
}
