package reviewsfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"reviewpulse/internal/api/controllers"
	"reviewpulse/internal/events"
	"reviewpulse/internal/repositories"
	"reviewpulse/internal/services"
)

var Module = fx.Provide(
	provideReviewRepo, provideProductRepo, provideReviewService, provideReviewController,
)

func provideReviewRepo(db *gorm.DB) repositories.ReviewRepositoryInterface {
	return repositories.NewReviewRepository(db)
}

func provideProductRepo(db *gorm.DB) repositories.ProductRepositoryInterface {
	return repositories.NewProductRepository(db)
}

func provideReviewService(
	linkService services.LinkServiceInterface,
	reviews repositories.ReviewRepositoryInterface,
	products repositories.ProductRepositoryInterface,
	publisher events.ReviewEventPublisherInterface,
	logger *zap.SugaredLogger,
) services.ReviewServiceInterface {
	return services.NewReviewService(linkService, reviews, products, publisher, logger)
}

func provideReviewController(reviewService services.ReviewServiceInterface) *controllers.ReviewController {
	return controllers.NewReviewController(reviewService)
}
