package eventsfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"reviewpulse/internal/config"
	"reviewpulse/internal/events"
	"reviewpulse/internal/repositories"
	"reviewpulse/internal/services"
)

var Module = fx.Options(
	fx.Provide(
		providePublisher, provideEnrichmentService, provideConsumer,
	),
	fx.Invoke(startConsumer),
)

func providePublisher(cfg *config.Config, logger *zap.SugaredLogger) events.ReviewEventPublisherInterface {
	return events.NewAMQPPublisher(cfg.RabbitMQURL, logger)
}

func provideEnrichmentService(
	reviews repositories.ReviewRepositoryInterface,
	analysis services.AnalysisServiceInterface,
	insights services.InsightsRefresher,
	logger *zap.SugaredLogger,
) events.BatchHandler {
	return services.NewEnrichmentService(reviews, analysis, insights, logger)
}

func provideConsumer(cfg *config.Config, handler events.BatchHandler, logger *zap.SugaredLogger) *events.Consumer {
	return events.NewConsumer(cfg.RabbitMQURL, handler, logger)
}

func startConsumer(lc fx.Lifecycle, consumer *events.Consumer) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				consumer.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
