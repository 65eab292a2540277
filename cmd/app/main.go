package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"reviewpulse/cmd/fx/aifx"
	"reviewpulse/cmd/fx/cachefx"
	"reviewpulse/cmd/fx/configfx"
	"reviewpulse/cmd/fx/dbfx"
	"reviewpulse/cmd/fx/eventsfx"
	"reviewpulse/cmd/fx/insightsfx"
	"reviewpulse/cmd/fx/linksfx"
	"reviewpulse/cmd/fx/mailfx"
	"reviewpulse/cmd/fx/reviewsfx"
	"reviewpulse/internal/api/controllers"
	"reviewpulse/internal/config"
	"reviewpulse/internal/services"
	"reviewpulse/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),

		configfx.Module,
		dbfx.Module,
		cachefx.Module,
		mailfx.Module,
		aifx.Module,
		linksfx.Module,
		reviewsfx.Module,
		insightsfx.Module,
		eventsfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, logger *zap.SugaredLogger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Infow("starting HTTP server", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatalw("HTTP server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	linkController *controllers.LinkController,
	reviewController *controllers.ReviewController,
	insightsController *controllers.InsightsController,
) *gin.Engine {
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.HandleMethodNotAllowed = true

	RegisterRoutes(r, cfg, linkController, reviewController, insightsController)

	return r
}

func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	linkController *controllers.LinkController,
	reviewController *controllers.ReviewController,
	insightsController *controllers.InsightsController,
) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public: the link token is the credential.
	r.GET("/review/:token", reviewController.GetPrefill)
	r.POST("/review", reviewController.SubmitReview)

	auth := r.Group("/", middleware.JWTAuthMiddleware(cfg.JWTSecret))

	linksGroup := auth.Group("/links", middleware.RoleMiddleware("admin", services.RoleSuperadmin))
	linksGroup.POST("", linkController.SendReviewLink)

	insightsGroup := auth.Group("/insights", middleware.RoleMiddleware("viewer", "admin", services.RoleSuperadmin))
	insightsGroup.GET("/product/:productId", insightsController.GetProductInsights)
	insightsGroup.GET("/brand", insightsController.GetBrandInsights)
	insightsGroup.GET("/global", insightsController.GetGlobalInsights)
}
