package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/flexprice/aggbot/internal/api"
	v1 "github.com/flexprice/aggbot/internal/api/v1"
	"github.com/flexprice/aggbot/internal/bot"
	"github.com/flexprice/aggbot/internal/config"
	"github.com/flexprice/aggbot/internal/logger"
	"github.com/flexprice/aggbot/internal/metrics"
	"github.com/flexprice/aggbot/internal/pyroscope"
	"github.com/flexprice/aggbot/internal/repository"
	"github.com/flexprice/aggbot/internal/sentry"
	"github.com/flexprice/aggbot/internal/service"
	"github.com/flexprice/aggbot/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// @title Aggbot API
// @version 1.0
// @description Time bucketed aggregation over the readings collection
// @BasePath /v1
// @schemes http https

func init() {
	// Readings are stored and labelled as UTC wall clock time
	time.Local = time.UTC
}

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Supply(cfg),
		fx.Provide(
			// Logger
			logger.NewLogger,

			// Metrics
			metrics.NewDefaultMetrics,

			// Repositories
			repository.NewReadingRepository,

			// Services
			service.NewAggregationService,
		),
		// Monitoring
		sentry.Module(),
		pyroscope.Module(),
		// Store client for the configured backend
		repository.StoreProvider(cfg.Store.Backend),
	)

	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal:
		opts = append(opts, apiOptions(), botOptions())
	case types.ModeAPI:
		opts = append(opts, apiOptions())
	case types.ModeBot:
		opts = append(opts, botOptions())
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}

	app := fx.New(opts...)
	app.Run()
}

func apiOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			provideHandlers,
			api.NewRouter,
		),
		fx.Invoke(startAPIServer),
	)
}

func botOptions() fx.Option {
	return fx.Options(
		fx.Provide(
			bot.NewHandler,
			bot.NewBot,
		),
		fx.Invoke(bot.RegisterHooks),
	)
}

func provideHandlers(
	logger *logger.Logger,
	aggregationService service.AggregationService,
) api.Handlers {
	return api.Handlers{
		Health:      v1.NewHealthHandler(),
		Aggregation: v1.NewAggregationHandler(aggregationService, logger),
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return srv.Shutdown(ctx)
		},
	})
}
