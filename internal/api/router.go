package api

import (
	v1 "github.com/flexprice/aggbot/internal/api/v1"
	"github.com/flexprice/aggbot/internal/config"
	"github.com/flexprice/aggbot/internal/rest/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Health      *v1.HealthHandler
	Aggregation *v1.AggregationHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	router.POST("/aggregate", handlers.Aggregation.Aggregate)
}
