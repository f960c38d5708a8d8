package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	foodex2 "github.com/openfoodex/foodex2validator"
)

// NewRouter builds the gin engine serving the validator's HTTP API:
// POST /v1/validate, POST /v1/validate/batch, GET /v1/terms/search,
// GET /v1/hierarchy/:hierarchy/:code/path, GET /healthz, GET /metrics.
func NewRouter(engine *foodex2.Engine, logger *zap.Logger, defaultConcurrency int) *gin.Engine {
	handlers := NewHandlers(engine, logger, defaultConcurrency)

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), metricsMiddleware())

	router.GET("/healthz", handlers.HandleHealthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	{
		v1.POST("/validate", handlers.HandleValidate)
		v1.POST("/validate/batch", handlers.HandleValidateBatch)
		v1.GET("/terms/search", handlers.HandleSearchTerms)
		v1.GET("/hierarchy/:hierarchy/:code/path", handlers.HandleHierarchyPath)
	}

	return router
}
