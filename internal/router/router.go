package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/smart-kitchen/backend/internal/api"
	"github.com/pageza/smart-kitchen/backend/internal/middleware"
)

// Handlers groups the handlers mounted by SetupRouter
type Handlers struct {
	Health      *api.HealthHandler
	Generate    *api.GenerateHandler
	Stock       *api.StockHandler
	Generations *api.GenerationsHandler
}

// SetupRouter configures the application routes
func SetupRouter(log *zap.Logger, corsOrigins []string, h Handlers) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(corsOrigins))

	router.GET("/health", h.Health.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.GET("/units", api.ListUnits)
	h.Generate.RegisterRoutes(v1)
	h.Stock.RegisterRoutes(v1)
	h.Generations.RegisterRoutes(v1)

	return router
}
