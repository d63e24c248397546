package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/smart-kitchen/backend/internal/database"
	"github.com/pageza/smart-kitchen/backend/internal/service"
	"github.com/pageza/smart-kitchen/backend/internal/types"
)

// HealthHandler reports liveness and, when configured, database reachability.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a new HealthHandler instance. db may be nil.
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := gin.H{
		"status":  "healthy",
		"message": "Smart Kitchen API is running",
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.HealthCheck(ctx, h.db); err != nil {
			resp["status"] = "degraded"
			resp["database"] = err.Error()
			c.JSON(http.StatusServiceUnavailable, resp)
			return
		}
		resp["database"] = "ok"
	}

	c.JSON(http.StatusOK, resp)
}

// respondGenerationError writes a failed GenerationResult.
func respondGenerationError(c *gin.Context, err *service.GenerationError) {
	c.JSON(err.StatusCode(), types.ErrorResponse{Error: err.Message, Kind: string(err.Kind)})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, types.ErrorResponse{Error: message})
}
