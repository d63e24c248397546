package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/smart-kitchen/backend/internal/logger"
	"github.com/pageza/smart-kitchen/backend/internal/middleware"
	"github.com/pageza/smart-kitchen/backend/internal/models"
	"github.com/pageza/smart-kitchen/backend/internal/service"
	"github.com/pageza/smart-kitchen/backend/internal/types"
)

// GenerationsHandler exposes the generation audit trail to operators.
type GenerationsHandler struct {
	audit         *service.AuditService
	operatorToken string
}

// NewGenerationsHandler creates a new GenerationsHandler instance. audit may
// be nil when no database is configured. The routes only answer requests
// carrying operatorToken.
func NewGenerationsHandler(audit *service.AuditService, operatorToken string) *GenerationsHandler {
	return &GenerationsHandler{audit: audit, operatorToken: operatorToken}
}

// RegisterRoutes registers the audit routes
func (h *GenerationsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/generations", middleware.OperatorMiddleware(h.operatorToken), h.ListGenerations)
}

// ListGenerations returns recent generation records, newest first
func (h *GenerationsHandler) ListGenerations(c *gin.Context) {
	if h.audit == nil {
		respondError(c, http.StatusServiceUnavailable, "generation audit is disabled")
		return
	}

	filter := service.AuditFilter{
		SessionID: c.Query("session_id"),
		Outcome:   c.Query("outcome"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}
	switch filter.Outcome {
	case "", models.OutcomeSucceeded, models.OutcomeFailed:
	default:
		respondError(c, http.StatusBadRequest, "invalid outcome")
		return
	}

	records, err := h.audit.ListRecent(c.Request.Context(), filter)
	if err != nil {
		logger.L().Error("failed to list generations", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list generations")
		return
	}

	totals, err := h.audit.Stats(c.Request.Context())
	if err != nil {
		logger.L().Error("failed to count generations", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to list generations")
		return
	}

	resp := types.GenerationsResponse{
		Generations: make([]types.GenerationRecordResponse, 0, len(records)),
		Totals:      totals,
	}
	for _, rec := range records {
		resp.Generations = append(resp.Generations, types.GenerationRecordResponse{
			ID:              rec.ID,
			CreatedAt:       rec.CreatedAt,
			SessionID:       rec.SessionID,
			Provider:        rec.Provider,
			IngredientCount: rec.IngredientCount,
			Outcome:         rec.Outcome,
			ErrorKind:       rec.ErrorKind,
			Message:         rec.Message,
			DurationMs:      rec.DurationMs,
		})
	}

	c.JSON(http.StatusOK, resp)
}
