package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/smart-kitchen/backend/internal/service"
	"github.com/pageza/smart-kitchen/backend/internal/stock"
	"github.com/pageza/smart-kitchen/backend/internal/types"
)

// GenerateHandler serves the stateless generate endpoint used by clients that
// keep their stock on their side.
type GenerateHandler struct {
	generator service.Generator
}

// NewGenerateHandler creates a new GenerateHandler instance
func NewGenerateHandler(generator service.Generator) *GenerateHandler {
	return &GenerateHandler{generator: generator}
}

// RegisterRoutes registers the generate route
func (h *GenerateHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/generate", h.Generate)
}

// Generate runs the pipeline on the submitted ingredient list
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req types.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	snapshot := make(stock.Snapshot, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		name := strings.TrimSpace(ing.Name)
		if name == "" {
			respondError(c, http.StatusBadRequest, stock.ErrEmptyName.Error())
			return
		}
		snapshot = append(snapshot, stock.IngredientEntry{
			ID:       uuid.New(),
			Name:     name,
			Quantity: strings.TrimSpace(ing.Quantity),
		})
	}

	// A client that goes away does not abort the provider call.
	ctx := context.WithoutCancel(c.Request.Context())
	result := h.generator.Generate(ctx, service.NewGenerationRequest("", snapshot))
	if !result.OK() {
		respondGenerationError(c, result.Err)
		return
	}

	c.JSON(http.StatusOK, types.GenerateResponse{Recipe: result.Recipe})
}
