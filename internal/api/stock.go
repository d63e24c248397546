package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/smart-kitchen/backend/internal/middleware"
	"github.com/pageza/smart-kitchen/backend/internal/service"
	"github.com/pageza/smart-kitchen/backend/internal/stock"
	"github.com/pageza/smart-kitchen/backend/internal/types"
)

// StockHandler serves the session stock and its generation cycle.
type StockHandler struct {
	tokens    *service.SessionService
	sessions  *service.SessionStore
	submitter *service.SessionGenerator
}

// NewStockHandler creates a new StockHandler instance
func NewStockHandler(tokens *service.SessionService, sessions *service.SessionStore, submitter *service.SessionGenerator) *StockHandler {
	return &StockHandler{
		tokens:    tokens,
		sessions:  sessions,
		submitter: submitter,
	}
}

// RegisterRoutes registers the session and stock routes
func (h *StockHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/sessions", h.OpenSession)

	stockGroup := router.Group("/stock")
	stockGroup.Use(middleware.SessionMiddleware(h.tokens))
	{
		stockGroup.GET("", h.ListIngredients)
		stockGroup.POST("", h.AddIngredient)
		stockGroup.DELETE("/:id", h.RemoveIngredient)
		stockGroup.POST("/generate", h.Generate)
		stockGroup.GET("/generation", h.GenerationStatus)
	}
}

// OpenSession issues a token for a fresh, empty session
func (h *StockHandler) OpenSession(c *gin.Context) {
	token, sessionID, err := h.tokens.IssueToken()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to open session")
		return
	}
	h.sessions.Get(sessionID)

	c.JSON(http.StatusCreated, types.SessionResponse{Token: token, SessionID: sessionID})
}

func (h *StockHandler) session(c *gin.Context) (*service.Session, bool) {
	id, ok := middleware.SessionID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	return h.sessions.Get(id), true
}

// ListIngredients returns the session stock
func (h *StockHandler) ListIngredients(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, types.StockResponse{Ingredients: toIngredientResponses(sess.Ingredients())})
}

// AddIngredient adds one ingredient to the session stock
func (h *StockHandler) AddIngredient(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req types.AddIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	unit := stock.Unit(req.Unit)
	if unit == "" {
		unit = stock.DefaultUnit
	}

	entry, err := sess.AddIngredient(req.Name, req.Amount, unit)
	if err != nil {
		switch {
		case errors.Is(err, stock.ErrEmptyName),
			errors.Is(err, stock.ErrQuantityRequired),
			errors.Is(err, stock.ErrQuantityNotAllowed),
			errors.Is(err, stock.ErrUnknownUnit):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "failed to add ingredient")
		}
		return
	}

	c.JSON(http.StatusCreated, toIngredientResponse(entry))
}

// RemoveIngredient removes an ingredient. Removing an unknown id succeeds.
func (h *StockHandler) RemoveIngredient(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid ingredient id")
		return
	}

	sess.RemoveIngredient(id)
	c.Status(http.StatusNoContent)
}

// Generate snapshots the session stock and runs the pipeline on it
func (h *StockHandler) Generate(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	result := h.submitter.Submit(context.WithoutCancel(c.Request.Context()), sess)
	if !result.OK() {
		respondGenerationError(c, result.Err)
		return
	}

	c.JSON(http.StatusOK, types.GenerateResponse{Recipe: result.Recipe})
}

// GenerationStatus reports the session state and last result
func (h *StockHandler) GenerationStatus(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	state, last := sess.Status()
	resp := types.GenerationStatusResponse{State: string(state)}
	if last != nil {
		if last.OK() {
			resp.Recipe = last.Recipe
		} else {
			resp.Error = last.Err.Message
			resp.Kind = string(last.Err.Kind)
		}
	}

	c.JSON(http.StatusOK, resp)
}

func toIngredientResponse(entry stock.IngredientEntry) types.IngredientResponse {
	return types.IngredientResponse{ID: entry.ID, Name: entry.Name, Quantity: entry.Quantity}
}

func toIngredientResponses(entries []stock.IngredientEntry) []types.IngredientResponse {
	out := make([]types.IngredientResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toIngredientResponse(entry))
	}
	return out
}
