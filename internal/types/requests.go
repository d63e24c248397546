package types

import (
	"time"

	"github.com/google/uuid"
)

// IngredientPayload is one ingredient as sent by the web UI. Quantity is the
// display string ("6 Unité(s)") or empty when it does not apply.
type IngredientPayload struct {
	Name     string `json:"name" binding:"required"`
	Quantity string `json:"quantity"`
}

// GenerateRequest represents the request body for the stateless generate endpoint
type GenerateRequest struct {
	Ingredients []IngredientPayload `json:"ingredients" binding:"dive"`
}

// GenerateResponse carries a sanitized recipe fragment
type GenerateResponse struct {
	Recipe string `json:"recipe"`
}

// ErrorResponse is returned for every failed request. Kind is set for
// generation failures only.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// AddIngredientRequest represents the request body for adding to the stock
type AddIngredientRequest struct {
	Name   string `json:"name" binding:"required"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// IngredientResponse is one stock entry
type IngredientResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity string    `json:"quantity,omitempty"`
}

// StockResponse lists the session stock in insertion order
type StockResponse struct {
	Ingredients []IngredientResponse `json:"ingredients"`
}

// SessionResponse is returned when a session is opened
type SessionResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"session_id"`
}

// GenerationStatusResponse reports the session generation state and the
// last finished result
type GenerationStatusResponse struct {
	State  string `json:"state"`
	Recipe string `json:"recipe,omitempty"`
	Error  string `json:"error,omitempty"`
	Kind   string `json:"kind,omitempty"`
}

// UnitsResponse lists the selectable units
type UnitsResponse struct {
	Units   []string `json:"units"`
	Default string   `json:"default"`
}

// GenerationRecordResponse is one audit record
type GenerationRecordResponse struct {
	ID              uuid.UUID `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	SessionID       string    `json:"session_id,omitempty"`
	Provider        string    `json:"provider"`
	IngredientCount int       `json:"ingredient_count"`
	Outcome         string    `json:"outcome"`
	ErrorKind       string    `json:"error_kind,omitempty"`
	Message         string    `json:"message,omitempty"`
	DurationMs      int64     `json:"duration_ms"`
}

// GenerationsResponse lists recent audit records with totals per outcome
type GenerationsResponse struct {
	Generations []GenerationRecordResponse `json:"generations"`
	Totals      map[string]int64           `json:"totals"`
}
