package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/smart-kitchen/backend/config"
	"github.com/pageza/smart-kitchen/backend/internal/llm"
	"github.com/pageza/smart-kitchen/backend/internal/logger"
	"github.com/pageza/smart-kitchen/backend/internal/models"
	"github.com/pageza/smart-kitchen/backend/internal/stock"
)

// GenerationRequest wraps the stock as it was when the user submitted it.
type GenerationRequest struct {
	ID          uuid.UUID
	SessionID   string
	Snapshot    stock.Snapshot
	SubmittedAt time.Time
}

// NewGenerationRequest copies snapshot so later edits to the caller's slice
// cannot reach a request in flight.
func NewGenerationRequest(sessionID string, snapshot stock.Snapshot) GenerationRequest {
	own := make(stock.Snapshot, len(snapshot))
	copy(own, snapshot)
	return GenerationRequest{
		ID:          uuid.New(),
		SessionID:   sessionID,
		Snapshot:    own,
		SubmittedAt: time.Now(),
	}
}

// GenerationResult holds either a sanitized recipe fragment or an error, never both.
type GenerationResult struct {
	Recipe string
	Err    *GenerationError
}

// OK reports whether the result carries a recipe.
func (r GenerationResult) OK() bool {
	return r.Err == nil
}

func succeeded(recipe string) GenerationResult {
	return GenerationResult{Recipe: recipe}
}

func failed(err *GenerationError) GenerationResult {
	return GenerationResult{Err: err}
}

// Generator produces a recipe for a request.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) GenerationResult
}

// AuditRecorder stores one record per generation attempt.
type AuditRecorder interface {
	Record(ctx context.Context, record *models.GenerationRecord) error
}

// GenerationService runs the recipe pipeline: validate, check the credential,
// build the prompt, call the provider once and sanitize the reply.
type GenerationService struct {
	cfg      *config.Config
	provider llm.Provider
	audit    AuditRecorder
}

// NewGenerationService creates a GenerationService. audit may be nil.
func NewGenerationService(cfg *config.Config, provider llm.Provider, audit AuditRecorder) *GenerationService {
	return &GenerationService{
		cfg:      cfg,
		provider: provider,
		audit:    audit,
	}
}

// Generate implements Generator. Every failure is returned inside the result.
func (s *GenerationService) Generate(ctx context.Context, req GenerationRequest) (result GenerationResult) {
	start := time.Now()
	log := logger.L().With(
		zap.String("request_id", req.ID.String()),
		zap.String("session_id", req.SessionID),
		zap.Int("ingredients", req.Snapshot.Len()),
	)

	defer func() {
		if r := recover(); r != nil {
			log.Error("recipe generation panicked", zap.Any("panic", r))
			result = failed(newGenerationError(KindProvider, ""))
		}
		s.record(ctx, req, result, time.Since(start))
		if result.OK() {
			log.Info("recipe generated", zap.Duration("duration", time.Since(start)))
		} else {
			log.Warn("recipe generation failed",
				zap.String("kind", string(result.Err.Kind)),
				zap.String("error", result.Err.Message),
				zap.Duration("duration", time.Since(start)))
		}
	}()

	if req.Snapshot.Len() == 0 {
		return failed(newGenerationError(KindEmptyStock, ""))
	}

	if !s.cfg.HasCredential() {
		return failed(newGenerationError(KindMissingCredential, ""))
	}

	prompt := BuildPrompt(req.Snapshot)

	raw, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		return failed(providerError(err))
	}

	return succeeded(SanitizeRecipe(raw))
}

// providerError keeps the provider's own message when it sent one.
func providerError(err error) *GenerationError {
	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		return newGenerationError(KindProvider, apiErr.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newGenerationError(KindProvider, "The recipe provider did not answer in time")
	}
	return newGenerationError(KindProvider, err.Error())
}

func (s *GenerationService) record(ctx context.Context, req GenerationRequest, result GenerationResult, elapsed time.Duration) {
	if s.audit == nil {
		return
	}

	rec := &models.GenerationRecord{
		RequestID:       req.ID,
		SessionID:       req.SessionID,
		Provider:        s.providerName(),
		IngredientCount: req.Snapshot.Len(),
		Outcome:         models.OutcomeSucceeded,
		DurationMs:      elapsed.Milliseconds(),
	}
	if !result.OK() {
		rec.Outcome = models.OutcomeFailed
		rec.ErrorKind = string(result.Err.Kind)
		rec.Message = result.Err.Message
	}

	// The audit write must not turn a finished generation into a failure.
	if err := s.audit.Record(context.WithoutCancel(ctx), rec); err != nil {
		logger.L().Warn("failed to record generation", zap.Error(fmt.Errorf("audit: %w", err)))
	}
}

func (s *GenerationService) providerName() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}
