package service

import (
	"errors"
	"net/http"
)

// ErrorKind classifies a failed generation.
type ErrorKind string

const (
	// KindEmptyStock means no ingredients were submitted.
	KindEmptyStock ErrorKind = "empty_stock"
	// KindMissingCredential means the provider credential is not configured.
	KindMissingCredential ErrorKind = "missing_credential"
	// KindProvider means the provider call failed or returned an error.
	KindProvider ErrorKind = "provider_error"
	// KindInProgress means the session already has a generation pending.
	KindInProgress ErrorKind = "generation_in_progress"
)

var (
	ErrEmptyStock           = errors.New("No ingredients provided")
	ErrMissingCredential    = errors.New("API key not configured")
	ErrProvider             = errors.New("Failed to generate recipe")
	ErrGenerationInProgress = errors.New("A recipe is already being generated")
)

var sentinels = map[ErrorKind]error{
	KindEmptyStock:        ErrEmptyStock,
	KindMissingCredential: ErrMissingCredential,
	KindProvider:          ErrProvider,
	KindInProgress:        ErrGenerationInProgress,
}

// GenerationError is the typed failure half of a GenerationResult.
type GenerationError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"error"`
}

func (e *GenerationError) Error() string {
	return e.Message
}

// Is lets errors.Is match a GenerationError against the package sentinels.
func (e *GenerationError) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// StatusCode maps the kind to the HTTP status returned to callers.
func (e *GenerationError) StatusCode() int {
	switch e.Kind {
	case KindEmptyStock:
		return http.StatusBadRequest
	case KindInProgress:
		return http.StatusConflict
	case KindProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func newGenerationError(kind ErrorKind, message string) *GenerationError {
	if message == "" {
		message = sentinels[kind].Error()
	}
	return &GenerationError{Kind: kind, Message: message}
}
