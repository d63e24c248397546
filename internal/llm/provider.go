// Package llm contains clients for the text-generation providers used to
// write recipes.
package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pageza/smart-kitchen/backend/config"
)

// Provider sends one prompt and returns the complete text reply.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// APIError is returned when the provider answers with an error payload or a
// non-2xx status. Message is the provider's own explanation when it sent one.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s API request failed with status %d", e.Provider, e.StatusCode)
	}
	return e.Message
}

// NewProvider builds the provider selected in cfg.
func NewProvider(cfg *config.Config) (Provider, error) {
	client := &http.Client{Timeout: cfg.ProviderTimeout}

	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiClient(cfg.ProviderAPIKey, cfg.ProviderAPIURL, cfg.ProviderModel, client), nil
	case config.ProviderDeepSeek:
		return NewChatClient(cfg.ProviderAPIKey, cfg.ProviderAPIURL, cfg.ProviderModel, client), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}
