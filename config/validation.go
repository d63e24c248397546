package config

import (
	"errors"
	"fmt"
	"strconv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration for malformed values. A missing
// provider credential is deliberately not an error here; it is reported to
// callers of the generation pipeline instead.
func ValidateConfig(cfg *Config) error {
	var errs []error

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}

	switch cfg.Provider {
	case ProviderGemini, ProviderDeepSeek:
	default:
		errs = append(errs, ValidationError{Field: "LLM_PROVIDER", Message: fmt.Sprintf("unsupported provider %q", cfg.Provider)})
	}

	if cfg.ProviderTimeout <= 0 {
		errs = append(errs, ValidationError{Field: "PROVIDER_TIMEOUT", Message: "must be positive"})
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite":
		if cfg.DBDSN == "" {
			errs = append(errs, ValidationError{Field: "DB_DSN", Message: "required when DB_DRIVER is set"})
		}
	case "none":
	default:
		errs = append(errs, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.SessionSecret == "" {
		errs = append(errs, ValidationError{Field: "SESSION_SECRET", Message: "required in production"})
	}

	if cfg.RedisGuard && cfg.RedisURL == "" {
		errs = append(errs, ValidationError{Field: "REDIS_URL", Message: "required when REDIS_GUARD is enabled"})
	}

	return errors.Join(errs...)
}
