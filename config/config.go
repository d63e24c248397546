package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Supported generation providers
const (
	ProviderGemini   = "gemini"
	ProviderDeepSeek = "deepseek"
)

const (
	defaultGeminiURL     = "https://generativelanguage.googleapis.com/v1beta"
	defaultGeminiModel   = "gemini-3-pro-preview"
	defaultDeepSeekURL   = "https://api.deepseek.com/v1/chat/completions"
	defaultDeepSeekModel = "deepseek-chat"
)

// Config holds all configuration for the application.
// It is built once at startup and treated as read-only afterwards.
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Generation provider configuration. An empty ProviderAPIKey is allowed
	// at startup and reported per request as a missing credential.
	Provider        string
	ProviderAPIKey  string
	ProviderAPIURL  string
	ProviderModel   string
	ProviderTimeout time.Duration

	// Session tokens
	SessionSecret string
	SessionTTL    time.Duration

	// OperatorToken unlocks the generation audit routes. Empty keeps them closed.
	OperatorToken string

	// Audit database configuration
	DBDriver string
	DBDSN    string

	// Redis configuration
	RedisURL   string
	RedisGuard bool
	GuardTTL   time.Duration
}

// HasCredential reports whether a provider credential was resolved.
func (c *Config) HasCredential() bool {
	return c != nil && c.ProviderAPIKey != ""
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env.loadsDotEnv() {
		// .env.local wins over .env; godotenv never overrides variables already set.
		for _, name := range []string{".env.local", ".env"} {
			if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load %s: %w", name, err)
			}
		}
	}

	cfg := &Config{
		Environment: env,
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		ServerHost:  getEnv("SERVER_HOST", ""),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		Provider:    strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:       getEnv("DB_DSN", "smartkitchen.db"),
		RedisURL:    lookup("REDIS_URL", "redis_url"),

		OperatorToken: lookup("OPERATOR_TOKEN", "operator_token"),
	}

	switch cfg.Provider {
	case ProviderGemini:
		cfg.ProviderAPIKey = lookup("GEMINI_API_KEY", "gemini_api_key")
		cfg.ProviderAPIURL = getEnv("GEMINI_API_URL", defaultGeminiURL)
		cfg.ProviderModel = getEnv("GEMINI_MODEL", defaultGeminiModel)
	case ProviderDeepSeek:
		cfg.ProviderAPIKey = lookup("DEEPSEEK_API_KEY", "deepseek_api_key")
		cfg.ProviderAPIURL = getEnv("DEEPSEEK_API_URL", defaultDeepSeekURL)
		cfg.ProviderModel = getEnv("DEEPSEEK_MODEL", defaultDeepSeekModel)
	}

	var err error
	if cfg.ProviderTimeout, err = parseDuration("PROVIDER_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = parseDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.GuardTTL, err = parseDuration("GUARD_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RedisGuard, err = parseBool("REDIS_GUARD", false); err != nil {
		return nil, err
	}

	cfg.SessionSecret = lookup("SESSION_SECRET", "session_secret")
	if cfg.SessionSecret == "" && env != Production {
		// Tokens from a previous run become invalid, which is fine outside production.
		cfg.SessionSecret = uuid.NewString()
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// lookup resolves a value from NAME, then from the file named by NAME_FILE,
// then from the secrets directory.
func lookup(envName, secretName string) string {
	if v := strings.TrimSpace(os.Getenv(envName)); v != "" {
		return v
	}
	if file := os.Getenv(envName + "_FILE"); file != "" {
		if data, err := os.ReadFile(file); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, ValidationError{Field: key, Message: fmt.Sprintf("invalid duration %q", raw)}
	}
	return d, nil
}

func parseBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, ValidationError{Field: key, Message: fmt.Sprintf("invalid boolean %q", raw)}
	}
	return b, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
