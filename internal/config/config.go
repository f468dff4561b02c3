package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const DefaultModel = "gemini-2.5-flash"

type Config struct {
	Port               string
	GeminiAPIKey       string
	GeminiModel        string
	Environment        string
	LogLevel           string
	AllowedOrigins     []string
	GenerationTimeout  time.Duration
	RateLimitPerMinute int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnvWithDefault("PORT", "8080"),
		GeminiAPIKey:   getEnvWithDefault("API_KEY", os.Getenv("GEMINI_API_KEY")),
		GeminiModel:    getEnvWithDefault("GEMINI_MODEL", DefaultModel),
		Environment:    getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:       getEnvWithDefault("LOG_LEVEL", "info"),
		AllowedOrigins: splitList(getEnvWithDefault("ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	timeout, err := time.ParseDuration(getEnvWithDefault("GENERATION_TIMEOUT", "60s"))
	if err != nil {
		return nil, fmt.Errorf("GENERATION_TIMEOUT is invalid: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("GENERATION_TIMEOUT must be positive")
	}
	cfg.GenerationTimeout = timeout

	limit, err := strconv.Atoi(getEnvWithDefault("RATE_LIMIT_PER_MINUTE", "10"))
	if err != nil || limit < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be a non-negative integer")
	}
	cfg.RateLimitPerMinute = limit

	// Validate required fields
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("API_KEY (or GEMINI_API_KEY) is required")
	}
	if len(cfg.AllowedOrigins) == 0 {
		return nil, fmt.Errorf("ALLOWED_ORIGINS must list at least one origin")
	}

	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
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

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// SlogLevel maps LOG_LEVEL onto a slog level, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
