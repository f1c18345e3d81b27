package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string
	Environment    string

	BackendAPIURL  string
	BackendTimeout time.Duration

	SessionCookieName string
	SessionJWTSecret  string // optional; empty means every session is resolved through the backend

	DatabaseURL string
	RedisURL    string

	Form FormPolicy

	NicknameDebounce time.Duration
}

// FormPolicy selects between the validator variants that exist for the activity form
type FormPolicy struct {
	DescriptionRequired bool
	DurationFloor       int  // 1 clamps while typing, 0 leaves short values for the submit check
	SameDayStrict       bool // reject a same-day start that is already in the past
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		AllowedOrigins:    parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		Environment:       getEnv("ENVIRONMENT", "production"),
		BackendAPIURL:     strings.TrimRight(getEnv("BACKEND_API_URL", "http://localhost:8080/api"), "/"),
		BackendTimeout:    getDurationEnv("BACKEND_TIMEOUT", 10*time.Second),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "session"),
		SessionJWTSecret:  getEnv("SESSION_JWT_SECRET", ""),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		Form: FormPolicy{
			DescriptionRequired: getBoolEnv("FORM_DESCRIPTION_REQUIRED", true),
			DurationFloor:       parseDurationFloor(getEnv("FORM_DURATION_FLOOR", "1")),
			SameDayStrict:       getBoolEnv("FORM_SAME_DAY_STRICT", false),
		},
		NicknameDebounce: getDurationEnv("NICKNAME_DEBOUNCE", 500*time.Millisecond),
	}, nil
}

// IsDevelopment reports whether the service runs outside production
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "local"
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// parseOrigins parses comma-separated origins into a slice
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

// parseDurationFloor accepts only the two floors that exist; anything else means 1
func parseDurationFloor(value string) int {
	if strings.TrimSpace(value) == "0" {
		return 0
	}
	return 1
}
