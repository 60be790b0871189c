package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// API Configuration
	APIPort        string
	APIHost        string
	APIEnvironment string
	PublicURL      string

	// Affiliate backend
	BackendURL     string
	BackendTimeout time.Duration

	// Client storage
	StorageDriver        string
	RedisURL             string
	DatabaseURL          string
	SessionTTL           time.Duration
	StoragePurgeSchedule string

	// Admin
	AdminPassword     string
	AdminPasswordHash string

	// Client cookie
	ClientCookieName   string
	ClientCookieSecure bool

	// Redirect fallback
	RedirectNoDestinationDelay time.Duration
	RedirectErrorDelay         time.Duration

	// CORS
	CORSAllowedOrigins []string

	// Rate Limiting
	RateLimitRequestsPerMinute int
	RateLimitBurst             int

	// Logging
	LogLevel string

	// Sentry
	SentryDSN         string
	SentryEnvironment string
}

// Load loads configuration from environment variables.
// A .env file in the working directory is read first when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("📄 Loaded environment from .env")
	}

	return &Config{
		// API
		APIPort:        getEnv("API_PORT", "8080"),
		APIHost:        getEnv("API_HOST", "0.0.0.0"),
		APIEnvironment: getEnv("API_ENVIRONMENT", "development"),
		PublicURL:      getEnv("PUBLIC_URL", "http://localhost:3000"),

		// Backend
		BackendURL:     strings.TrimRight(getEnv("BACKEND_URL", "http://localhost:5000/api"), "/"),
		BackendTimeout: getEnvAsDuration("BACKEND_TIMEOUT", 0),

		// Storage
		StorageDriver:        getEnv("STORAGE_DRIVER", "memory"),
		RedisURL:             getEnv("REDIS_URL", "redis://localhost:6379"),
		DatabaseURL:          getEnv("DATABASE_URL", "file:alug.db?_busy_timeout=5000"),
		SessionTTL:           getEnvAsDuration("SESSION_TTL", 12*time.Hour),
		StoragePurgeSchedule: getEnv("STORAGE_PURGE_SCHEDULE", "*/30 * * * *"),

		// Admin
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		// Client cookie
		ClientCookieName:   getEnv("CLIENT_COOKIE_NAME", "alug_client"),
		ClientCookieSecure: getEnvAsBool("CLIENT_COOKIE_SECURE", false),

		// Redirect
		RedirectNoDestinationDelay: getEnvAsDuration("REDIRECT_NO_DESTINATION_DELAY", 2*time.Second),
		RedirectErrorDelay:         getEnvAsDuration("REDIRECT_ERROR_DELAY", 3*time.Second),

		// CORS
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		// Rate Limiting
		RateLimitRequestsPerMinute: getEnvAsInt("RATE_LIMIT_REQUESTS_PER_MINUTE", 120),
		RateLimitBurst:             getEnvAsInt("RATE_LIMIT_BURST", 20),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Sentry
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", "development"),
	}
}

// AdminPasswordConfigured reports whether the password-based admin entry is enabled.
func (c *Config) AdminPasswordConfigured() bool {
	return c.AdminPassword != "" || c.AdminPasswordHash != ""
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
