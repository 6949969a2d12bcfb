package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mmuslimabdulj/goat-relay/internal/domain"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port            string
	ShutdownTimeout time.Duration
	StaticDir       string

	// Security
	AllowedOrigins []string

	// Rate Limiting
	RateLimitWS     rate.Limit
	RateLimitEvents rate.Limit
	EventBurst      int

	// Logging
	LogLevel string

	// WebSocket
	MaxMessageSize int64

	// Moderation
	ProfanityFilter bool
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Port:            "3000",
		ShutdownTimeout: domain.ShutdownGracePeriod,
		AllowedOrigins:  []string{"http://localhost:3000"},
		RateLimitWS:     domain.DefaultRateLimitWS,
		RateLimitEvents: domain.DefaultRateLimitEvents,
		EventBurst:      domain.DefaultEventBurst,
		LogLevel:        "info", // Options: debug, info, warn, error, silent
		MaxMessageSize:  domain.MaxMessageSize,
		ProfanityFilter: true,
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	cfg := DefaultConfig()

	// Server
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if secs := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); secs != "" {
		if val, err := strconv.Atoi(secs); err == nil && val > 0 {
			cfg.ShutdownTimeout = time.Duration(val) * time.Second
		}
	}

	if dir := os.Getenv("STATIC_DIR"); dir != "" {
		cfg.StaticDir = dir
	}

	// Security
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = parseOrigins(origins)
	}

	// Rate Limiting
	if rl := os.Getenv("RATE_LIMIT_WS"); rl != "" {
		if val, err := strconv.Atoi(rl); err == nil && val > 0 {
			cfg.RateLimitWS = rate.Limit(val)
		}
	}

	if rl := os.Getenv("RATE_LIMIT_EVENTS"); rl != "" {
		if val, err := strconv.Atoi(rl); err == nil && val > 0 {
			cfg.RateLimitEvents = rate.Limit(val)
		}
	}

	if b := os.Getenv("EVENT_BURST"); b != "" {
		if val, err := strconv.Atoi(b); err == nil && val > 0 {
			cfg.EventBurst = val
		}
	}

	// Logging
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	// WebSocket
	if size := os.Getenv("MAX_MESSAGE_SIZE"); size != "" {
		if val, err := strconv.ParseInt(size, 10, 64); err == nil && val > 0 {
			cfg.MaxMessageSize = val
		}
	}

	// Moderation
	if pf := os.Getenv("PROFANITY_FILTER"); pf != "" {
		if val, err := strconv.ParseBool(pf); err == nil {
			cfg.ProfanityFilter = val
		}
	}

	return cfg
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

// SlogLevel maps LogLevel to a slog level. Silent reports false.
func (c *Config) SlogLevel() (slog.Level, bool) {
	switch c.LogLevel {
	case "silent", "off":
		return 0, false
	case "debug":
		return slog.LevelDebug, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, true
	}
}

// parseOrigins parses comma-separated origins
func parseOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
