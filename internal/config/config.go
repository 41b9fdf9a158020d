// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/navigatorlink/navigatorlink/pkg/navigator"
)

// Config holds runtime configuration for the link API.
type Config struct {
	Port        string
	Environment string

	OTELEnabled  bool
	OTLPEndpoint string

	RequireTLS bool

	// RateLimitPerMinute caps link builds per client IP.
	RateLimitPerMinute int

	Navigator NavigatorConfig
}

// NavigatorConfig holds deep link defaults applied when a request leaves them out.
type NavigatorConfig struct {
	Product         string
	DefaultEncoding string
	CallbackURL     string
	CallbackPrompt  string
}

// ConfigFromEnv creates a Config from environment variables.
func ConfigFromEnv() Config {
	rateLimit, _ := strconv.Atoi(getEnvOrDefault("RATE_LIMIT_PER_MINUTE", "60"))

	return Config{
		Port:               getEnvOrDefault("APP_PORT", "8080"),
		Environment:        getEnvOrDefault("APP_ENV", "development"),
		OTELEnabled:        os.Getenv("OTEL_ENABLED") == "true",
		OTLPEndpoint:       getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		RequireTLS:         os.Getenv("REQUIRE_TLS") == "true",
		RateLimitPerMinute: rateLimit,
		Navigator: NavigatorConfig{
			Product:         getEnvOrDefault("NAVIGATOR_PRODUCT", navigator.DefaultProduct),
			DefaultEncoding: getEnvOrDefault("NAVIGATOR_DEFAULT_ENCODING", navigator.QueryEncoding),
			CallbackURL:     os.Getenv("NAVIGATOR_CALLBACK_URL"),
			CallbackPrompt:  os.Getenv("NAVIGATOR_CALLBACK_PROMPT"),
		},
	}
}

// Validate checks values that cannot be defaulted silently.
func (c Config) Validate() error {
	if _, ok := navigator.EncoderByName(c.Navigator.DefaultEncoding); !ok {
		return fmt.Errorf("NAVIGATOR_DEFAULT_ENCODING: unknown encoding %q", c.Navigator.DefaultEncoding)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE: must be positive, got %d", c.RateLimitPerMinute)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
