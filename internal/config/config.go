package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for a gateway process.
// Following 12-factor app principles, all config is loaded from
// environment variables; a local .env file is honored when present.
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Menu     MenuConfig
	Kitchen  KitchenConfig
	Cart     CartConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// UpstreamConfig points at the restaurant platform API that owns all
// persistent state. Username and password are the service account the
// admin gateway uses for background polling; they are unused by the
// kiosk gateway.
type UpstreamConfig struct {
	BaseURL  string
	Timeout  time.Duration
	Username string
	Password string
}

type MenuConfig struct {
	CacheTTL time.Duration
}

type KitchenConfig struct {
	PollInterval time.Duration
	OrderLimit   int
	LateAfter    time.Duration
}

type CartConfig struct {
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Best effort: missing .env files are fine in production.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Upstream: UpstreamConfig{
			BaseURL:  getEnv("UPSTREAM_BASE_URL", "http://localhost:8000/api/v1"),
			Timeout:  getEnvAsDuration("UPSTREAM_TIMEOUT", 15*time.Second),
			Username: getEnv("UPSTREAM_USERNAME", ""),
			Password: getEnv("UPSTREAM_PASSWORD", ""),
		},
		Menu: MenuConfig{
			CacheTTL: getEnvAsDuration("MENU_CACHE_TTL", 30*time.Second),
		},
		Kitchen: KitchenConfig{
			PollInterval: getEnvAsDuration("KITCHEN_POLL_INTERVAL", 10*time.Second),
			OrderLimit:   getEnvAsInt("KITCHEN_ORDER_LIMIT", 50),
			LateAfter:    getEnvAsDuration("KITCHEN_LATE_AFTER", 15*time.Minute),
		},
		Cart: CartConfig{
			SessionTTL:    getEnvAsDuration("CART_SESSION_TTL", 2*time.Hour),
			SweepInterval: getEnvAsDuration("CART_SWEEP_INTERVAL", 10*time.Minute),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}

	if c.Kitchen.PollInterval <= 0 {
		return fmt.Errorf("KITCHEN_POLL_INTERVAL must be positive")
	}

	if c.Kitchen.OrderLimit <= 0 {
		return fmt.Errorf("KITCHEN_ORDER_LIMIT must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
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
