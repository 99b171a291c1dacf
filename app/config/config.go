package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the nav-hub service
type Config struct {
	// Server
	Port     string
	Host     string
	LogLevel string

	// Database
	DatabaseURL      string
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string
	DatabaseSSLMode  string

	// Kratos
	KratosPublicURL string

	// Identity event stream
	RedisURL          string
	IdentityStreamKey string
	ConsumerGroup     string
	ConsumerName      string
	EventBatchSize    int
	EventBlockTimeout time.Duration

	// Router
	InitTimeout        time.Duration
	ProfileCacheTTL    time.Duration
	ShellIdleTimeout   time.Duration
	ShellSweepInterval time.Duration

	// Features
	EnableMetrics bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{}

	// Server configuration
	config.Port = getEnvOrDefault("PORT", "9600")
	config.Host = getEnvOrDefault("HOST", "0.0.0.0")
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	// Database configuration
	config.DatabaseURL = os.Getenv("DATABASE_URL")
	if config.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	config.DatabaseHost = getEnvOrDefault("DB_HOST", "nav-postgres")
	config.DatabasePort = getEnvOrDefault("DB_PORT", "5432")
	config.DatabaseName = getEnvOrDefault("DB_NAME", "nav_db")
	config.DatabaseUser = getEnvOrDefault("DB_USER", "nav_user")
	config.DatabasePassword = os.Getenv("DB_PASSWORD")
	if config.DatabasePassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	config.DatabaseSSLMode = getEnvOrDefault("DB_SSL_MODE", "require")

	// Kratos configuration
	config.KratosPublicURL = os.Getenv("KRATOS_PUBLIC_URL")
	if config.KratosPublicURL == "" {
		return nil, fmt.Errorf("KRATOS_PUBLIC_URL is required")
	}

	// Identity event stream configuration
	config.RedisURL = os.Getenv("REDIS_URL")
	if config.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}

	config.IdentityStreamKey = getEnvOrDefault("IDENTITY_STREAM_KEY", "identity:events")
	config.ConsumerGroup = getEnvOrDefault("IDENTITY_CONSUMER_GROUP", "nav-hub")
	config.ConsumerName = getEnvOrDefault("IDENTITY_CONSUMER_NAME", defaultConsumerName())

	var err error
	config.EventBatchSize, err = getIntEnv("EVENT_BATCH_SIZE", 10)
	if err != nil {
		return nil, err
	}

	config.EventBlockTimeout, err = getDurationEnv("EVENT_BLOCK_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	// Router configuration
	config.InitTimeout, err = getDurationEnv("ROUTER_INIT_TIMEOUT", 8*time.Second)
	if err != nil {
		return nil, err
	}

	config.ProfileCacheTTL, err = getDurationEnv("PROFILE_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	config.ShellIdleTimeout, err = getDurationEnv("SHELL_IDLE_TIMEOUT", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	config.ShellSweepInterval, err = getDurationEnv("SHELL_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	// Feature flags
	config.EnableMetrics = getBoolEnv("ENABLE_METRICS", true)

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate port
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	// Validate log level
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	// The init timeout is the hard upper bound on time-to-first-decision;
	// sub-second values make recovery fire before normal resolution can win.
	if c.InitTimeout < time.Second {
		return fmt.Errorf("router init timeout must be at least 1 second, got: %v", c.InitTimeout)
	}

	if c.ProfileCacheTTL < time.Second {
		return fmt.Errorf("profile cache TTL must be at least 1 second, got: %v", c.ProfileCacheTTL)
	}

	if c.ShellIdleTimeout < time.Minute {
		return fmt.Errorf("shell idle timeout must be at least 1 minute, got: %v", c.ShellIdleTimeout)
	}

	if c.ShellSweepInterval < time.Second {
		return fmt.Errorf("shell sweep interval must be at least 1 second, got: %v", c.ShellSweepInterval)
	}

	if c.EventBatchSize < 1 {
		return fmt.Errorf("event batch size must be at least 1, got: %d", c.EventBatchSize)
	}

	if c.EventBlockTimeout < 100*time.Millisecond {
		return fmt.Errorf("event block timeout must be at least 100ms, got: %v", c.EventBlockTimeout)
	}

	return nil
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func defaultConsumerName() string {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		return "nav-hub-consumer"
	}
	return hostname
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
