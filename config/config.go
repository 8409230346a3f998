// Package config loads server configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// HTTP configuration
	Port int

	// Settings persistence. RedisAddr wins over DatabasePath; with neither
	// set the server keeps settings in memory only.
	RedisAddr    string // Redis address (host:port)
	DatabasePath string // SQLite file path, ":memory:" allowed

	// Display formatting
	Locale   string // BCP 47 tag, e.g. "zh-Hans"
	Currency string // ISO 4217 code, e.g. "CNY"

	// Logging
	LogLevel string // logrus level name

	// Environment: "development" or "production"
	Environment string
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		Port:         8080,
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		DatabasePath: os.Getenv("DATABASE_PATH"),
		Locale:       getEnvWithDefault("LOCALE", "zh-Hans"),
		Currency:     getEnvWithDefault("CURRENCY", "CNY"),
		LogLevel:     getEnvWithDefault("LOG_LEVEL", "info"),
		Environment:  getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if port := os.Getenv("PORT"); port != "" {
		parsed, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("PORT must be a number, got %q", port)
		}
		config.Port = parsed
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Port:        8080,
		Locale:      "zh-Hans",
		Currency:    "CNY",
		LogLevel:    "debug",
		Environment: "test",
	}
}
