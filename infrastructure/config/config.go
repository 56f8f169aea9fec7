package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Storage configuration
	RawDataDir    string
	ParsedDataDir string

	// Layout
	ViewportWidth float64

	// Logging
	LogLevel string

	// CORS
	EnableCORS     bool
	AllowedOrigins []string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8000"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		RawDataDir:    getEnv("RAW_DATA_DIR", "data/raw"),
		ParsedDataDir: getEnv("PARSED_DATA_DIR", "data/parsed"),

		ViewportWidth: getEnvFloat("VIEWPORT_WIDTH", 1600),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		EnableCORS: getEnvBool("ENABLE_CORS", true),
		AllowedOrigins: getEnvList("CORS_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:5174",
		}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.RawDataDir == "" || c.ParsedDataDir == "" {
		return fmt.Errorf("data directories must be configured")
	}
	if c.ViewportWidth <= 0 {
		return fmt.Errorf("VIEWPORT_WIDTH must be positive")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvList gets a comma-separated environment variable with a default value
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
