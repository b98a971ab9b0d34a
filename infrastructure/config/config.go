package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store drivers for the overlay slot.
const (
	StoreDriverFile   = "file"
	StoreDriverSQLite = "sqlite"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Overlay store configuration
	StoreDriver string // "file" or "sqlite"
	StorePath   string

	// Seed dataset: a local path, optionally shadowed by a URL
	SeedPath string
	SeedURL  string

	// Logging
	LogLevel string

	// Authentication
	AdminSecret string
	JWTSecret   string
	JWTIssuer   string
	SessionTTL  time.Duration

	// Login rate limiting
	LoginRatePerMinute int

	// Feature flags
	EnableMetrics bool
	EnableCORS    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		StoreDriver: getEnv("STORE_DRIVER", StoreDriverFile),
		StorePath:   getEnv("STORE_PATH", "data/overlay.json"),

		SeedPath: getEnv("SEED_PATH", "data/navigation.json"),
		SeedURL:  getEnv("SEED_URL", ""),

		AdminSecret: getEnv("ADMIN_SECRET", ""),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", "agentdir"),
		SessionTTL:  time.Duration(getEnvInt("SESSION_TTL_MINUTES", 12*60)) * time.Minute,

		LoginRatePerMinute: getEnvInt("LOGIN_RATE_PER_MINUTE", 10),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EnableMetrics: getEnvBool("ENABLE_METRICS", true),
		EnableCORS:    getEnvBool("ENABLE_CORS", true),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.StoreDriver != StoreDriverFile && c.StoreDriver != StoreDriverSQLite {
		return fmt.Errorf("STORE_DRIVER must be %q or %q", StoreDriverFile, StoreDriverSQLite)
	}
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.AdminSecret == "" {
			return fmt.Errorf("ADMIN_SECRET is required in production")
		}
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

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
