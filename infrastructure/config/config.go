package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Access gate
	AccessCode        string
	AccessTokenSecret string

	// OpenAI configuration. An empty key degrades AI features to
	// fallbacks instead of disabling the app.
	OpenAIKey        string
	OpenAIModel      string
	AITitleTimeout   time.Duration
	AISummaryTimeout time.Duration

	// Cosmic bucket credentials. Absence is fatal to data operations.
	CosmicBucketSlug string
	CosmicReadKey    string
	CosmicWriteKey   string
	CosmicEndpoint   string

	// Logging
	LogLevel string

	// Feature flags
	EnableCORS bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		AccessCode:        getEnv("ACCESS_CODE", ""),
		AccessTokenSecret: getEnv("ACCESS_TOKEN_SECRET", ""),

		OpenAIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		AITitleTimeout:   time.Duration(getEnvInt("AI_TITLE_TIMEOUT_SECONDS", 15)) * time.Second,
		AISummaryTimeout: time.Duration(getEnvInt("AI_SUMMARY_TIMEOUT_SECONDS", 30)) * time.Second,

		CosmicBucketSlug: getEnv("COSMIC_BUCKET_SLUG", ""),
		CosmicReadKey:    getEnv("COSMIC_READ_KEY", ""),
		CosmicWriteKey:   getEnv("COSMIC_WRITE_KEY", ""),
		CosmicEndpoint:   getEnv("COSMIC_ENDPOINT", "https://api.cosmicjs.com"),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		EnableCORS: getEnvBool("ENABLE_CORS", true),
	}

	// The signing secret falls back to the access code so a minimal
	// deployment needs only one secret configured.
	if cfg.AccessTokenSecret == "" {
		cfg.AccessTokenSecret = cfg.AccessCode
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.AccessCode == "" {
			return fmt.Errorf("ACCESS_CODE is required in production")
		}
		if c.CosmicBucketSlug == "" || c.CosmicReadKey == "" || c.CosmicWriteKey == "" {
			return fmt.Errorf("COSMIC_BUCKET_SLUG, COSMIC_READ_KEY and COSMIC_WRITE_KEY are required")
		}
	}

	return nil
}

// HasOpenAI reports whether a language-model provider key is configured.
func (c *Config) HasOpenAI() bool {
	return c.OpenAIKey != ""
}

// HasCosmic reports whether the persistence credentials are configured.
func (c *Config) HasCosmic() bool {
	return c.CosmicBucketSlug != "" && c.CosmicReadKey != "" && c.CosmicWriteKey != ""
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
