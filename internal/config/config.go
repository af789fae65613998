// Package config resolves the run configuration from the environment with
// built-in defaults; CLI flags override individual fields from main.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything a single pipeline run needs.
type Config struct {
	// Gemini settings; an empty APIKey disables the AI path for the whole run
	GeminiAPIKey  string
	MaxAIRequests int // maximum Gemini requests per run (0 = unlimited)

	// RSS settings
	FeedsConfigPath string
	MaxItems        int // batch cap after sorting by recency

	// Scraper / enricher pacing
	EnrichInterval time.Duration // minimum spacing between Gemini calls
	ScrapeInterval time.Duration // minimum spacing between page fetches

	// Output
	OutputDir string

	// App settings
	Debug          bool
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
}

// Load builds the configuration from environment variables on top of defaults.
func Load() (*Config, error) {
	cfg := &Config{
		FeedsConfigPath: "configs/feeds.yaml",
		MaxItems:        50,
		EnrichInterval:  time.Second,
		ScrapeInterval:  500 * time.Millisecond,
		OutputDir:       "../frontend/public/data",
		RequestTimeout:  30 * time.Second,
		RetryAttempts:   2,
		RetryDelay:      3 * time.Second,
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	cfg.OutputDir = getEnvOrDefault("OUTPUT_DIR", cfg.OutputDir)
	cfg.MaxItems = getEnvIntOrDefault("MAX_ITEMS", cfg.MaxItems)
	cfg.MaxAIRequests = getEnvIntOrDefault("MAX_AI_REQUESTS", cfg.MaxAIRequests)
	cfg.RetryAttempts = getEnvIntOrDefault("RETRY_ATTEMPTS", cfg.RetryAttempts)

	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("ENRICH_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.EnrichInterval = d
		}
	}
	if v := os.Getenv("SCRAPE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ScrapeInterval = d
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue >= 0 {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks the configuration for correctness. The Gemini key is
// deliberately optional: without it the run uses the deterministic defaults.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if c.FeedsConfigPath == "" {
		return fmt.Errorf("feeds config path is required")
	}
	if c.MaxItems <= 0 {
		return fmt.Errorf("MAX_ITEMS must be positive")
	}
	return nil
}
