package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the scoring service.
type Config struct {
	// Database
	DatabaseURL string

	// Auth0 (guards the /score endpoints, including override submission, and
	// the /ws upgrade; the dispatcher trigger uses service tokens instead)
	Auth0Domain   string
	Auth0Audience string
	Auth0ClientID string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// S3 statement archive
	S3 S3Config

	// Rescoring
	Rescoring RescoringConfig
}

// S3Config holds the statement-archive bucket configuration.
type S3Config struct {
	Region     string
	BucketName string
}

// RescoringConfig controls the cron dispatcher's staleness sweep.
type RescoringConfig struct {
	// Interval is the minimum age of the latest audit row before a user is
	// considered due for rescoring.
	Interval time.Duration
	// BatchSize caps how many stale users one sweep re-scores.
	BatchSize int
	// RateLimitPerSecond caps how many engine invocations the dispatcher
	// issues per second.
	RateLimitPerSecond int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	interval, err := time.ParseDuration(getEnv("RESCORE_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESCORE_INTERVAL: %w", err)
	}

	batchSize, err := strconv.Atoi(getEnv("RESCORE_BATCH_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESCORE_BATCH_SIZE: %w", err)
	}

	rateLimit, err := strconv.Atoi(getEnv("RESCORE_RATE_LIMIT", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid RESCORE_RATE_LIMIT: %w", err)
	}

	cfg := &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		Auth0Domain:   getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience: getEnv("AUTH0_AUDIENCE", ""),
		Auth0ClientID: getEnv("AUTH0_CLIENT_ID", ""),
		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:           getEnv("ENV", "development"),
		S3: S3Config{
			Region:     getEnv("AWS_REGION", "us-east-1"),
			BucketName: getEnv("STATEMENT_ARCHIVE_BUCKET", "blinkscore-statements"),
		},
		Rescoring: RescoringConfig{
			Interval:           interval,
			BatchSize:          batchSize,
			RateLimitPerSecond: rateLimit,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth0Domain == "" {
		return fmt.Errorf("AUTH0_DOMAIN is required")
	}
	if c.Auth0Audience == "" {
		return fmt.Errorf("AUTH0_AUDIENCE is required")
	}
	if c.Rescoring.BatchSize <= 0 {
		return fmt.Errorf("RESCORE_BATCH_SIZE must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
