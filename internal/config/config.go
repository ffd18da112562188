package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	Timezone          string
	StoreTimeout      time.Duration
	DueLimit          int
	HeatmapDays       int
	ImportWorkerCount int
	ImportQueueSize   int
	RateLimitRPS      float64
	RateLimitBurst    int
	DefaultHierarchy  string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:flashreel.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		Timezone:          envOr("TIMEZONE", "UTC"),
		StoreTimeout:      time.Duration(envIntOr("STORE_TIMEOUT_MS", 5000)) * time.Millisecond,
		DueLimit:          envIntOr("DUE_LIMIT", 50),
		HeatmapDays:       envIntOr("HEATMAP_DAYS", 365),
		ImportWorkerCount: envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:   envIntOr("IMPORT_QUEUE_SIZE", 32),
		RateLimitRPS:      envFloatOr("RATE_LIMIT_RPS", 10),
		RateLimitBurst:    envIntOr("RATE_LIMIT_BURST", 20),
		DefaultHierarchy:  envOr("DEFAULT_HIERARCHY", "General"),
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}

	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
		c.LogLevel = strings.ToUpper(c.LogLevel)
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil || c.Timezone == "" {
		errs = append(errs, fmt.Errorf("TIMEZONE %q is not a valid IANA zone", c.Timezone))
	}
	if c.StoreTimeout <= 0 {
		errs = append(errs, fmt.Errorf("STORE_TIMEOUT_MS must be positive (got %v)", c.StoreTimeout))
	}
	if c.DueLimit < 1 {
		errs = append(errs, fmt.Errorf("DUE_LIMIT must be at least 1 (got %d)", c.DueLimit))
	}
	if c.HeatmapDays < 1 || c.HeatmapDays > 3660 {
		errs = append(errs, fmt.Errorf("HEATMAP_DAYS must be between 1 and 3660 (got %d)", c.HeatmapDays))
	}
	if c.ImportWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("IMPORT_WORKER_COUNT must be at least 1 (got %d)", c.ImportWorkerCount))
	}
	if c.ImportQueueSize < 1 {
		errs = append(errs, fmt.Errorf("IMPORT_QUEUE_SIZE must be at least 1 (got %d)", c.ImportQueueSize))
	}
	if c.RateLimitRPS <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_RPS must be positive (got %v)", c.RateLimitRPS))
	}
	if c.RateLimitBurst < 1 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be at least 1 (got %d)", c.RateLimitBurst))
	}
	if strings.TrimSpace(c.DefaultHierarchy) == "" {
		errs = append(errs, errors.New("DEFAULT_HIERARCHY cannot be empty"))
	}

	return errors.Join(errs...)
}

// Location returns the timezone used for calendar-day decisions.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
