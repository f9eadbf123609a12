package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Storage drivers for the shared posts collection.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	Port        string
	Environment string
	LogLevel    string

	// Cookie session signing secret; the visitor's "user" slot lives in this cookie.
	SessionSecret string

	StorageDriver string
	RedisURL      string
	DatabaseURL   string

	SimulateLatency bool
	BcryptCost      int
	SearchCacheSize int

	TemplatesDir string
}

// Load reads configuration from the environment. godotenv.Load is expected to have run first.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		SessionSecret:   getEnv("SESSION_SECRET", "secret_key_change_me"),
		StorageDriver:   strings.ToLower(getEnv("STORAGE_DRIVER", DriverMemory)),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		DatabaseURL:     getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=noticeboard port=5432 sslmode=disable"),
		SimulateLatency: getEnvBool("SIMULATE_LATENCY", true),
		BcryptCost:      getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		SearchCacheSize: getEnvInt("SEARCH_CACHE_SIZE", 128),
		TemplatesDir:    getEnv("TEMPLATES_DIR", "./web/templates"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have no safe fallback.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverRedis, DriverPostgres:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.SearchCacheSize <= 0 {
		return fmt.Errorf("SEARCH_CACHE_SIZE must be positive")
	}
	if c.IsProduction() && c.SessionSecret == "secret_key_change_me" {
		return fmt.Errorf("SESSION_SECRET is required in production")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
