package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type Config struct {
	DatabaseURL        string
	AppHost            string
	AppEnv             string
	RedisURL           string
	CacheTTL           time.Duration
	BaselineOmitPolicy string
	WriteRateLimit     int
	MigrationsDir      string
	MigrateOnStart     bool
	Version            string
}

// LoadEnvFile reads .env without overriding variables already set in the process environment.
func LoadEnvFile(filenames ...string) error {
	return godotenv.Load(filenames...)
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		AppHost:            getEnv("APP_HOST", ":8080"),
		AppEnv:             getEnv("APP_ENV", EnvDevelopment),
		RedisURL:           os.Getenv("REDIS_URL"),
		BaselineOmitPolicy: getEnv("STOCK_BASELINE_OMIT_POLICY", "zero"),
		MigrationsDir:      getEnv("MIGRATIONS_DIR", "migrations"),
		Version:            getEnv("APP_VERSION", "1.0.0"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	limit, err := strconv.Atoi(getEnv("WRITE_RATE_LIMIT", "120"))
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("WRITE_RATE_LIMIT must be a positive integer, got %q", os.Getenv("WRITE_RATE_LIMIT"))
	}
	cfg.WriteRateLimit = limit

	migrate, err := strconv.ParseBool(getEnv("MIGRATE_ON_START", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid MIGRATE_ON_START: %w", err)
	}
	cfg.MigrateOnStart = migrate

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
