package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPPort        string
	ShutdownTimeout time.Duration

	PGHost        string
	PGPort        int
	PGUser        string
	PGPassword    string
	PGDBName      string
	MigrationsDir string

	RedisAddr string

	JWTSecret string

	PayPalBaseURL      string
	PayPalClientID     string
	PayPalClientSecret string
}

// Load reads the environment. Secrets have no defaults; a missing one
// fails startup instead of booting a server that cannot work.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ShutdownTimeout: 10 * time.Second,

		PGHost:        getEnv("PG_HOST", "localhost"),
		PGUser:        getEnv("PG_USER", "postgres"),
		PGPassword:    getEnv("PG_PASSWORD", "postgres"),
		PGDBName:      getEnv("PG_DBNAME", "trinity"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "internal/repository/migrations"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		PayPalBaseURL:      getEnv("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com"),
		PayPalClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalClientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),
	}

	port, err := strconv.Atoi(getEnv("PG_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid PG_PORT: %w", err)
	}
	cfg.PGPort = port

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.PayPalClientID == "" || cfg.PayPalClientSecret == "" {
		return nil, fmt.Errorf("PAYPAL_CLIENT_ID and PAYPAL_CLIENT_SECRET are required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
