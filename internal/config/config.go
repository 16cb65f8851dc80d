package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Per-minute request budgets used when RATE_LIMIT_* is unset or invalid.
const (
	DefaultRateLimitLow    = 1
	DefaultRateLimitMedium = 5
	DefaultRateLimitHigh   = 10
)

const DefaultCORSOrigin = "http://localhost:3000"

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string
	JWTSecret  string
	CORSOrigin string

	RateLimitLow    int
	RateLimitMedium int
	RateLimitHigh   int
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    os.Getenv("APP_PORT"),
		AppEnv:     os.Getenv("APP_ENV"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		CORSOrigin: os.Getenv("CORS_ALLOWED_ORIGIN"),

		RateLimitLow:    envInt("RATE_LIMIT_LOW", DefaultRateLimitLow),
		RateLimitMedium: envInt("RATE_LIMIT_MEDIUM", DefaultRateLimitMedium),
		RateLimitHigh:   envInt("RATE_LIMIT_HIGH", DefaultRateLimitHigh),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	if cfg.AppPort == "" {
		cfg.AppPort = "8080"
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = DefaultCORSOrigin
	}

	return cfg
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("ignoring invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}
