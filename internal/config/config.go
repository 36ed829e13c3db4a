package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port           string
	Env            string
	RequestTimeout time.Duration

	// Database
	DatabaseURL    string
	DBMaxConns     int
	MigrationsPath string

	// Redis (optional, shared rate-limit counters)
	RedisURL string

	// Rate limiting
	RateLimitPerMin int

	// Logging
	LogLevel  string
	LogFormat string

	// CORS
	CORSOrigin string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	env := getEnvOrDefault("ENV", "development")
	defaultFormat := "text"
	if env == "production" {
		defaultFormat = "json"
	}

	cfg := &Config{
		Port:            getEnvOrDefault("PORT", "1234"),
		Env:             env,
		RequestTimeout:  getEnvAsDurationOrDefault("REQUEST_TIMEOUT", 10*time.Second),
		DatabaseURL:     mustGetEnv("DATABASE_URL"),
		DBMaxConns:      getEnvAsIntOrDefault("DB_MAX_CONNS", 15),
		MigrationsPath:  getEnvOrDefault("MIGRATIONS_PATH", "migrations"),
		RedisURL:        getEnvOrDefault("REDIS_URL", ""),
		RateLimitPerMin: getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 120),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       getEnvOrDefault("LOG_FORMAT", defaultFormat),
		CORSOrigin:      getEnvOrDefault("CORS_ORIGIN", "http://localhost:3000"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
