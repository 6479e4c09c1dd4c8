package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort string
	LogLevel   string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// NormalizerWorkers sizes the raw payload worker pool.
	NormalizerWorkers int
}

// Load loads configuration from a .env file (if present) and environment
// variables.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		PostgresHost:      getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:      getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:      getEnv("POSTGRES_USER", "pricewatch"),
		PostgresPassword:  getEnv("POSTGRES_PASSWORD", "pricewatch"),
		PostgresDB:        getEnv("POSTGRES_DB", "pricewatch"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		NormalizerWorkers: getEnvAsInt("NORMALIZER_WORKERS", 4),
	}
}

// PostgresURL builds the pgx connection string.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUser + ":" + c.PostgresPassword +
		"@" + c.PostgresHost + ":" + c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
