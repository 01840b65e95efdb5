// Package config loads cursorwired settings from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	// Addr is the listen address.
	Addr string
	// LogLevel is a zerolog level name: debug, info, warn, error.
	LogLevel string
	// SubBuffer is the per-subscription event channel depth.
	SubBuffer int
}

// Load reads configuration from a .env file (if present) and the
// process environment, falling back to defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:      getEnv("CURSORWIRE_ADDR", ":8080"),
		LogLevel:  getEnv("CURSORWIRE_LOG_LEVEL", "info"),
		SubBuffer: getEnvInt("CURSORWIRE_SUB_BUFFER", 16),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
