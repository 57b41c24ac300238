package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Web Server
	WebBind string

	// Database (optional; empty runs the session in memory without snapshots)
	DatabaseURL string

	// Proposal service
	OpenAIAPIKey string
	LiveMode     bool
}

func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := &Config{
		WebBind:      getEnvDefault("WEB_BIND", "0.0.0.0:3000"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		LiveMode:     getEnvBool("LIVE_MODE"),
	}

	return cfg, nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return false
	}
	return v
}
