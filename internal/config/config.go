package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Base address of the assistant gateway (chat, meetings, email).
	GatewayURL string
	// Per-request timeout for gateway calls.
	RequestTimeout time.Duration
	// Delay before the post-chat meetings refresh fires.
	RefreshDelay time.Duration
	// Optional YAML file overriding the refresh trigger keywords.
	TriggersFile string
	// Log destination; the terminal UI owns stdout so logs go to a file.
	LogFile  string
	LogLevel string
}

func Load() Config {
	_ = godotenv.Load()
	return Config{
		GatewayURL:     getEnvDefault("GATEWAY_URL", "http://localhost:8000"),
		RequestTimeout: getEnvDurationDefault("REQUEST_TIMEOUT", 20*time.Second),
		RefreshDelay:   getEnvDurationDefault("REFRESH_DELAY", time.Second),
		TriggersFile:   os.Getenv("TRIGGERS_FILE"),
		LogFile:        getEnvDefault("LOG_FILE", "data/aida.log"),
		LogLevel:       getEnvDefault("LOG_LEVEL", "info"),
	}
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDurationDefault(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Printf("warning: %s=%q is not a valid duration, using %s", key, v, def)
			return def
		}
		return d
	}
	return def
}
