package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first when present; real environment variables
// win over .env entries (godotenv.Load never overwrites existing vars).
//
// Recognized variables:
//
//	NOTEZ_API_URL         note service base URL
//	NOTEZ_AI_URL          AI backend base URL
//	NOTEZ_TOKEN           access token
//	NOTEZ_CACHE_DSN       local cache SQLite DSN
//	NOTEZ_CHECK_INTERVAL  online check interval, e.g. "3s"
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("NOTEZ_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("NOTEZ_AI_URL"); v != "" {
		cfg.AIBaseURL = v
	}
	if v := os.Getenv("NOTEZ_TOKEN"); v != "" {
		cfg.AccessToken = v
	}
	if v := os.Getenv("NOTEZ_CACHE_DSN"); v != "" {
		cfg.CacheDSN = v
	}
	if v := os.Getenv("NOTEZ_CHECK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.OnlineCheckInterval = d
		}
	}
}
