// Package config assembles runtime settings for the notez CLI from four
// layers, each overriding the previous one: built-in defaults, environment
// variables (optionally loaded from a .env file), an optional JSON config
// file, and command-line flags.
package config

import "time"

// Config holds runtime settings for the notez CLI.
type Config struct {
	// APIBaseURL is the base URL of the note service REST API.
	APIBaseURL string
	// AIBaseURL is the base URL of the AI features backend.
	AIBaseURL string
	// AccessToken is the bearer token attached to note service requests.
	AccessToken string
	// CacheDSN is the SQLite DSN of the local cache database.
	CacheDSN string
	// OnlineCheckInterval is how often the app probes service reachability.
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.AIBaseURL = ""
	c.AccessToken = ""
	c.CacheDSN = "notez.db"
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, a JSON file (if present), and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
