// Package config loads runtime settings for the storefront CLI.
package config

import "time"

// Config holds runtime settings for the storefront CLI.
//
// Fields:
//   - DatabaseDSN: path/DSN of the local SQLite database.
//   - AuthLatency: simulated network round trip awaited by login/register.
//   - OrderAPIAddr: base URL of the external order API.
//   - OrderAPITimeout: per-request timeout for the order API.
type Config struct {
	DatabaseDSN     string
	AuthLatency     time.Duration
	OrderAPIAddr    string
	OrderAPITimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "storefront.db"
	c.AuthLatency = 800 * time.Millisecond
	c.OrderAPIAddr = "http://localhost:8000/api"
	c.OrderAPITimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
