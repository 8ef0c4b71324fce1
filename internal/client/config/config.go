package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the terminal client.
type Config struct {
	GraphQLURL string
	DataDir    string
	// DeviceSecret seeds the key that wraps the secret store.
	DeviceSecret        string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	SearchCacheTTL      time.Duration
	VerifyPolicy        string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.GraphQLURL = "http://127.0.0.1:8080/graphql"
	c.DataDir = defaultDataDir()
	c.DeviceSecret = defaultDeviceSecret()
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.SearchCacheTTL = 5 * time.Minute
	c.VerifyPolicy = "verify-then-login"
	c.LogLevel = "info"
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".glamfric"
	}
	return filepath.Join(dir, "glamfric")
}

func defaultDeviceSecret() string {
	host, err := os.Hostname()
	if err != nil {
		host = "localhost"
	}
	return "glamfric:" + host
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
