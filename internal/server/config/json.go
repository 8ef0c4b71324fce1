package config

import (
	"encoding/json"
	"os"

	"github.com/sambulosenda/glamfric-mobile/internal/flagx"
	"github.com/sambulosenda/glamfric-mobile/internal/timex"
)

// JsonConfig is the JSON shape of Config. Durations may be strings such as
// "15m" or integer nanoseconds.
type JsonConfig struct {
	Addr            string          `json:"addr"`
	SecretKey       string          `json:"secret_key"`
	TokenTTL        *timex.Duration `json:"token_ttl"`
	VerificationTTL *timex.Duration `json:"verification_ttl"`
	LogLevel        string          `json:"log_level"`
}

// parseJson overlays config with the fields present in the file named by -c
// or -config. Read and decode errors panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Addr != "" {
		config.Addr = c.Addr
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenTTL != nil {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.VerificationTTL != nil {
		config.VerificationTTL = c.VerificationTTL.Duration
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
