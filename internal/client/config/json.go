package config

import (
	"encoding/json"
	"os"

	"github.com/sambulosenda/glamfric-mobile/internal/flagx"
	"github.com/sambulosenda/glamfric-mobile/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations go
// through timex.Duration and are copied into Config afterwards.
type JsonConfig struct {
	GraphQLURL          string          `json:"graphql_url"`
	DataDir             *string         `json:"data_dir"`
	DeviceSecret        string          `json:"device_secret"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	SearchCacheTTL      *timex.Duration `json:"search_cache_ttl"`
	VerifyPolicy        string          `json:"verify_policy"`
	LogLevel            string          `json:"log_level"`
}

// parseJson overlays Config with the fields present in the JSON file named by
// -c or -config. Nothing happens when no file is given. Read or unmarshal
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.GraphQLURL != "" {
		cfg.GraphQLURL = jc.GraphQLURL
	}
	if jc.DataDir != nil {
		cfg.DataDir = *jc.DataDir
	}
	if jc.DeviceSecret != "" {
		cfg.DeviceSecret = jc.DeviceSecret
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SearchCacheTTL != nil {
		cfg.SearchCacheTTL = jc.SearchCacheTTL.Duration
	}
	if jc.VerifyPolicy != "" {
		cfg.VerifyPolicy = jc.VerifyPolicy
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
