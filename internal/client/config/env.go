package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/sambulosenda/glamfric-mobile/internal/flagx"
)

const envPrefix = "GLAMFRIC_"

// parseEnv loads the dotenv file into the process environment, without
// overriding variables already set, and then overlays GLAMFRIC_* variables.
// A missing default .env is ignored; a missing file named by -e panics, as do
// malformed durations.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	lookupString(&cfg.GraphQLURL, "GRAPHQL_URL")
	lookupString(&cfg.DataDir, "DATA_DIR")
	lookupString(&cfg.DeviceSecret, "DEVICE_SECRET")
	lookupDuration(&cfg.OnlineCheckInterval, "ONLINE_CHECK_INTERVAL")
	lookupDuration(&cfg.RequestTimeout, "REQUEST_TIMEOUT")
	lookupDuration(&cfg.SearchCacheTTL, "SEARCH_CACHE_TTL")
	lookupString(&cfg.VerifyPolicy, "VERIFY_POLICY")
	lookupString(&cfg.LogLevel, "LOG_LEVEL")
}

func lookupString(dst *string, name string) {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		*dst = v
	}
}

func lookupDuration(dst *time.Duration, name string) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
