package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/sambulosenda/glamfric-mobile/internal/flagx"
)

// parseEnv loads an optional dotenv file and overlays GLAMFRIC_SERVER_*
// variables. Variables already present in the environment win over the file.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv("GLAMFRIC_SERVER_ADDR"); ok {
		cfg.Addr = v
	}
	if v, ok := os.LookupEnv("GLAMFRIC_SERVER_SECRET_KEY"); ok {
		cfg.SecretKey = v
	}
	if v, ok := os.LookupEnv("GLAMFRIC_SERVER_TOKEN_TTL"); ok {
		cfg.TokenTTL = mustDuration(v)
	}
	if v, ok := os.LookupEnv("GLAMFRIC_SERVER_VERIFICATION_TTL"); ok {
		cfg.VerificationTTL = mustDuration(v)
	}
	if v, ok := os.LookupEnv("GLAMFRIC_SERVER_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
}

func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}
