// Package config loads runtime configuration for the terminal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file (-e/-env, else ./.env when present) and GLAMFRIC_*
//     environment variables (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   GraphQL endpoint URL
//	-d string   data directory ("" keeps everything in memory)
//	-i int      online status check interval (seconds)
//	-t int      per-request timeout (seconds)
//	-v string   verify policy: verify-then-login | auto-login
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "3s" or integer
// nanoseconds:
//
//	{
//	  "graphql_url": "http://127.0.0.1:8080/graphql",
//	  "data_dir": "/home/me/.config/glamfric",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "search_cache_ttl": "5m",
//	  "verify_policy": "verify-then-login",
//	  "log_level": "info"
//	}
package config
