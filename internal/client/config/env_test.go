package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("variables override defaults", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Chdir(t.TempDir())
		t.Setenv("GLAMFRIC_GRAPHQL_URL", "http://env:8080/graphql")
		t.Setenv("GLAMFRIC_REQUEST_TIMEOUT", "2s")
		t.Setenv("GLAMFRIC_VERIFY_POLICY", "auto-login")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "http://env:8080/graphql", cfg.GraphQLURL)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "auto-login", cfg.VerifyPolicy)
		assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
	})

	t.Run("dotenv file named by flag", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "dev.env")
		require.NoError(t, os.WriteFile(path, []byte("GLAMFRIC_DATA_DIR=/srv/glamfric\nGLAMFRIC_LOG_LEVEL=debug\n"), 0o600))
		t.Setenv("GLAMFRIC_DATA_DIR", "")
		os.Unsetenv("GLAMFRIC_DATA_DIR")
		t.Setenv("GLAMFRIC_LOG_LEVEL", "")
		os.Unsetenv("GLAMFRIC_LOG_LEVEL")

		os.Args = []string{"testbin", "-env", path}

		cfg := &Config{}
		parseEnv(cfg)

		assert.Equal(t, "/srv/glamfric", cfg.DataDir)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("missing dotenv file named by flag panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-e", filepath.Join(t.TempDir(), "nope.env")}
		require.Panics(t, func() { parseEnv(&Config{}) })
	})

	t.Run("bad duration panics", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Chdir(t.TempDir())
		t.Setenv("GLAMFRIC_SEARCH_CACHE_TTL", "soon")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
