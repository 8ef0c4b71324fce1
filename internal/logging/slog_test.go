package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextLogger_WritesEveryLevelAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, "debug")
	ctx := context.Background()

	log.Debug(ctx, "cache miss", "key", "search:nails")
	log.Info(ctx, "logged in", "user_id", "u-1")
	log.Warn(ctx, "ping failed", "attempt", 2)
	log.Error(ctx, "db close error", "error", "boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "level=DEBUG")
	assert.Contains(t, lines[0], "key=search:nails")
	assert.Contains(t, lines[1], `msg="logged in"`)
	assert.Contains(t, lines[1], "user_id=u-1")
	assert.Contains(t, lines[2], "level=WARN")
	assert.Contains(t, lines[2], "attempt=2")
	assert.Contains(t, lines[3], "level=ERROR")
}

func TestTextLogger_InfoHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, "")

	log.Debug(context.Background(), "noisy")
	assert.Empty(t, buf.String())
}

func TestWith_AddsAttributesToChildOnly(t *testing.T) {
	var buf bytes.Buffer
	root := NewJSONLogger(&buf, "info")
	child := root.With("module", "auth")
	ctx := context.Background()

	child.Info(ctx, "session hydrated", "has_user", true)
	root.Info(ctx, "plain")

	dec := json.NewDecoder(&buf)
	var first, second map[string]any
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))

	assert.Equal(t, "auth", first["module"])
	assert.Equal(t, true, first["has_user"])
	assert.NotContains(t, second, "module")
}

func TestJSONLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, "warn")

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"k":"v"`)
}

func TestDiscard(t *testing.T) {
	log := Discard()
	log.Error(context.TODO(), "dropped")
	log.With("a", 1).Info(context.TODO(), "dropped too")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}
