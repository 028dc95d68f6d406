package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_ParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, ParseLevel(name))
		})
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	l := New(Options{Level: "warn", Format: "json", Output: &buf})
	l.Info("hidden")
	l.Warn("unclaimed hex", "hex", "Atlantis1")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal("unclaimed hex", rec["msg"])
	assert.Equal("Atlantis1", rec["hex"])
}

func TestLogger_SetupFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	l := Setup()
	assert.True(t, l.Enabled(context.Background(), slog.LevelDebug))
	assert.Same(t, l, L())
}
