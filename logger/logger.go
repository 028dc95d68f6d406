// Package logger sets up the process wide slog logger from LOG_LEVEL and LOG_FORMAT.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

// Options selects the level ("debug", "info", "warn", "error") and the format
// ("text" or "json") of the logger.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// FromEnv reads the options from LOG_LEVEL and LOG_FORMAT. Output is stderr.
func FromEnv() Options {
	return Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
		Output: os.Stderr,
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// New builds a logger without touching the default one.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var h slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		h = slog.NewJSONHandler(out, hopts)
	} else {
		h = slog.NewTextHandler(out, hopts)
	}
	return slog.New(h)
}

// Setup initializes the default logger from the environment.
func Setup() *slog.Logger {
	return SetupWith(FromEnv())
}

// SetupWith initializes the default logger from explicit options.
func SetupWith(opts Options) *slog.Logger {
	defaultLogger = New(opts)
	return defaultLogger
}

// L returns the default logger, running Setup on first use.
func L() *slog.Logger {
	if defaultLogger == nil {
		return Setup()
	}
	return defaultLogger
}
