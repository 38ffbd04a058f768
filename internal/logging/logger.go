// Package logging builds the slog loggers used by the server and CLI.
//
// The level comes from the config file or the DRAGSIM_LOG_LEVEL environment
// variable (DEBUG, INFO, WARN, ERROR). The environment wins when both are set.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const EnvLevel = "DRAGSIM_LOG_LEVEL"

// ParseLevel maps a level name to a slog level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Level resolves the effective level from the environment, falling back to
// the configured name.
func Level(configured string) slog.Level {
	if env := os.Getenv(EnvLevel); env != "" {
		return ParseLevel(env)
	}
	return ParseLevel(configured)
}

// New returns a text logger, or a JSON one when json is set.
func New(w io.Writer, level slog.Level, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Default writes text to stderr at the resolved level.
func Default(configured string) *slog.Logger {
	return New(os.Stderr, Level(configured), false)
}

// Discard drops everything. The TUI owns the terminal, so it logs nowhere.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
