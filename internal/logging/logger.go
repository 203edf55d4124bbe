// Package logging builds the structured logger shared by the engine and
// the CLI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ppiankov/corefsieve/internal/model"
)

// ParseLevel maps a configuration level name to a slog level
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// New creates a logger writing to w (stderr if nil) in the configured
// format: "json" or "text"
func New(cfg model.LoggingConfig, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return slog.New(handler), nil
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Component tags every record of logger with the emitting component
func Component(logger *slog.Logger, name string) *slog.Logger {
	return logger.With("component", name)
}
