// Package logging builds the slog loggers used by the steane CLI. A zero
// Config writes Info and above to stderr as text.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config configures New.
type Config struct {
	// Level is the minimum level written. Default: slog.LevelInfo.
	Level slog.Level
	// JSON selects the JSON handler instead of the text handler.
	JSON bool
	// Service, when set, is attached to every record as "service".
	Service string
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New returns a logger for cfg.
func New(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var h slog.Handler
	if cfg.JSON {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = slog.NewTextHandler(out, opts)
	}
	logger := slog.New(h)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	return logger
}

// ParseLevel converts "debug", "info", "warn" or "error" (any case) into a
// slog.Level. An empty string is Info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
