package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/example/staybook/internal/config"
	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/lmittmann/tint"
)

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler builds the console handler for the configured format.
func NewHandler(cfg config.LogConfig, w io.Writer) slog.Handler {
	if w == nil {
		w = os.Stdout
	}
	level := ParseLevel(cfg.Level)

	switch cfg.Format {
	case "tint":
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: "2006-01-02 15:04:05",
		})
	case "text":
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	default:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
}

// New returns the service logger. When Fluent Bit shipping is enabled the
// records go to both the console and fluent; the returned close func flushes
// and closes the fluent connection.
func New(cfg *config.Config, w io.Writer) (*slog.Logger, func() error, error) {
	console := NewHandler(cfg.Log, w)
	if !cfg.FluentBit.Enabled {
		return slog.New(console).With("app", cfg.AppName), func() error { return nil }, nil
	}

	client, err := fluent.New(fluent.Config{
		FluentHost: cfg.FluentBit.Host,
		FluentPort: cfg.FluentBit.Port,
		TagPrefix:  cfg.AppName,
		Async:      true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create fluent client: %w", err)
	}

	h := NewFanoutHandler(console, NewFluentHandler(client, ParseLevel(cfg.Log.Level)))
	return slog.New(h).With("app", cfg.AppName), client.Close, nil
}
