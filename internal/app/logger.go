package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/kanjiwords/internal/config"
)

// NewLogger creates a *slog.Logger based on the provided LogConfig
// and sets it as the default logger via slog.SetDefault.
//
// Format "json" produces structured JSON output (CI, log shipping).
// Format "text" produces human-readable key=value output (terminal use).
// Level is one of: debug, info, warn, error (case-insensitive); defaults to info.
// Output is always os.Stderr so that stdout stays reserved for the report.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(cfg, os.Stderr)
	slog.SetDefault(logger)
	return logger
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Level, "debug"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
