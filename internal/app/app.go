// Package app holds the bootstrap shared by the kanjiwords commands:
// configuration loading, logger construction and build metadata.
package app

import (
	"fmt"
	"log/slog"

	"github.com/heartmarshall/kanjiwords/internal/config"
)

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/heartmarshall/kanjiwords/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns a formatted version string for startup logs and the
// version command.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}

// Bootstrap loads configuration (see config.Load for the lookup order),
// initializes the default logger and logs startup information.
func Bootstrap(configPath string) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger := NewLogger(cfg.Log)

	logger.Debug("starting kanjiwords",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	return cfg, logger, nil
}
