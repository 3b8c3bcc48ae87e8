package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/kanjiwords/internal/config"
	"github.com/heartmarshall/kanjiwords/internal/domain"
)

const applicationName = "kanjiwords"

// NewPool connects to the publish database and pings it, so a bad DSN or an
// unreachable server fails before any phase runs.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// poolConfig turns DatabaseConfig into a pgxpool config. Connections are
// tagged with application_name unless the DSN already sets one.
func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database.dsn: %w", domain.NewValidationError("database.dsn", "required"))
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database.dsn: %w: %v", domain.ErrInvalidInput, err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = min(cfg.MinConns, poolCfg.MaxConns)
	}
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	params := poolCfg.ConnConfig.RuntimeParams
	if _, ok := params["application_name"]; !ok {
		params["application_name"] = applicationName
	}
	return poolCfg, nil
}
