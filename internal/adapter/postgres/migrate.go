package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/kanjiwords/migrations"
)

// Migrate applies all pending embedded migrations to the database at dsn
// and returns the number applied.
func Migrate(ctx context.Context, dsn string, log *slog.Logger) (int, error) {
	// goose requires *sql.DB.
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return 0, fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return 0, fmt.Errorf("db ping: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return 0, fmt.Errorf("goose new provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("goose up: %w", err)
	}
	for _, r := range results {
		log.Info("migration applied",
			slog.Int64("version", r.Source.Version),
			slog.Duration("duration", r.Duration),
		)
	}
	return len(results), nil
}
