// Package sqlite publishes the generated mapping to a local SQLite file,
// for consumers that want indexed lookups without a database server.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/heartmarshall/kanjiwords/internal/domain"
	"github.com/heartmarshall/kanjiwords/pkg/batch"
	"github.com/heartmarshall/kanjiwords/pkg/ctxutil"
)

const table = "kanji_words"

const schema = `
CREATE TABLE IF NOT EXISTS kanji_words (
    id         TEXT    PRIMARY KEY,
    run_id     TEXT    NOT NULL,
    kanji      TEXT    NOT NULL,
    word       TEXT    NOT NULL,
    reading    TEXT    NOT NULL DEFAULT '',
    meaning    TEXT    NOT NULL DEFAULT '',
    position   INTEGER NOT NULL,
    created_at TEXT    NOT NULL,
    UNIQUE (kanji, word)
);
CREATE INDEX IF NOT EXISTS ix_kanji_words_kanji_position ON kanji_words (kanji, position);
`

var insertColumns = []string{"id", "run_id", "kanji", "word", "reading", "meaning", "position", "created_at"}

// maxParams is SQLite's default SQLITE_MAX_VARIABLE_NUMBER.
const maxParams = 32766

// Store is a kanji_words table in an SQLite file.
type Store struct {
	db        *sql.DB
	batchSize int
}

// Open opens (creating if needed) the database file at path and ensures the
// schema exists. batchSize is capped to what one INSERT can bind.
func Open(ctx context.Context, path string, batchSize int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection keeps the file lock and PRAGMAs consistent.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma journal_mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, batchSize: batch.SizeFor(batchSize, len(insertColumns), maxParams)}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Name identifies the publish target.
func (s *Store) Name() string { return "sqlite" }

// ReplaceAll deletes every previously published row and inserts rows in one
// transaction, tagged with the run ID from ctx.
func (s *Store) ReplaceAll(ctx context.Context, rows []domain.KanjiWord) (n int, err error) {
	runID, ok := ctxutil.RunIDFromCtx(ctx)
	if !ok {
		runID = uuid.New()
	}
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			n = 0
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return 0, fmt.Errorf("delete %s: %w", table, err)
	}

	n, err = batch.Process(rows, s.batchSize, func(b []domain.KanjiWord) (int, error) {
		insert := squirrel.Insert(table).Columns(insertColumns...)
		for _, row := range b {
			insert = insert.Values(uuid.NewString(), runID.String(), row.Kanji, row.Word, row.Reading, row.Meaning, row.Position, now)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return 0, fmt.Errorf("build insert: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("insert %s: %w", table, err)
		}
		affected, err := res.RowsAffected()
		return int(affected), err
	})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return n, nil
}

// Count returns the number of published rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
