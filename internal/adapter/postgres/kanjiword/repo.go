// Package kanjiword publishes the generated kanji → words mapping to the
// kanji_words table in PostgreSQL.
package kanjiword

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/kanjiwords/internal/adapter/postgres"
	"github.com/heartmarshall/kanjiwords/internal/domain"
	"github.com/heartmarshall/kanjiwords/pkg/batch"
	"github.com/heartmarshall/kanjiwords/pkg/ctxutil"
)

const table = "kanji_words"

var insertColumns = []string{"id", "run_id", "kanji", "word", "reading", "meaning", "position", "created_at"}

// maxParams is the bind parameter limit of the PostgreSQL wire protocol.
const maxParams = 65535

// psql builds queries with $n placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides kanji_words persistence backed by PostgreSQL.
type Repo struct {
	pool      *pgxpool.Pool
	txm       *postgres.TxManager
	batchSize int
}

// New creates a new kanji_words repository. Rows are inserted in
// multi-row statements of at most batchSize rows, capped to what one
// statement can bind.
func New(pool *pgxpool.Pool, txm *postgres.TxManager, batchSize int) *Repo {
	return &Repo{
		pool:      pool,
		txm:       txm,
		batchSize: batch.SizeFor(batchSize, len(insertColumns), maxParams),
	}
}

// Name identifies the publish target.
func (r *Repo) Name() string { return "postgres" }

// ReplaceAll deletes every previously published row and inserts rows, all
// in one transaction. Rows are tagged with the run ID from ctx (a fresh one
// if absent). Returns the number of inserted rows.
func (r *Repo) ReplaceAll(ctx context.Context, rows []domain.KanjiWord) (int, error) {
	runID, ok := ctxutil.RunIDFromCtx(ctx)
	if !ok {
		runID = uuid.New()
	}
	now := time.Now().UTC()

	var inserted int
	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)
		if _, err := q.Exec(ctx, "DELETE FROM "+table); err != nil {
			return postgres.MapError(err, "delete "+table)
		}

		n, err := batch.Process(rows, r.batchSize, func(b []domain.KanjiWord) (int, error) {
			return r.insertBatch(ctx, runID, now, b)
		})
		inserted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *Repo) insertBatch(ctx context.Context, runID uuid.UUID, now time.Time, rows []domain.KanjiWord) (int, error) {
	insert := psql.Insert(table).Columns(insertColumns...)
	for _, row := range rows {
		insert = insert.Values(uuid.New(), runID, row.Kanji, row.Word, row.Reading, row.Meaning, row.Position, now)
	}

	sql, args, err := insert.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "insert "+table)
	}
	return int(tag.RowsAffected()), nil
}

// Count returns the number of published rows.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "count "+table)
	}
	return n, nil
}
