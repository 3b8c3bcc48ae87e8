package kanjiword

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/kanjiwords/internal/adapter/postgres"
	"github.com/heartmarshall/kanjiwords/internal/domain"
)

// ListByKanji returns the published words of kanji in bucket order.
func (r *Repo) ListByKanji(ctx context.Context, kanji string) ([]domain.WordEntry, error) {
	sql, args, err := psql.Select("word", "reading", "meaning").
		From(table).
		Where(squirrel.Eq{"kanji": kanji}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "select "+table)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.WordEntry, error) {
		var e domain.WordEntry
		err := row.Scan(&e.Word, &e.Reading, &e.Meaning)
		return e, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "scan "+table)
	}
	return entries, nil
}

// Summary describes the currently published data set.
type Summary struct {
	RunID   uuid.UUID
	Kanji   int
	Entries int
}

// Summary returns counts for the published rows. RunID is uuid.Nil when
// the table is empty.
func (r *Repo) Summary(ctx context.Context) (Summary, error) {
	sql, args, err := psql.Select("COUNT(DISTINCT kanji)", "COUNT(*)", "(array_agg(run_id))[1]").
		From(table).
		ToSql()
	if err != nil {
		return Summary{}, fmt.Errorf("build select: %w", err)
	}

	var (
		s     Summary
		runID *uuid.UUID
	)
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&s.Kanji, &s.Entries, &runID); err != nil {
		return Summary{}, postgres.MapError(err, "summarize "+table)
	}
	if runID != nil {
		s.RunID = *runID
	}
	return s, nil
}
