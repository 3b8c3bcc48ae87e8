package sqlite

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/heartmarshall/kanjiwords/internal/domain"
)

// ListByKanji returns the published words of kanji in bucket order.
func (s *Store) ListByKanji(ctx context.Context, kanji string) ([]domain.WordEntry, error) {
	query, args, err := squirrel.Select("word", "reading", "meaning").
		From(table).
		Where(squirrel.Eq{"kanji": kanji}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer rows.Close()

	var out []domain.WordEntry
	for rows.Next() {
		var e domain.WordEntry
		if err := rows.Scan(&e.Word, &e.Reading, &e.Meaning); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// RunIDs returns the distinct run IDs present in the table.
func (s *Store) RunIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT run_id FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("select run ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
