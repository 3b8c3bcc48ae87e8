package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/kanjiwords/internal/domain"
)

// MapError converts pgx/pgconn errors to domain errors, prefixed with op.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass through.
func MapError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, domain.ErrAlreadyExists)
		case "23502", "23514": // not_null_violation, check_violation
			return fmt.Errorf("%s: %s: %w", op, pgErr.ConstraintName, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
