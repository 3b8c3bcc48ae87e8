package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const (
	runIDKey ctxKey = "run_id"
	phaseKey ctxKey = "phase"
)

// WithRunID stores the generator run ID in the context.
func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromCtx extracts the run ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func RunIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(runIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithPhase stores the name of the running pipeline phase in the context.
func WithPhase(ctx context.Context, phase string) context.Context {
	return context.WithValue(ctx, phaseKey, phase)
}

// PhaseFromCtx extracts the phase name from the context.
// Returns an empty string if absent.
func PhaseFromCtx(ctx context.Context) string {
	phase, _ := ctx.Value(phaseKey).(string)
	return phase
}
