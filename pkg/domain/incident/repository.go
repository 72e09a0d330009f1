package incident

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// Save inserts the incident; a duplicate deterministic ID is a no-op.
	Save(ctx context.Context, incident *SafetyIncident) error
	// ListByUserSince returns the user's incidents created at or after the
	// given time, newest first.
	ListByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]SafetyIncident, error)
}
