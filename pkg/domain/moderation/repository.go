package moderation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, record *ModerationRecord) error
	GetByContentID(ctx context.Context, contentID string) (*ModerationRecord, error)
	// ListByUserSince returns the user's moderation records created at or
	// after the given time, newest first.
	ListByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]ModerationRecord, error)
	// CountViolationsByUserSince counts flagged or blocked records in the window.
	CountViolationsByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error)
	AttachIncident(ctx context.Context, recordID, incidentID uuid.UUID) error
}
