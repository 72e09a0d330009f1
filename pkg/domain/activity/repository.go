package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	// MessagesByUserSince returns the user's messages created at or after
	// the given time, newest first.
	MessagesByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]Message, error)
	// RatingsForUserSince returns ratings directed at the user in the window.
	RatingsForUserSince(ctx context.Context, ratedUserID uuid.UUID, since time.Time) ([]InteractionRating, error)
	SaveRating(ctx context.Context, rating *InteractionRating) error
	// UpsertBlock creates or updates the (creator, user, persona) block row.
	UpsertBlock(ctx context.Context, block *UserBlock) error
}
