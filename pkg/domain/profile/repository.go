package profile

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// GetOrCreate returns the profile for the user, lazily creating the
	// initial one on first reference.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*SafetyProfile, error)
	// UpdateAtomic applies the event through a compare-and-swap on the
	// profile version so concurrent writers for the same user serialize.
	UpdateAtomic(ctx context.Context, userID uuid.UUID, ev Event) (*SafetyProfile, error)
}
