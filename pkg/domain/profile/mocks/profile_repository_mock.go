package mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/personacore/sentinel/pkg/domain/profile"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*profile.SafetyProfile, error) {
	args := m.Called(ctx, userID)
	p, ok := args.Get(0).(*profile.SafetyProfile)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *profile.SafetyProfile, got %T", args.Get(0))
	}
	return p, args.Error(1)
}

func (m *Repository) UpdateAtomic(ctx context.Context, userID uuid.UUID, ev profile.Event) (*profile.SafetyProfile, error) {
	args := m.Called(ctx, userID, ev)
	p, ok := args.Get(0).(*profile.SafetyProfile)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *profile.SafetyProfile, got %T", args.Get(0))
	}
	return p, args.Error(1)
}
