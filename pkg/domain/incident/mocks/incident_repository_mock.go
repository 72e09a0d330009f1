package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/personacore/sentinel/pkg/domain/incident"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Save(ctx context.Context, entity *incident.SafetyIncident) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *Repository) ListByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]incident.SafetyIncident, error) {
	args := m.Called(ctx, userID, since)
	incidents, ok := args.Get(0).([]incident.SafetyIncident)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected []incident.SafetyIncident, got %T", args.Get(0))
	}
	return incidents, args.Error(1)
}
