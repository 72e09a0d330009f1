package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/personacore/sentinel/pkg/domain/moderation"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) Save(ctx context.Context, record *moderation.ModerationRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *Repository) GetByContentID(ctx context.Context, contentID string) (*moderation.ModerationRecord, error) {
	args := m.Called(ctx, contentID)
	record, ok := args.Get(0).(*moderation.ModerationRecord)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *moderation.ModerationRecord, got %T", args.Get(0))
	}
	return record, args.Error(1)
}

func (m *Repository) ListByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]moderation.ModerationRecord, error) {
	args := m.Called(ctx, userID, since)
	records, ok := args.Get(0).([]moderation.ModerationRecord)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected []moderation.ModerationRecord, got %T", args.Get(0))
	}
	return records, args.Error(1)
}

func (m *Repository) CountViolationsByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, since)
	count, ok := args.Get(0).(int64)
	if !ok && args.Get(0) != nil {
		return 0, fmt.Errorf("expected int64, got %T", args.Get(0))
	}
	return count, args.Error(1)
}

func (m *Repository) AttachIncident(ctx context.Context, recordID, incidentID uuid.UUID) error {
	args := m.Called(ctx, recordID, incidentID)
	return args.Error(0)
}
