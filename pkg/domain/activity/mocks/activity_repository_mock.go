package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/personacore/sentinel/pkg/domain/activity"
)

type Repository struct {
	mock.Mock
}

func (m *Repository) MessagesByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]activity.Message, error) {
	args := m.Called(ctx, userID, since)
	messages, ok := args.Get(0).([]activity.Message)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected []activity.Message, got %T", args.Get(0))
	}
	return messages, args.Error(1)
}

func (m *Repository) RatingsForUserSince(ctx context.Context, ratedUserID uuid.UUID, since time.Time) ([]activity.InteractionRating, error) {
	args := m.Called(ctx, ratedUserID, since)
	ratings, ok := args.Get(0).([]activity.InteractionRating)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected []activity.InteractionRating, got %T", args.Get(0))
	}
	return ratings, args.Error(1)
}

func (m *Repository) SaveRating(ctx context.Context, rating *activity.InteractionRating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *Repository) UpsertBlock(ctx context.Context, block *activity.UserBlock) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}
