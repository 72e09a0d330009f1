package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/personacore/sentinel/pkg/domain/activity"
)

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) activity.Repository {
	return &activityRepository{
		db: db,
	}
}

func (r *activityRepository) MessagesByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]activity.Message, error) {
	var messages []activity.Message
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at desc").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user messages: %w", err)
	}
	return messages, nil
}

func (r *activityRepository) RatingsForUserSince(ctx context.Context, ratedUserID uuid.UUID, since time.Time) ([]activity.InteractionRating, error) {
	var ratings []activity.InteractionRating
	err := r.db.WithContext(ctx).
		Where("rated_user_id = ? AND created_at >= ?", ratedUserID, since).
		Order("created_at desc").
		Find(&ratings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list interaction ratings: %w", err)
	}
	return ratings, nil
}

func (r *activityRepository) SaveRating(ctx context.Context, rating *activity.InteractionRating) error {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return fmt.Errorf("failed to save interaction rating: %w", err)
	}
	return nil
}

func (r *activityRepository) UpsertBlock(ctx context.Context, block *activity.UserBlock) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "creator_id"}, {Name: "user_id"}, {Name: "persona_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"is_blocked": block.IsBlocked, "reason": block.Reason, "updated_at": time.Now()}),
		}).
		Create(block).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user block: %w", err)
	}
	return nil
}
