package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/personacore/sentinel/pkg/domain"
	"github.com/personacore/sentinel/pkg/domain/profile"
)

const casMaxRetries = 5

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) profile.Repository {
	return &profileRepository{
		db: db,
	}
}

func (r *profileRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*profile.SafetyProfile, error) {
	var entity profile.SafetyProfile
	err := r.db.WithContext(ctx).First(&entity, "user_id = ?", userID).Error
	if err == nil {
		return &entity, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load safety profile: %w", err)
	}

	fresh := profile.NewSafetyProfile(userID)
	// Another request may create the row concurrently; DoNothing plus a
	// re-read keeps first-reference creation race-free.
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(fresh).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create safety profile: %w", err)
	}

	if err := r.db.WithContext(ctx).First(&entity, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload safety profile: %w", err)
	}
	return &entity, nil
}

// UpdateAtomic serializes per-user profile writes with an optimistic
// compare-and-swap on the version column. Concurrent analyses for the same
// user retry against the fresh row instead of losing updates.
func (r *profileRepository) UpdateAtomic(ctx context.Context, userID uuid.UUID, ev profile.Event) (*profile.SafetyProfile, error) {
	for attempt := 0; attempt < casMaxRetries; attempt++ {
		current, err := r.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}

		next := profile.Apply(*current, ev)
		next.Version = current.Version + 1

		res := r.db.WithContext(ctx).
			Model(&profile.SafetyProfile{}).
			Where("user_id = ? AND version = ?", userID, current.Version).
			Updates(map[string]interface{}{
				"overall_safety_score": next.OverallSafetyScore,
				"trust_level":          next.TrustLevel,
				"total_interactions":   next.TotalInteractions,
				"flagged_interactions": next.FlaggedInteractions,
				"content_violations":   next.ContentViolations,
				"is_restricted":        next.IsRestricted,
				"restriction_reason":   next.RestrictionReason,
				"version":              next.Version,
				"updated_at":           gorm.Expr("NOW()"),
			})
		if res.Error != nil {
			return nil, fmt.Errorf("failed to update safety profile: %w", res.Error)
		}
		if res.RowsAffected == 1 {
			return &next, nil
		}
	}
	return nil, domain.ErrConcurrentUpdate
}
