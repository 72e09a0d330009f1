package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/personacore/sentinel/pkg/domain"
	"github.com/personacore/sentinel/pkg/domain/moderation"
)

type moderationRepository struct {
	db *gorm.DB
}

func NewModerationRepository(db *gorm.DB) moderation.Repository {
	return &moderationRepository{
		db: db,
	}
}

func (r *moderationRepository) Save(ctx context.Context, record *moderation.ModerationRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to save moderation record: %w", err)
	}
	return nil
}

func (r *moderationRepository) GetByContentID(ctx context.Context, contentID string) (*moderation.ModerationRecord, error) {
	var record moderation.ModerationRecord
	err := r.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("created_at desc").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("moderation record", uuid.Nil)
		}
		return nil, fmt.Errorf("failed to load moderation record: %w", err)
	}
	return &record, nil
}

func (r *moderationRepository) ListByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]moderation.ModerationRecord, error) {
	var records []moderation.ModerationRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at desc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list moderation records: %w", err)
	}
	return records, nil
}

func (r *moderationRepository) CountViolationsByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&moderation.ModerationRecord{}).
		Where("user_id = ? AND created_at >= ? AND status IN ?", userID, since,
			[]domain.ModerationStatus{domain.ModerationStatusFlagged, domain.ModerationStatusBlocked}).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count moderation violations: %w", err)
	}
	return count, nil
}

// AttachIncident is the only permitted mutation of a moderation record.
func (r *moderationRepository) AttachIncident(ctx context.Context, recordID, incidentID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&moderation.ModerationRecord{}).
		Where("id = ?", recordID).
		Update("incident_id", incidentID)
	if res.Error != nil {
		return fmt.Errorf("failed to attach incident to moderation record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFoundError("moderation record", recordID)
	}
	return nil
}
