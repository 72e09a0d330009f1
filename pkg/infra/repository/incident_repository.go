package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/personacore/sentinel/pkg/domain/incident"
)

type incidentRepository struct {
	db *gorm.DB
}

func NewIncidentRepository(db *gorm.DB) incident.Repository {
	return &incidentRepository{
		db: db,
	}
}

// Save inserts the incident. Deterministic IDs make at-least-once delivery
// idempotent: a conflicting insert is silently skipped.
func (r *incidentRepository) Save(ctx context.Context, entity *incident.SafetyIncident) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(entity).Error
	if err != nil {
		return fmt.Errorf("failed to save safety incident: %w", err)
	}
	return nil
}

func (r *incidentRepository) ListByUserSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]incident.SafetyIncident, error) {
	var incidents []incident.SafetyIncident
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at desc").
		Find(&incidents).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list safety incidents: %w", err)
	}
	return incidents, nil
}
