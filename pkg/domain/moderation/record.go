package moderation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/personacore/sentinel/pkg/domain"
	dbtypes "github.com/personacore/sentinel/pkg/infra/database/types"
)

// ModerationRecord is the durable, append-only outcome of moderating one
// content item. It is never mutated after creation except to attach the
// resulting incident ID.
type ModerationRecord struct {
	ID                uuid.UUID               `json:"id" gorm:"type:uuid;primaryKey"`
	ContentID         string                  `json:"content_id" gorm:"index"`
	ContentType       string                  `json:"content_type"`
	UserID            *uuid.UUID              `json:"user_id,omitempty" gorm:"type:uuid;index"`
	PersonaID         *uuid.UUID              `json:"persona_id,omitempty" gorm:"type:uuid"`
	Content           string                  `json:"content"`
	Status            domain.ModerationStatus `json:"status"`
	Score             float64                 `json:"score"`
	FlaggedCategories dbtypes.StringArray     `json:"flagged_categories" gorm:"type:text[]"`
	Severity          domain.Severity         `json:"severity"`
	AgeRating         domain.AgeRating        `json:"age_rating"`
	ComplianceFlags   dbtypes.StringArray     `json:"compliance_flags" gorm:"type:text[]"`
	Language          string                  `json:"language"`
	Summary           string                  `json:"summary"`
	ActionRequired    bool                    `json:"action_required"`
	Metadata          domain.MetadataJSON     `json:"metadata" gorm:"type:jsonb"`
	IncidentID        *uuid.UUID              `json:"incident_id,omitempty" gorm:"type:uuid"`
	CreatedAt         time.Time               `json:"created_at"`
}

func (r *ModerationRecord) TableName() string {
	return "public.moderation_records"
}

func (r *ModerationRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	return r.Validate()
}

func (r *ModerationRecord) Validate() error {
	if r.ContentID == "" {
		return fmt.Errorf("content_id is required")
	}
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	return nil
}

// RequiresIncident reports whether the record's outcome must have a
// corresponding safety incident.
func (r *ModerationRecord) RequiresIncident() bool {
	return r.Status == domain.ModerationStatusFlagged || r.Status == domain.ModerationStatusBlocked
}
