package profile

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/personacore/sentinel/pkg/domain"
)

// SafetyProfile is the durable per-user trust aggregate. It is the only
// mutable shared state in the engine and is written exclusively through
// Repository.UpdateAtomic.
type SafetyProfile struct {
	UserID              uuid.UUID         `json:"user_id" gorm:"type:uuid;primaryKey"`
	OverallSafetyScore  float64           `json:"overall_safety_score"`
	TrustLevel          domain.TrustLevel `json:"trust_level"`
	TotalInteractions   int               `json:"total_interactions"`
	FlaggedInteractions int               `json:"flagged_interactions"`
	ContentViolations   int               `json:"content_violations"`
	IsRestricted        bool              `json:"is_restricted"`
	RestrictionReason   string            `json:"restriction_reason"`
	FamilyFriendlyMode  bool              `json:"family_friendly_mode"`
	Version             int64             `json:"-"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

func (p *SafetyProfile) TableName() string {
	return "public.safety_profiles"
}

func (p *SafetyProfile) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// NewSafetyProfile returns the lazily created initial profile: fully
// trusted score, "new" standing.
func NewSafetyProfile(userID uuid.UUID) *SafetyProfile {
	return &SafetyProfile{
		UserID:             userID,
		OverallSafetyScore: 1.0,
		TrustLevel:         domain.TrustLevelNew,
		Version:            1,
	}
}
