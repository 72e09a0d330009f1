package incident

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/personacore/sentinel/pkg/domain"
)

// SafetyIncident is an append-only audit record of one risk event. Rows are
// created once; only Status/ActionTaken move afterwards (open -> resolved,
// driven by the external enforcement workflow).
type SafetyIncident struct {
	ID                  uuid.UUID              `json:"id" gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID              `json:"user_id" gorm:"type:uuid;index"`
	PersonaID           *uuid.UUID             `json:"persona_id,omitempty" gorm:"type:uuid"`
	ContentModerationID *uuid.UUID             `json:"content_moderation_id,omitempty" gorm:"type:uuid"`
	IncidentType        domain.IncidentType    `json:"incident_type"`
	Severity            domain.Severity        `json:"severity"`
	DetectionMethod     domain.DetectionMethod `json:"detection_method"`
	Confidence          float64                `json:"confidence"`
	Description         string                 `json:"description"`
	Evidence            domain.EvidenceJSON    `json:"evidence" gorm:"type:jsonb"`
	Status              domain.IncidentStatus  `json:"status"`
	ActionTaken         string                 `json:"action_taken"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

func (i *SafetyIncident) TableName() string {
	return "public.safety_incidents"
}

func (i *SafetyIncident) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = domain.IncidentStatusOpen
	}
	now := time.Now()
	i.CreatedAt = now
	i.UpdatedAt = now
	return i.Validate()
}

func (i *SafetyIncident) Validate() error {
	if i.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if i.IncidentType == "" {
		return fmt.Errorf("incident_type is required")
	}
	if i.Severity == "" {
		return fmt.Errorf("severity is required")
	}
	return nil
}

var incidentNamespace = uuid.MustParse("8f2c1d04-6b3a-4e5f-9c7d-2a1b0e9f8d7c")

// DeterministicID derives the incident UUID from the user, incident type and
// a source reference (moderation record ID, rating ID, or an analysis time
// bucket). Re-delivery of the same event maps onto the same row, which keeps
// at-least-once persistence idempotent.
func DeterministicID(userID uuid.UUID, incidentType domain.IncidentType, sourceRef string) uuid.UUID {
	return uuid.NewSHA1(incidentNamespace, []byte(fmt.Sprintf("%s:%s:%s", userID, incidentType, sourceRef)))
}
