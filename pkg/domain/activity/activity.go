package activity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is the platform's chat-message row, read-only from the engine's
// point of view. The signal collector samples it for frequency, length and
// sentiment signals.
type Message struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID  `json:"user_id" gorm:"type:uuid;index"`
	PersonaID      *uuid.UUID `json:"persona_id,omitempty" gorm:"type:uuid"`
	ConversationID *uuid.UUID `json:"conversation_id,omitempty" gorm:"type:uuid"`
	Content        string     `json:"content"`
	CreatedAt      time.Time  `json:"created_at" gorm:"index"`
}

func (m *Message) TableName() string {
	return "public.user_messages"
}

// InteractionRating is a creator's manual safety rating of one conversation
// with a user.
type InteractionRating struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	RaterID        uuid.UUID  `json:"rater_id" gorm:"type:uuid"`
	RatedUserID    uuid.UUID  `json:"rated_user_id" gorm:"type:uuid;index"`
	PersonaID      *uuid.UUID `json:"persona_id,omitempty" gorm:"type:uuid"`
	ConversationID *uuid.UUID `json:"conversation_id,omitempty" gorm:"type:uuid"`
	SafetyRating   int        `json:"safety_rating"`
	IsHarassment   bool       `json:"is_harassment"`
	ReportsThreats bool       `json:"reports_threats"`
	Comment        string     `json:"comment"`
	CreatedAt      time.Time  `json:"created_at" gorm:"index"`
}

func (r *InteractionRating) TableName() string {
	return "public.interaction_ratings"
}

func (r *InteractionRating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.CreatedAt = time.Now()
	return r.Validate()
}

func (r *InteractionRating) Validate() error {
	if r.RaterID == uuid.Nil || r.RatedUserID == uuid.Nil {
		return fmt.Errorf("rater_id and rated_user_id are required")
	}
	if r.SafetyRating < 1 || r.SafetyRating > 5 {
		return fmt.Errorf("safety_rating must be between 1 and 5")
	}
	return nil
}

// UserBlock records a creator blocking (or unblocking) a user from a persona.
type UserBlock struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	CreatorID uuid.UUID  `json:"creator_id" gorm:"type:uuid;index"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;index"`
	PersonaID *uuid.UUID `json:"persona_id,omitempty" gorm:"type:uuid"`
	IsBlocked bool       `json:"is_blocked"`
	Reason    string     `json:"reason"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (b *UserBlock) TableName() string {
	return "public.user_blocks"
}

func (b *UserBlock) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}
