package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/personacore/sentinel/pkg/domain"
)

// SignalWindow aggregates a user's recent activity over a lookback window.
// It is computed per call and never persisted.
type SignalWindow struct {
	UserID           uuid.UUID     `json:"user_id"`
	Window           time.Duration `json:"window"`
	MessageCount     int           `json:"message_count"`
	MessageFrequency float64       `json:"message_frequency"` // messages per hour
	AvgMessageLength float64       `json:"avg_message_length"`
	SentimentScore   float64       `json:"sentiment_score"` // 0-1, 0.5 neutral
	RatingCount      int           `json:"rating_count"`
	ViolationCount   int           `json:"violation_count"`
	ReportCount      int           `json:"report_count"`
	EscalationCount  int           `json:"escalation_count"`
}

// ThreatIndicator is one detector's positive finding, consumed by the
// behavior classifier within the same call.
type ThreatIndicator struct {
	Type       domain.IndicatorType   `json:"type"`
	Severity   domain.Severity        `json:"severity"`
	Confidence float64                `json:"confidence"`
	Evidence   map[string]interface{} `json:"evidence"`
}

// BehaviorPattern is the behavior pipeline's result for one analysis call.
type BehaviorPattern struct {
	UserID            uuid.UUID                `json:"user_id"`
	PatternType       domain.PatternType       `json:"pattern_type"`
	Confidence        float64                  `json:"confidence"`
	Indicators        []string                 `json:"indicators"`
	RiskLevel         domain.Severity          `json:"risk_level"`
	RecommendedAction domain.RecommendedAction `json:"recommended_action"`
	AnalyzedAt        time.Time                `json:"analyzed_at"`
}

// ModerationResult is the content pipeline's result for one content item.
type ModerationResult struct {
	RecordID          uuid.UUID               `json:"record_id"`
	ContentID         string                  `json:"content_id"`
	Status            domain.ModerationStatus `json:"status"`
	Score             float64                 `json:"score"`
	FlaggedCategories []string                `json:"flagged_categories"`
	Severity          domain.Severity         `json:"severity"`
	AgeRating         domain.AgeRating        `json:"age_rating"`
	ComplianceFlags   []string                `json:"compliance_flags"`
	Language          string                  `json:"language"`
	Summary           string                  `json:"summary"`
	ActionRequired    bool                    `json:"action_required"`
}

// BehaviorSummary is the derived read-only view served to other platform
// components.
type BehaviorSummary struct {
	UserID           uuid.UUID       `json:"user_id"`
	CurrentRiskLevel domain.Severity `json:"current_risk_level"`
	RecentIncidents  int             `json:"recent_incidents"`
	SafetyScore      float64         `json:"safety_score"`
	Recommendations  []string        `json:"recommendations"`
}
