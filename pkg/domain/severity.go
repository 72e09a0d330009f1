package domain

// Severity is the four-point ordinal shared by indicators, moderation
// results and incidents.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

func (s Severity) Rank() int {
	return severityRank[s]
}

func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// MaxSeverity returns the higher of the two severities.
func MaxSeverity(a, b Severity) Severity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

type TrustLevel string

const (
	TrustLevelNew        TrustLevel = "new"
	TrustLevelTrusted    TrustLevel = "trusted"
	TrustLevelVerified   TrustLevel = "verified"
	TrustLevelFlagged    TrustLevel = "flagged"
	TrustLevelRestricted TrustLevel = "restricted"
)

type PatternType string

const (
	PatternSpam                 PatternType = "spam"
	PatternHarassment           PatternType = "harassment"
	PatternEscalation           PatternType = "escalation"
	PatternInappropriateContent PatternType = "inappropriate_content"
	PatternNormal               PatternType = "normal"
)

type IndicatorType string

const (
	IndicatorSpamPattern        IndicatorType = "spam_pattern"
	IndicatorHarassmentPattern  IndicatorType = "harassment_pattern"
	IndicatorBehaviorEscalation IndicatorType = "behavior_escalation"
	IndicatorLanguageThreat     IndicatorType = "language_threat"
)

type RecommendedAction string

const (
	ActionNone                 RecommendedAction = "none"
	ActionWarning              RecommendedAction = "warning"
	ActionRateLimit            RecommendedAction = "rate_limit"
	ActionTemporaryRestriction RecommendedAction = "temporary_restriction"
	ActionAccountSuspension    RecommendedAction = "account_suspension"
)

type ModerationStatus string

const (
	ModerationStatusPending     ModerationStatus = "pending"
	ModerationStatusApproved    ModerationStatus = "approved"
	ModerationStatusFlagged     ModerationStatus = "flagged"
	ModerationStatusBlocked     ModerationStatus = "blocked"
	ModerationStatusUnderReview ModerationStatus = "under_review"
)

type AgeRating string

const (
	AgeRatingAllAges    AgeRating = "all_ages"
	AgeRatingTeen       AgeRating = "teen"
	AgeRatingMature     AgeRating = "mature"
	AgeRatingAdultsOnly AgeRating = "adults_only"
)

type IncidentType string

const (
	IncidentContentViolation     IncidentType = "content_violation"
	IncidentBehaviorViolation    IncidentType = "behavior_violation"
	IncidentSpam                 IncidentType = "spam"
	IncidentHarassment           IncidentType = "harassment"
	IncidentThreats              IncidentType = "threats"
	IncidentInappropriateContent IncidentType = "inappropriate_content"
	IncidentAgeViolation         IncidentType = "age_violation"
)

type DetectionMethod string

const (
	DetectionPatternAnalysis DetectionMethod = "pattern_analysis"
	DetectionAI              DetectionMethod = "ai_detection"
	DetectionUserReport      DetectionMethod = "user_report"
	DetectionManualReview    DetectionMethod = "manual_review"
)

type IncidentStatus string

const (
	IncidentStatusOpen     IncidentStatus = "open"
	IncidentStatusResolved IncidentStatus = "resolved"
)

// ClampScore bounds a score to [0,1].
func ClampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
