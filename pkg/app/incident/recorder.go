package incident

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/personacore/sentinel/pkg/domain"
	"github.com/personacore/sentinel/pkg/domain/activity"
	domainIncident "github.com/personacore/sentinel/pkg/domain/incident"
	"github.com/personacore/sentinel/pkg/domain/moderation"
	"github.com/personacore/sentinel/pkg/infra/prometheus"
	"github.com/personacore/sentinel/pkg/types"
)

// Recorder writes safety incidents for the audit trail. Every method is
// fire-and-forget: persistence failures are logged and swallowed so that
// incident recording can never fail the operation that produced the event.
// Incident IDs are deterministic, so redelivery of the same event lands on
// the existing row.
type Recorder interface {
	RecordBehaviorPattern(ctx context.Context, pattern *types.BehaviorPattern) *domainIncident.SafetyIncident
	RecordModeration(ctx context.Context, record *moderation.ModerationRecord) *domainIncident.SafetyIncident
	RecordRatingReport(ctx context.Context, rating *activity.InteractionRating) *domainIncident.SafetyIncident
	RecordBlock(ctx context.Context, block *activity.UserBlock) *domainIncident.SafetyIncident
}

type recorder struct {
	logger *logrus.Logger
	repo   domainIncident.Repository
}

func NewRecorder(logger *logrus.Logger, repo domainIncident.Repository) Recorder {
	return &recorder{
		logger: logger,
		repo:   repo,
	}
}

var patternIncidentType = map[domain.PatternType]domain.IncidentType{
	domain.PatternSpam:                 domain.IncidentSpam,
	domain.PatternHarassment:           domain.IncidentHarassment,
	domain.PatternEscalation:           domain.IncidentBehaviorViolation,
	domain.PatternInappropriateContent: domain.IncidentThreats,
}

func (r *recorder) RecordBehaviorPattern(ctx context.Context, pattern *types.BehaviorPattern) *domainIncident.SafetyIncident {
	incidentType, ok := patternIncidentType[pattern.PatternType]
	if !ok {
		return nil
	}

	// The analysis timestamp buckets the source reference to second
	// precision so a retried analysis maps onto the same incident.
	sourceRef := pattern.AnalyzedAt.Truncate(time.Second).UTC().Format(time.RFC3339)

	inc := &domainIncident.SafetyIncident{
		ID:              domainIncident.DeterministicID(pattern.UserID, incidentType, sourceRef),
		UserID:          pattern.UserID,
		IncidentType:    incidentType,
		Severity:        pattern.RiskLevel,
		DetectionMethod: domain.DetectionPatternAnalysis,
		Confidence:      pattern.Confidence,
		Description:     fmt.Sprintf("behavior analysis detected %s pattern", pattern.PatternType),
		Evidence: domain.EvidenceJSON{
			"pattern_type":       string(pattern.PatternType),
			"indicators":         pattern.Indicators,
			"recommended_action": string(pattern.RecommendedAction),
			"analyzed_at":        sourceRef,
		},
	}
	return r.save(ctx, inc)
}

func (r *recorder) RecordModeration(ctx context.Context, record *moderation.ModerationRecord) *domainIncident.SafetyIncident {
	// SafetyIncident requires a user. Flagged or blocked anonymous content
	// keeps only its moderation record; the record itself is the audit
	// trail for submissions that cannot be attributed.
	if record.UserID == nil || !record.RequiresIncident() {
		return nil
	}

	inc := &domainIncident.SafetyIncident{
		ID:                  domainIncident.DeterministicID(*record.UserID, domain.IncidentContentViolation, record.ID.String()),
		UserID:              *record.UserID,
		PersonaID:           record.PersonaID,
		ContentModerationID: &record.ID,
		IncidentType:        domain.IncidentContentViolation,
		Severity:            record.Severity,
		DetectionMethod:     domain.DetectionAI,
		Confidence:          record.Score,
		Description:         fmt.Sprintf("content %s was %s", record.ContentID, record.Status),
		Evidence: domain.EvidenceJSON{
			"content_id":         record.ContentID,
			"status":             string(record.Status),
			"score":              record.Score,
			"flagged_categories": []string(record.FlaggedCategories),
		},
	}
	return r.save(ctx, inc)
}

func (r *recorder) RecordRatingReport(ctx context.Context, rating *activity.InteractionRating) *domainIncident.SafetyIncident {
	var incidentType domain.IncidentType
	severity := domain.SeverityMedium
	switch {
	case rating.ReportsThreats:
		incidentType = domain.IncidentThreats
		severity = domain.SeverityHigh
	case rating.IsHarassment:
		incidentType = domain.IncidentHarassment
	case rating.SafetyRating <= 1:
		incidentType = domain.IncidentBehaviorViolation
	default:
		return nil
	}

	inc := &domainIncident.SafetyIncident{
		ID:              domainIncident.DeterministicID(rating.RatedUserID, incidentType, rating.ID.String()),
		UserID:          rating.RatedUserID,
		PersonaID:       rating.PersonaID,
		IncidentType:    incidentType,
		Severity:        severity,
		DetectionMethod: domain.DetectionUserReport,
		Confidence:      1.0,
		Description:     fmt.Sprintf("creator reported %s in interaction rating", incidentType),
		Evidence: domain.EvidenceJSON{
			"rating_id":       rating.ID.String(),
			"rater_id":        rating.RaterID.String(),
			"safety_rating":   rating.SafetyRating,
			"is_harassment":   rating.IsHarassment,
			"reports_threats": rating.ReportsThreats,
		},
	}
	return r.save(ctx, inc)
}

func (r *recorder) RecordBlock(ctx context.Context, block *activity.UserBlock) *domainIncident.SafetyIncident {
	if !block.IsBlocked {
		return nil
	}

	inc := &domainIncident.SafetyIncident{
		ID:              domainIncident.DeterministicID(block.UserID, domain.IncidentBehaviorViolation, block.ID.String()),
		UserID:          block.UserID,
		PersonaID:       block.PersonaID,
		IncidentType:    domain.IncidentBehaviorViolation,
		Severity:        domain.SeverityMedium,
		DetectionMethod: domain.DetectionManualReview,
		Confidence:      1.0,
		Description:     "creator blocked user",
		Evidence: domain.EvidenceJSON{
			"block_id":   block.ID.String(),
			"creator_id": block.CreatorID.String(),
			"reason":     block.Reason,
		},
	}
	return r.save(ctx, inc)
}

func (r *recorder) save(ctx context.Context, inc *domainIncident.SafetyIncident) *domainIncident.SafetyIncident {
	if err := r.repo.Save(ctx, inc); err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":       inc.UserID,
			"incident_type": inc.IncidentType,
		}).Error("failed to record safety incident")
		return nil
	}
	prometheus.IncidentsTotal.WithLabelValues(string(inc.IncidentType)).Inc()
	return inc
}
