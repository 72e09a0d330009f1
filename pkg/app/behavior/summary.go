package behavior

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	appProfile "github.com/personacore/sentinel/pkg/app/profile"
	"github.com/personacore/sentinel/pkg/cache"
	"github.com/personacore/sentinel/pkg/common"
	"github.com/personacore/sentinel/pkg/domain"
	domainIncident "github.com/personacore/sentinel/pkg/domain/incident"
	"github.com/personacore/sentinel/pkg/types"
)

// Summarizer derives the read-only behavior view other platform components
// consume. Results are cached briefly; the view is advisory, not
// authoritative.
type Summarizer interface {
	GetBehaviorSummary(ctx context.Context, userID uuid.UUID) (*types.BehaviorSummary, error)
}

type summarizer struct {
	logger       *logrus.Logger
	profiles     appProfile.Getter
	incidentRepo domainIncident.Repository
	cache        *cache.Cache
}

func NewSummarizer(
	logger *logrus.Logger,
	profiles appProfile.Getter,
	incidentRepo domainIncident.Repository,
	cache *cache.Cache,
) Summarizer {
	return &summarizer{
		logger:       logger,
		profiles:     profiles,
		incidentRepo: incidentRepo,
		cache:        cache,
	}
}

func (s *summarizer) GetBehaviorSummary(ctx context.Context, userID uuid.UUID) (*types.BehaviorSummary, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetSummary(ctx, userID.String()); err == nil {
			return cached, nil
		}
	}

	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	since := time.Now().Add(-common.EscalationLookback)
	incidents, err := s.incidentRepo.ListByUserSince(ctx, userID, since)
	if err != nil {
		// Degraded view: the profile alone still gives a usable answer.
		s.logger.WithError(err).WithField("user_id", userID).Warn("incident history unavailable for summary")
		incidents = nil
	}

	summary := &types.BehaviorSummary{
		UserID:           userID,
		CurrentRiskLevel: deriveRiskLevel(p.IsRestricted, p.OverallSafetyScore, incidents),
		RecentIncidents:  len(incidents),
		SafetyScore:      p.OverallSafetyScore,
		Recommendations:  buildRecommendations(p.IsRestricted, p.OverallSafetyScore, p.FamilyFriendlyMode, incidents),
	}

	if s.cache != nil {
		if err := s.cache.SaveSummary(ctx, summary); err != nil {
			s.logger.WithError(err).WithField("user_id", userID).Warn("failed to cache behavior summary")
		}
	}
	return summary, nil
}

// deriveRiskLevel combines the profile state with the recent incident
// history; open incidents dominate the score-based floor.
func deriveRiskLevel(restricted bool, score float64, incidents []domainIncident.SafetyIncident) domain.Severity {
	level := domain.SeverityLow
	switch {
	case restricted:
		level = domain.SeverityHigh
	case score < 0.3:
		level = domain.SeverityHigh
	case score < 0.6:
		level = domain.SeverityMedium
	}
	for _, inc := range incidents {
		if inc.Status == domain.IncidentStatusOpen {
			level = domain.MaxSeverity(level, inc.Severity)
		}
	}
	return level
}

func buildRecommendations(restricted bool, score float64, familyFriendly bool, incidents []domainIncident.SafetyIncident) []string {
	recs := make([]string, 0, 4)
	if restricted {
		recs = append(recs, "account is restricted; route interactions through manual review")
	}
	if score < 0.3 {
		recs = append(recs, "safety score is critically low; consider suspension review")
	} else if score < 0.6 {
		recs = append(recs, "monitor upcoming interactions closely")
	}
	if len(incidents) > 3 {
		recs = append(recs, "repeated incidents in the last 7 days; apply rate limiting")
	}
	if familyFriendly {
		recs = append(recs, "family friendly mode active; enforce all-ages content only")
	}
	if len(recs) == 0 {
		recs = append(recs, "no action required")
	}
	return recs
}
