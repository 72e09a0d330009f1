package detector

import (
	"context"
	"time"

	"github.com/personacore/sentinel/pkg/domain"
	"github.com/personacore/sentinel/pkg/domain/activity"
	"github.com/personacore/sentinel/pkg/types"
)

type harassmentDetector struct {
	activityRepo activity.Repository
}

func NewHarassmentDetector(activityRepo activity.Repository) Detector {
	return &harassmentDetector{
		activityRepo: activityRepo,
	}
}

func (d *harassmentDetector) Name() string {
	return "harassment"
}

func (d *harassmentDetector) Detect(ctx context.Context, in Input) (*types.ThreatIndicator, error) {
	since := time.Now().Add(-in.Window)
	ratings, err := d.activityRepo.RatingsForUserSince(ctx, in.UserID, since)
	if err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return nil, nil
	}

	harassmentFlags := 0
	lowRatings := 0
	total := 0
	for _, r := range ratings {
		if r.IsHarassment {
			harassmentFlags++
		}
		if r.SafetyRating <= 2 {
			lowRatings++
		}
		total += r.SafetyRating
	}
	mean := float64(total) / float64(len(ratings))

	flagged := harassmentFlags > 0
	consistentlyLow := lowRatings > 1 && mean < 2.5
	if !flagged && !consistentlyLow {
		return nil, nil
	}

	severity := domain.SeverityMedium
	if harassmentFlags > 1 {
		severity = domain.SeverityHigh
	}

	return &types.ThreatIndicator{
		Type:       domain.IndicatorHarassmentPattern,
		Severity:   severity,
		Confidence: 0.7,
		Evidence: map[string]interface{}{
			"rating_count":     len(ratings),
			"harassment_flags": harassmentFlags,
			"low_ratings":      lowRatings,
			"mean_rating":      mean,
		},
	}, nil
}
