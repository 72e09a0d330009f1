package detector

import (
	"context"
	"strings"
	"time"

	"github.com/personacore/sentinel/pkg/domain"
	"github.com/personacore/sentinel/pkg/domain/moderation"
	"github.com/personacore/sentinel/pkg/types"
)

// threatLanguageDetector scans recent moderation history for records the
// oracle flagged with a threat-related category.
type threatLanguageDetector struct {
	moderationRepo moderation.Repository
}

func NewThreatLanguageDetector(moderationRepo moderation.Repository) Detector {
	return &threatLanguageDetector{
		moderationRepo: moderationRepo,
	}
}

func (d *threatLanguageDetector) Name() string {
	return "threat_language"
}

func (d *threatLanguageDetector) Detect(ctx context.Context, in Input) (*types.ThreatIndicator, error) {
	since := time.Now().Add(-in.Window)
	records, err := d.moderationRepo.ListByUserSince(ctx, in.UserID, since)
	if err != nil {
		return nil, err
	}

	threatRecords := 0
	anyCritical := false
	for _, r := range records {
		matched := false
		for _, category := range r.FlaggedCategories {
			if strings.Contains(strings.ToLower(category), "threat") {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		threatRecords++
		if r.Severity == domain.SeverityCritical {
			anyCritical = true
		}
	}
	if threatRecords == 0 {
		return nil, nil
	}

	severity := domain.SeverityHigh
	if anyCritical {
		severity = domain.SeverityCritical
	}

	return &types.ThreatIndicator{
		Type:       domain.IndicatorLanguageThreat,
		Severity:   severity,
		Confidence: 0.9,
		Evidence: map[string]interface{}{
			"threat_records": threatRecords,
			"any_critical":   anyCritical,
		},
	}, nil
}
