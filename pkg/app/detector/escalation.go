package detector

import (
	"context"
	"sort"
	"time"

	"github.com/personacore/sentinel/pkg/common"
	"github.com/personacore/sentinel/pkg/domain"
	"github.com/personacore/sentinel/pkg/domain/incident"
	"github.com/personacore/sentinel/pkg/types"
)

const (
	escalationMinIncidents      = 2
	escalationCountThreshold    = 3 // fires strictly above this
	escalationCriticalThreshold = 5
)

// escalationDetector reads the user's incident history over a fixed seven
// day window, independent of the caller's lookback. This is the feedback
// loop: past incidents raise current severity.
type escalationDetector struct {
	incidentRepo incident.Repository
}

func NewEscalationDetector(incidentRepo incident.Repository) Detector {
	return &escalationDetector{
		incidentRepo: incidentRepo,
	}
}

func (d *escalationDetector) Name() string {
	return "escalation"
}

func (d *escalationDetector) Detect(ctx context.Context, in Input) (*types.ThreatIndicator, error) {
	since := time.Now().Add(-common.EscalationLookback)
	incidents, err := d.incidentRepo.ListByUserSince(ctx, in.UserID, since)
	if err != nil {
		return nil, err
	}
	if len(incidents) < escalationMinIncidents {
		return nil, nil
	}

	chronological := make([]incident.SafetyIncident, len(incidents))
	copy(chronological, incidents)
	sort.Slice(chronological, func(i, j int) bool {
		return chronological[i].CreatedAt.Before(chronological[j].CreatedAt)
	})

	escalating := false
	for i := 1; i < len(chronological); i++ {
		if chronological[i].Severity.Rank() > chronological[i-1].Severity.Rank() {
			escalating = true
			break
		}
	}

	frequent := len(incidents) > escalationCountThreshold
	if !escalating && !frequent {
		return nil, nil
	}

	severity := domain.SeverityHigh
	if len(incidents) > escalationCriticalThreshold {
		severity = domain.SeverityCritical
	}

	return &types.ThreatIndicator{
		Type:       domain.IndicatorBehaviorEscalation,
		Severity:   severity,
		Confidence: 0.8,
		Evidence: map[string]interface{}{
			"incident_count": len(incidents),
			"escalating":     escalating,
			"lookback_days":  7,
		},
	}, nil
}
