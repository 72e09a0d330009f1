package profile

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/personacore/sentinel/pkg/domain"
)

func TestApply_FlaggedModerationIncrementsCounters(t *testing.T) {
	p := *NewSafetyProfile(uuid.New())

	p = Apply(p, ModerationOutcome{Status: domain.ModerationStatusFlagged})

	assert.Equal(t, 1, p.ContentViolations)
	assert.Equal(t, 1, p.FlaggedInteractions)
	assert.Equal(t, 1, p.TotalInteractions)
	// violationRate 1.0 -> score clamped to 0 -> restricted
	assert.Equal(t, 0.0, p.OverallSafetyScore)
	assert.True(t, p.IsRestricted)
	assert.Equal(t, domain.TrustLevelRestricted, p.TrustLevel)
	assert.NotEmpty(t, p.RestrictionReason)
}

func TestApply_SingleViolationAfterManyApprovals(t *testing.T) {
	p := *NewSafetyProfile(uuid.New())
	for i := 0; i < 19; i++ {
		p = Apply(p, ModerationOutcome{Status: domain.ModerationStatusApproved})
	}

	p = Apply(p, ModerationOutcome{Status: domain.ModerationStatusBlocked})

	assert.Equal(t, 1, p.ContentViolations)
	assert.Equal(t, 20, p.TotalInteractions)
	// violationRate 0.05 -> score 0.9, standing untouched
	assert.InDelta(t, 0.9, p.OverallSafetyScore, 1e-9)
	assert.False(t, p.IsRestricted)
}

func TestApply_ApprovedOutcomePromotesAfterFiftyInteractions(t *testing.T) {
	p := *NewSafetyProfile(uuid.New())

	for i := 0; i < 51; i++ {
		p = Apply(p, ModerationOutcome{Status: domain.ModerationStatusApproved})
	}

	assert.Equal(t, 51, p.TotalInteractions)
	assert.Equal(t, domain.TrustLevelTrusted, p.TrustLevel)
	assert.Equal(t, 1.0, p.OverallSafetyScore)
}

func TestApply_BehaviorRiskErodesScore(t *testing.T) {
	p := *NewSafetyProfile(uuid.New())

	p = Apply(p, BehaviorRisk{RiskLevel: domain.SeverityHigh, Confidence: 0.8})

	assert.InDelta(t, 0.92, p.OverallSafetyScore, 1e-9)
	assert.Equal(t, domain.TrustLevelFlagged, p.TrustLevel)
	assert.False(t, p.IsRestricted)
}

func TestApply_CriticalBehaviorRiskRestricts(t *testing.T) {
	p := *NewSafetyProfile(uuid.New())

	p = Apply(p, BehaviorRisk{RiskLevel: domain.SeverityCritical, Confidence: 0.9})

	assert.True(t, p.IsRestricted)
	assert.Equal(t, domain.TrustLevelRestricted, p.TrustLevel)
}

func TestApply_LowBehaviorRiskIsNoOp(t *testing.T) {
	p := *NewSafetyProfile(uuid.New())

	updated := Apply(p, BehaviorRisk{RiskLevel: domain.SeverityLow, Confidence: 0.5})

	assert.Equal(t, p.OverallSafetyScore, updated.OverallSafetyScore)
	assert.Equal(t, p.TrustLevel, updated.TrustLevel)
}

func TestApply_ManualRatings(t *testing.T) {
	p := *NewSafetyProfile(uuid.New())

	p = Apply(p, ManualRating{SafetyRating: 1})
	assert.InDelta(t, 0.9, p.OverallSafetyScore, 1e-9)

	p = Apply(p, ManualRating{SafetyRating: 5})
	assert.InDelta(t, 0.95, p.OverallSafetyScore, 1e-9)

	// 3 is neutral
	p = Apply(p, ManualRating{SafetyRating: 3})
	assert.InDelta(t, 0.95, p.OverallSafetyScore, 1e-9)
}

func TestApply_RestrictionIsSticky(t *testing.T) {
	p := *NewSafetyProfile(uuid.New())
	p = Apply(p, BehaviorRisk{RiskLevel: domain.SeverityCritical, Confidence: 0.9})
	require.True(t, p.IsRestricted)

	for i := 0; i < 200; i++ {
		p = Apply(p, ModerationOutcome{Status: domain.ModerationStatusApproved})
		p = Apply(p, ManualRating{SafetyRating: 5})
	}

	assert.True(t, p.IsRestricted)
	assert.Equal(t, domain.TrustLevelRestricted, p.TrustLevel)
}

// Invariants hold for arbitrary interleavings of events.
func TestApply_InvariantsUnderRandomEventSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	randomEvent := func() Event {
		switch rng.Intn(5) {
		case 0:
			return ModerationOutcome{Status: domain.ModerationStatusApproved}
		case 1:
			return ModerationOutcome{Status: domain.ModerationStatusFlagged}
		case 2:
			return ModerationOutcome{Status: domain.ModerationStatusBlocked}
		case 3:
			levels := []domain.Severity{
				domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh, domain.SeverityCritical,
			}
			return BehaviorRisk{RiskLevel: levels[rng.Intn(len(levels))], Confidence: rng.Float64()}
		default:
			return ManualRating{SafetyRating: 1 + rng.Intn(5)}
		}
	}

	for run := 0; run < 100; run++ {
		p := *NewSafetyProfile(uuid.New())
		wasRestricted := false
		for step := 0; step < 200; step++ {
			p = Apply(p, randomEvent())

			require.GreaterOrEqual(t, p.OverallSafetyScore, 0.0, "run %d step %d", run, step)
			require.LessOrEqual(t, p.OverallSafetyScore, 1.0, "run %d step %d", run, step)
			require.Equal(t, p.IsRestricted, p.TrustLevel == domain.TrustLevelRestricted,
				"run %d step %d: isRestricted must mirror trustLevel", run, step)
			if wasRestricted {
				require.True(t, p.IsRestricted, "run %d step %d: restriction must be sticky", run, step)
			}
			wasRestricted = wasRestricted || p.IsRestricted
		}
	}
}
