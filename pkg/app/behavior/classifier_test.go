package behavior

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/personacore/sentinel/pkg/domain"
	"github.com/personacore/sentinel/pkg/types"
)

func indicator(indType domain.IndicatorType, severity domain.Severity) types.ThreatIndicator {
	return types.ThreatIndicator{
		Type:       indType,
		Severity:   severity,
		Confidence: 0.8,
	}
}

func TestBuildPattern_NoIndicators(t *testing.T) {
	pattern := BuildPattern(uuid.New(), types.SignalWindow{}, nil)

	assert.Equal(t, domain.PatternNormal, pattern.PatternType)
	assert.Equal(t, domain.SeverityLow, pattern.RiskLevel)
	assert.Equal(t, 0.5, pattern.Confidence)
	assert.Equal(t, domain.ActionNone, pattern.RecommendedAction)
	assert.Empty(t, pattern.Indicators)
}

func TestBuildPattern_CriticalIndicatorWins(t *testing.T) {
	indicators := []types.ThreatIndicator{
		indicator(domain.IndicatorSpamPattern, domain.SeverityCritical),
		indicator(domain.IndicatorHarassmentPattern, domain.SeverityHigh),
	}

	pattern := BuildPattern(uuid.New(), types.SignalWindow{}, indicators)

	assert.Equal(t, domain.PatternSpam, pattern.PatternType)
	assert.Equal(t, domain.SeverityCritical, pattern.RiskLevel)
	assert.Equal(t, 0.9, pattern.Confidence)
	assert.Equal(t, domain.ActionAccountSuspension, pattern.RecommendedAction)
}

func TestBuildPattern_SeverityTieBrokenByTypePriority(t *testing.T) {
	indicators := []types.ThreatIndicator{
		indicator(domain.IndicatorSpamPattern, domain.SeverityHigh),
		indicator(domain.IndicatorLanguageThreat, domain.SeverityHigh),
		indicator(domain.IndicatorBehaviorEscalation, domain.SeverityHigh),
	}

	pattern := BuildPattern(uuid.New(), types.SignalWindow{}, indicators)

	assert.Equal(t, domain.PatternInappropriateContent, pattern.PatternType)
	assert.Equal(t, domain.SeverityHigh, pattern.RiskLevel)
	assert.Equal(t, 0.8, pattern.Confidence)
	assert.Equal(t, domain.ActionTemporaryRestriction, pattern.RecommendedAction)
}

func TestBuildPattern_TwoMediumIndicators(t *testing.T) {
	indicators := []types.ThreatIndicator{
		indicator(domain.IndicatorSpamPattern, domain.SeverityMedium),
		indicator(domain.IndicatorHarassmentPattern, domain.SeverityMedium),
	}

	pattern := BuildPattern(uuid.New(), types.SignalWindow{}, indicators)

	assert.Equal(t, domain.PatternHarassment, pattern.PatternType)
	assert.Equal(t, domain.SeverityMedium, pattern.RiskLevel)
	assert.Equal(t, 0.7, pattern.Confidence)
	assert.Equal(t, domain.ActionRateLimit, pattern.RecommendedAction)
}

// A lone medium spam indicator maps to a warning, the way a user with 11
// messages in an hour and no other signals should land.
func TestBuildPattern_SingleMediumIndicator(t *testing.T) {
	indicators := []types.ThreatIndicator{
		indicator(domain.IndicatorSpamPattern, domain.SeverityMedium),
	}

	pattern := BuildPattern(uuid.New(), types.SignalWindow{}, indicators)

	assert.Equal(t, domain.PatternSpam, pattern.PatternType)
	assert.Equal(t, domain.SeverityMedium, pattern.RiskLevel)
	assert.Equal(t, 0.6, pattern.Confidence)
	assert.Equal(t, domain.ActionWarning, pattern.RecommendedAction)
	assert.Equal(t, []string{"spam_pattern"}, pattern.Indicators)
}

func TestBuildPattern_ViolationHistoryUpgradesLowRisk(t *testing.T) {
	signals := types.SignalWindow{ViolationCount: 4}

	pattern := BuildPattern(uuid.New(), signals, nil)

	assert.Equal(t, domain.SeverityMedium, pattern.RiskLevel)
	assert.InDelta(t, 0.6, pattern.Confidence, 1e-9)
	assert.Equal(t, domain.ActionWarning, pattern.RecommendedAction)
}

func TestBuildPattern_EscalationHistoryUpgradesLowRisk(t *testing.T) {
	signals := types.SignalWindow{EscalationCount: 1}

	pattern := BuildPattern(uuid.New(), signals, nil)

	assert.Equal(t, domain.SeverityHigh, pattern.RiskLevel)
	assert.InDelta(t, 0.7, pattern.Confidence, 1e-9)
	assert.Equal(t, domain.ActionTemporaryRestriction, pattern.RecommendedAction)
}

func TestBuildPattern_ViolationUpgradeShieldsEscalationUpgrade(t *testing.T) {
	signals := types.SignalWindow{ViolationCount: 4, EscalationCount: 2}

	pattern := BuildPattern(uuid.New(), signals, nil)

	// The violation upgrade applies first; the escalation check only
	// upgrades a still-low risk level.
	assert.Equal(t, domain.SeverityMedium, pattern.RiskLevel)
}

func TestBuildPattern_HistoryDoesNotDowngradeExistingRisk(t *testing.T) {
	indicators := []types.ThreatIndicator{
		indicator(domain.IndicatorHarassmentPattern, domain.SeverityHigh),
	}
	signals := types.SignalWindow{ViolationCount: 10, EscalationCount: 3}

	pattern := BuildPattern(uuid.New(), signals, indicators)

	assert.Equal(t, domain.SeverityHigh, pattern.RiskLevel)
	assert.Equal(t, 0.8, pattern.Confidence)
}

func TestBuildPattern_Deterministic(t *testing.T) {
	userID := uuid.New()
	signals := types.SignalWindow{
		MessageCount:    30,
		ViolationCount:  2,
		EscalationCount: 1,
	}
	indicators := []types.ThreatIndicator{
		indicator(domain.IndicatorSpamPattern, domain.SeverityMedium),
		indicator(domain.IndicatorLanguageThreat, domain.SeverityHigh),
	}

	first := BuildPattern(userID, signals, indicators)
	for i := 0; i < 20; i++ {
		next := BuildPattern(userID, signals, indicators)
		require.Equal(t, first.PatternType, next.PatternType)
		require.Equal(t, first.RiskLevel, next.RiskLevel)
		require.Equal(t, first.Confidence, next.Confidence)
		require.Equal(t, first.RecommendedAction, next.RecommendedAction)
		require.Equal(t, first.Indicators, next.Indicators)
	}
}
