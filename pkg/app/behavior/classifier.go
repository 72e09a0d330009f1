package behavior

import (
	"time"

	"github.com/google/uuid"

	"github.com/personacore/sentinel/pkg/domain"
	"github.com/personacore/sentinel/pkg/types"
)

// typePriority breaks severity ties when selecting the pattern type.
var typePriority = map[domain.IndicatorType]int{
	domain.IndicatorLanguageThreat:     4,
	domain.IndicatorHarassmentPattern:  3,
	domain.IndicatorBehaviorEscalation: 2,
	domain.IndicatorSpamPattern:        1,
}

var indicatorPattern = map[domain.IndicatorType]domain.PatternType{
	domain.IndicatorSpamPattern:        domain.PatternSpam,
	domain.IndicatorHarassmentPattern:  domain.PatternHarassment,
	domain.IndicatorBehaviorEscalation: domain.PatternEscalation,
	domain.IndicatorLanguageThreat:     domain.PatternInappropriateContent,
}

// BuildPattern combines fired indicators and the signal window into one
// BehaviorPattern. It is deterministic: identical inputs always produce
// the identical pattern (modulo the timestamp).
func BuildPattern(userID uuid.UUID, signals types.SignalWindow, indicators []types.ThreatIndicator) types.BehaviorPattern {
	pattern := types.BehaviorPattern{
		UserID:            userID,
		PatternType:       domain.PatternNormal,
		Confidence:        0.5,
		RiskLevel:         domain.SeverityLow,
		RecommendedAction: domain.ActionNone,
		Indicators:        indicatorNames(indicators),
		AnalyzedAt:        time.Now(),
	}

	dominant := selectDominant(indicators)
	mediumCount := 0
	for _, ind := range indicators {
		if ind.Severity == domain.SeverityMedium {
			mediumCount++
		}
	}

	switch {
	case dominant != nil && dominant.Severity == domain.SeverityCritical:
		pattern.PatternType = indicatorPattern[dominant.Type]
		pattern.RiskLevel = domain.SeverityCritical
		pattern.Confidence = 0.9
		pattern.RecommendedAction = domain.ActionAccountSuspension
	case dominant != nil && dominant.Severity == domain.SeverityHigh:
		pattern.PatternType = indicatorPattern[dominant.Type]
		pattern.RiskLevel = domain.SeverityHigh
		pattern.Confidence = 0.8
		pattern.RecommendedAction = domain.ActionTemporaryRestriction
	case mediumCount >= 2:
		pattern.PatternType = indicatorPattern[dominant.Type]
		pattern.RiskLevel = domain.SeverityMedium
		pattern.Confidence = 0.7
		pattern.RecommendedAction = domain.ActionRateLimit
	case mediumCount == 1:
		pattern.PatternType = indicatorPattern[dominant.Type]
		pattern.RiskLevel = domain.SeverityMedium
		pattern.Confidence = 0.6
		pattern.RecommendedAction = domain.ActionWarning
	}

	adjustForHistory(&pattern, signals)

	return pattern
}

// selectDominant picks the highest-severity indicator, ties broken by the
// fixed type priority.
func selectDominant(indicators []types.ThreatIndicator) *types.ThreatIndicator {
	var dominant *types.ThreatIndicator
	for i := range indicators {
		ind := &indicators[i]
		if dominant == nil ||
			ind.Severity.Rank() > dominant.Severity.Rank() ||
			(ind.Severity.Rank() == dominant.Severity.Rank() && typePriority[ind.Type] > typePriority[dominant.Type]) {
			dominant = ind
		}
	}
	return dominant
}

// adjustForHistory escalates otherwise-quiet windows for users with a
// violation or escalation record. The checks apply in order; only a
// still-low risk level is upgraded.
func adjustForHistory(pattern *types.BehaviorPattern, signals types.SignalWindow) {
	if signals.ViolationCount > 3 && pattern.RiskLevel == domain.SeverityLow {
		pattern.RiskLevel = domain.SeverityMedium
		pattern.Confidence = domain.ClampScore(pattern.Confidence + 0.1)
		pattern.RecommendedAction = domain.ActionWarning
	}
	if signals.EscalationCount > 0 && pattern.RiskLevel == domain.SeverityLow {
		pattern.RiskLevel = domain.SeverityHigh
		pattern.Confidence = domain.ClampScore(pattern.Confidence + 0.2)
		pattern.RecommendedAction = domain.ActionTemporaryRestriction
	}
}

func indicatorNames(indicators []types.ThreatIndicator) []string {
	names := make([]string, 0, len(indicators))
	for _, ind := range indicators {
		names = append(names, string(ind.Type))
	}
	return names
}
