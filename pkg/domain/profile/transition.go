package profile

import (
	"fmt"

	"github.com/personacore/sentinel/pkg/domain"
)

// Event is one profile-affecting outcome from either pipeline or from a
// manual signal. Transitions are pure: the repository applies them through
// an atomic compare-and-swap so concurrent analyses for the same user
// cannot lose updates.
type Event interface {
	isProfileEvent()
}

// ModerationOutcome is emitted once per moderated content item.
type ModerationOutcome struct {
	Status domain.ModerationStatus
}

// BehaviorRisk is emitted when the behavior pipeline produced a pattern
// with riskLevel above low.
type BehaviorRisk struct {
	RiskLevel  domain.Severity
	Confidence float64
}

// ManualRating is a creator-submitted safety rating between 1 and 5.
type ManualRating struct {
	SafetyRating int
}

func (ModerationOutcome) isProfileEvent() {}
func (BehaviorRisk) isProfileEvent()      {}
func (ManualRating) isProfileEvent()      {}

// Apply returns the profile after one event. The input is taken by value
// so callers keep a pristine copy for CAS retries.
func Apply(p SafetyProfile, ev Event) SafetyProfile {
	switch e := ev.(type) {
	case ModerationOutcome:
		applyModeration(&p, e)
	case BehaviorRisk:
		applyBehaviorRisk(&p, e)
	case ManualRating:
		applyManualRating(&p, e)
	}
	normalize(&p)
	return p
}

func applyModeration(p *SafetyProfile, e ModerationOutcome) {
	switch e.Status {
	case domain.ModerationStatusFlagged, domain.ModerationStatusBlocked:
		p.ContentViolations++
		p.FlaggedInteractions++
		p.TotalInteractions++

		violationRate := float64(p.ContentViolations) / float64(p.TotalInteractions)
		p.OverallSafetyScore = domain.ClampScore(1 - violationRate*2)

		if p.OverallSafetyScore < 0.3 {
			restrict(p, "repeated content violations")
		} else if p.OverallSafetyScore < 0.6 {
			demote(p, domain.TrustLevelFlagged)
		}
	case domain.ModerationStatusApproved:
		p.TotalInteractions++
		// Slow trust recovery.
		p.OverallSafetyScore = domain.ClampScore(p.OverallSafetyScore + 0.001)

		if p.OverallSafetyScore > 0.8 && p.TotalInteractions > 50 {
			promoteToTrusted(p)
		}
	}
}

func applyBehaviorRisk(p *SafetyProfile, e BehaviorRisk) {
	if e.RiskLevel == domain.SeverityLow {
		return
	}

	// Detected behavioral risk erodes the score, same direction as the
	// moderation branch.
	p.OverallSafetyScore = domain.ClampScore(p.OverallSafetyScore - e.Confidence*0.1)

	switch e.RiskLevel {
	case domain.SeverityCritical:
		restrict(p, fmt.Sprintf("critical behavior pattern (confidence %.2f)", e.Confidence))
	case domain.SeverityHigh:
		demote(p, domain.TrustLevelFlagged)
	}
}

func applyManualRating(p *SafetyProfile, e ManualRating) {
	switch {
	case e.SafetyRating <= 2:
		p.OverallSafetyScore = domain.ClampScore(p.OverallSafetyScore - 0.1)
	case e.SafetyRating >= 4:
		p.OverallSafetyScore = domain.ClampScore(p.OverallSafetyScore + 0.05)
	}
}

func restrict(p *SafetyProfile, reason string) {
	p.TrustLevel = domain.TrustLevelRestricted
	p.IsRestricted = true
	if p.RestrictionReason == "" {
		p.RestrictionReason = reason
	}
}

// demote lowers standing to the given level unless the profile is already
// restricted. Restriction is sticky: only an external administrative
// action lifts it.
func demote(p *SafetyProfile, level domain.TrustLevel) {
	if p.IsRestricted {
		return
	}
	p.TrustLevel = level
}

func promoteToTrusted(p *SafetyProfile) {
	if p.IsRestricted || p.TrustLevel == domain.TrustLevelVerified {
		return
	}
	p.TrustLevel = domain.TrustLevelTrusted
}

// normalize enforces the profile invariants after every transition:
// score in [0,1] and isRestricted <=> trustLevel == restricted.
func normalize(p *SafetyProfile) {
	p.OverallSafetyScore = domain.ClampScore(p.OverallSafetyScore)
	if p.IsRestricted {
		p.TrustLevel = domain.TrustLevelRestricted
	}
	if p.TrustLevel == domain.TrustLevelRestricted {
		p.IsRestricted = true
	}
}
