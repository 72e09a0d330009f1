package profile

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/personacore/sentinel/pkg/cache"
	"github.com/personacore/sentinel/pkg/domain"
	domainProfile "github.com/personacore/sentinel/pkg/domain/profile"
)

// Updater is the single writer of safety profiles. Each method applies one
// pure transition through the repository's compare-and-swap and invalidates
// the cached copy.
type Updater interface {
	ApplyModeration(ctx context.Context, userID uuid.UUID, status domain.ModerationStatus) (*domainProfile.SafetyProfile, error)
	ApplyBehaviorRisk(ctx context.Context, userID uuid.UUID, riskLevel domain.Severity, confidence float64) (*domainProfile.SafetyProfile, error)
	ApplyManualRating(ctx context.Context, userID uuid.UUID, safetyRating int) (*domainProfile.SafetyProfile, error)
}

type updater struct {
	logger *logrus.Logger
	repo   domainProfile.Repository
	cache  *cache.Cache
}

func NewUpdater(logger *logrus.Logger, repo domainProfile.Repository, cache *cache.Cache) Updater {
	return &updater{
		logger: logger,
		repo:   repo,
		cache:  cache,
	}
}

func (u *updater) ApplyModeration(ctx context.Context, userID uuid.UUID, status domain.ModerationStatus) (*domainProfile.SafetyProfile, error) {
	return u.apply(ctx, userID, domainProfile.ModerationOutcome{Status: status})
}

func (u *updater) ApplyBehaviorRisk(ctx context.Context, userID uuid.UUID, riskLevel domain.Severity, confidence float64) (*domainProfile.SafetyProfile, error) {
	return u.apply(ctx, userID, domainProfile.BehaviorRisk{RiskLevel: riskLevel, Confidence: confidence})
}

func (u *updater) ApplyManualRating(ctx context.Context, userID uuid.UUID, safetyRating int) (*domainProfile.SafetyProfile, error) {
	return u.apply(ctx, userID, domainProfile.ManualRating{SafetyRating: safetyRating})
}

func (u *updater) apply(ctx context.Context, userID uuid.UUID, ev domainProfile.Event) (*domainProfile.SafetyProfile, error) {
	updated, err := u.repo.UpdateAtomic(ctx, userID, ev)
	if err != nil {
		return nil, err
	}

	if u.cache != nil {
		if err := u.cache.InvalidateProfile(ctx, userID.String()); err != nil {
			u.logger.WithError(err).WithField("user_id", userID).Warn("failed to invalidate cached profile")
		}
	}
	return updated, nil
}
