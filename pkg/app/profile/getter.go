package profile

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/personacore/sentinel/pkg/cache"
	domainProfile "github.com/personacore/sentinel/pkg/domain/profile"
)

// Getter serves safety-profile reads through the redis cache. A missing
// profile is created lazily with the default trusting state.
type Getter interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*domainProfile.SafetyProfile, error)
}

type getter struct {
	logger *logrus.Logger
	repo   domainProfile.Repository
	cache  *cache.Cache
}

func NewGetter(logger *logrus.Logger, repo domainProfile.Repository, cache *cache.Cache) Getter {
	return &getter{
		logger: logger,
		repo:   repo,
		cache:  cache,
	}
}

func (g *getter) GetProfile(ctx context.Context, userID uuid.UUID) (*domainProfile.SafetyProfile, error) {
	if g.cache != nil {
		if cached, err := g.cache.GetProfile(ctx, userID.String()); err == nil {
			return cached, nil
		}
	}

	p, err := g.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if g.cache != nil {
		if err := g.cache.SaveProfile(ctx, p); err != nil {
			g.logger.WithError(err).WithField("user_id", userID).Warn("failed to cache safety profile")
		}
	}
	return p, nil
}
