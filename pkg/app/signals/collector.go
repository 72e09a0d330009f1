package signals

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/personacore/sentinel/pkg/domain"
	"github.com/personacore/sentinel/pkg/domain/activity"
	"github.com/personacore/sentinel/pkg/domain/incident"
	"github.com/personacore/sentinel/pkg/domain/moderation"
	"github.com/personacore/sentinel/pkg/types"
)

// Collector aggregates a user's recent activity into a SignalWindow. The
// four sub-queries run concurrently and fail independently: a degraded
// signal defaults to its neutral zero-value instead of blocking the
// assessment.
type Collector interface {
	Collect(ctx context.Context, userID uuid.UUID, window time.Duration) (types.SignalWindow, []activity.Message)
}

type collector struct {
	logger         *logrus.Logger
	activityRepo   activity.Repository
	moderationRepo moderation.Repository
	incidentRepo   incident.Repository
}

func NewCollector(
	logger *logrus.Logger,
	activityRepo activity.Repository,
	moderationRepo moderation.Repository,
	incidentRepo incident.Repository,
) Collector {
	return &collector{
		logger:         logger,
		activityRepo:   activityRepo,
		moderationRepo: moderationRepo,
		incidentRepo:   incidentRepo,
	}
}

func (c *collector) Collect(ctx context.Context, userID uuid.UUID, window time.Duration) (types.SignalWindow, []activity.Message) {
	since := time.Now().Add(-window)

	signals := types.SignalWindow{
		UserID:         userID,
		Window:         window,
		SentimentScore: 0.5,
	}
	var messages []activity.Message

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		msgs, err := c.activityRepo.MessagesByUserSince(gctx, userID, since)
		if err != nil {
			c.logger.WithError(err).WithField("user_id", userID).Warn("message signal degraded")
			return nil
		}
		messages = msgs
		signals.MessageCount = len(msgs)
		if window > 0 {
			signals.MessageFrequency = float64(len(msgs)) / window.Hours()
		}
		if len(msgs) > 0 {
			totalLen := 0
			contents := make([]string, 0, len(msgs))
			for _, m := range msgs {
				totalLen += len(m.Content)
				contents = append(contents, m.Content)
			}
			signals.AvgMessageLength = float64(totalLen) / float64(len(msgs))
			signals.SentimentScore = scoreSentiment(contents)
		}
		return nil
	})

	g.Go(func() error {
		ratings, err := c.activityRepo.RatingsForUserSince(gctx, userID, since)
		if err != nil {
			c.logger.WithError(err).WithField("user_id", userID).Warn("rating signal degraded")
			return nil
		}
		signals.RatingCount = len(ratings)
		return nil
	})

	g.Go(func() error {
		violations, err := c.moderationRepo.CountViolationsByUserSince(gctx, userID, since)
		if err != nil {
			c.logger.WithError(err).WithField("user_id", userID).Warn("violation signal degraded")
			return nil
		}
		signals.ViolationCount = int(violations)
		return nil
	})

	g.Go(func() error {
		incidents, err := c.incidentRepo.ListByUserSince(gctx, userID, since)
		if err != nil {
			c.logger.WithError(err).WithField("user_id", userID).Warn("incident signal degraded")
			return nil
		}
		for _, inc := range incidents {
			if inc.DetectionMethod == domain.DetectionUserReport {
				signals.ReportCount++
			}
			if inc.Severity.AtLeast(domain.SeverityHigh) {
				signals.EscalationCount++
			}
		}
		return nil
	})

	// Sub-queries swallow their own errors, so Wait only synchronizes.
	_ = g.Wait()

	return signals, messages
}
