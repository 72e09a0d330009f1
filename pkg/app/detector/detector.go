package detector

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/personacore/sentinel/pkg/domain/activity"
	"github.com/personacore/sentinel/pkg/types"
)

// Input is one analysis call's evidence base. Detectors that need data the
// collector does not provide (ratings, incidents, moderation history) issue
// their own bounded reads.
type Input struct {
	UserID   uuid.UUID
	Window   time.Duration
	Signals  types.SignalWindow
	Messages []activity.Message
}

// Detector inspects one threat category. A nil indicator with nil error
// means the detector did not fire. Adding a detector means adding an
// implementation to the slice passed to NewRunner; nothing else changes.
type Detector interface {
	Name() string
	Detect(ctx context.Context, in Input) (*types.ThreatIndicator, error)
}

// Runner fans the detector set out concurrently and collects the fired
// indicators. A failing detector is logged and skipped; it never blocks
// the others or the classification.
type Runner interface {
	RunAll(ctx context.Context, in Input) []types.ThreatIndicator
}

type runner struct {
	logger    *logrus.Logger
	detectors []Detector
}

func NewRunner(logger *logrus.Logger, detectors ...Detector) Runner {
	return &runner{
		logger:    logger,
		detectors: detectors,
	}
}

func (r *runner) RunAll(ctx context.Context, in Input) []types.ThreatIndicator {
	var mu sync.Mutex
	var fired []types.ThreatIndicator

	g, gctx := errgroup.WithContext(ctx)
	for _, d := range r.detectors {
		d := d
		g.Go(func() error {
			indicator, err := d.Detect(gctx, in)
			if err != nil {
				r.logger.WithError(err).WithFields(logrus.Fields{
					"detector": d.Name(),
					"user_id":  in.UserID,
				}).Warn("detector failed, skipping")
				return nil
			}
			if indicator != nil {
				mu.Lock()
				fired = append(fired, *indicator)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return fired
}
