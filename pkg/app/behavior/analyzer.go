package behavior

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/personacore/sentinel/pkg/app/detector"
	appIncident "github.com/personacore/sentinel/pkg/app/incident"
	appProfile "github.com/personacore/sentinel/pkg/app/profile"
	"github.com/personacore/sentinel/pkg/app/signals"
	"github.com/personacore/sentinel/pkg/common"
	"github.com/personacore/sentinel/pkg/domain"
	"github.com/personacore/sentinel/pkg/infra/prometheus"
	"github.com/personacore/sentinel/pkg/types"
)

// Analyzer runs the behavior pipeline for one user. Analyze is total: every
// call produces a pattern, degrading to a conservative normal/low result when
// the pipeline itself breaks.
type Analyzer interface {
	Analyze(ctx context.Context, userID uuid.UUID, window time.Duration) types.BehaviorPattern
}

type analyzer struct {
	logger    *logrus.Logger
	collector signals.Collector
	runner    detector.Runner
	recorder  appIncident.Recorder
	updater   appProfile.Updater
}

func NewAnalyzer(
	logger *logrus.Logger,
	collector signals.Collector,
	runner detector.Runner,
	recorder appIncident.Recorder,
	updater appProfile.Updater,
) Analyzer {
	return &analyzer{
		logger:    logger,
		collector: collector,
		runner:    runner,
		recorder:  recorder,
		updater:   updater,
	}
}

func (a *analyzer) Analyze(ctx context.Context, userID uuid.UUID, window time.Duration) (pattern types.BehaviorPattern) {
	start := time.Now()
	defer func() {
		prometheus.AnalysisLatency.WithLabelValues("behavior_analysis").
			Observe(float64(time.Since(start).Milliseconds()))
	}()

	defer func() {
		if rec := recover(); rec != nil {
			a.logger.WithFields(logrus.Fields{
				"user_id": userID,
				"panic":   rec,
			}).Error("behavior analysis failed, returning fallback pattern")
			pattern = fallbackPattern(userID)
			prometheus.BehaviorAnalysisTotal.WithLabelValues(string(pattern.RiskLevel)).Inc()
		}
	}()

	if window <= 0 {
		window = common.DefaultLookback
	}

	sig, messages := a.collector.Collect(ctx, userID, window)
	indicators := a.runner.RunAll(ctx, detector.Input{
		UserID:   userID,
		Window:   window,
		Signals:  sig,
		Messages: messages,
	})

	pattern = BuildPattern(userID, sig, indicators)
	prometheus.BehaviorAnalysisTotal.WithLabelValues(string(pattern.RiskLevel)).Inc()

	// Side effects only fire above baseline risk; the assessment itself is
	// already complete, so their failures are logged and swallowed.
	if pattern.RiskLevel != domain.SeverityLow {
		a.recorder.RecordBehaviorPattern(ctx, &pattern)
		if _, err := a.updater.ApplyBehaviorRisk(ctx, userID, pattern.RiskLevel, pattern.Confidence); err != nil {
			a.logger.WithError(err).WithField("user_id", userID).Error("failed to apply behavior risk to safety profile")
		}
	}

	return pattern
}

func fallbackPattern(userID uuid.UUID) types.BehaviorPattern {
	return types.BehaviorPattern{
		UserID:            userID,
		PatternType:       domain.PatternNormal,
		Confidence:        0,
		Indicators:        []string{"analysis_error"},
		RiskLevel:         domain.SeverityLow,
		RecommendedAction: domain.ActionNone,
		AnalyzedAt:        time.Now(),
	}
}
