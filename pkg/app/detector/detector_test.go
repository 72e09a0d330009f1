package detector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/personacore/sentinel/pkg/domain"
	"github.com/personacore/sentinel/pkg/domain/activity"
	activityMocks "github.com/personacore/sentinel/pkg/domain/activity/mocks"
	"github.com/personacore/sentinel/pkg/domain/incident"
	incidentMocks "github.com/personacore/sentinel/pkg/domain/incident/mocks"
	"github.com/personacore/sentinel/pkg/domain/moderation"
	moderationMocks "github.com/personacore/sentinel/pkg/domain/moderation/mocks"
	"github.com/personacore/sentinel/pkg/types"
)

func recentMessages(n int, content string) []activity.Message {
	messages := make([]activity.Message, 0, n)
	for i := 0; i < n; i++ {
		messages = append(messages, activity.Message{
			ID:        uuid.New(),
			Content:   content,
			CreatedAt: time.Now().Add(-time.Duration(i) * time.Minute),
		})
	}
	return messages
}

func TestSpamDetector(t *testing.T) {
	d := NewSpamDetector()
	ctx := context.Background()

	t.Run("too few messages does not fire", func(t *testing.T) {
		indicator, err := d.Detect(ctx, Input{Messages: recentMessages(4, "same thing")})
		require.NoError(t, err)
		assert.Nil(t, indicator)
	})

	t.Run("varied low-volume traffic does not fire", func(t *testing.T) {
		messages := []activity.Message{
			{Content: "first", CreatedAt: time.Now().Add(-30 * time.Hour)},
			{Content: "second", CreatedAt: time.Now().Add(-28 * time.Hour)},
			{Content: "third", CreatedAt: time.Now().Add(-26 * time.Hour)},
			{Content: "fourth", CreatedAt: time.Now().Add(-24 * time.Hour)},
			{Content: "fifth", CreatedAt: time.Now().Add(-22 * time.Hour)},
		}
		indicator, err := d.Detect(ctx, Input{Messages: messages})
		require.NoError(t, err)
		assert.Nil(t, indicator)
	})

	t.Run("eleven messages inside an hour is medium", func(t *testing.T) {
		messages := make([]activity.Message, 0, 11)
		for i := 0; i < 11; i++ {
			messages = append(messages, activity.Message{
				Content:   "message number " + uuid.NewString(),
				CreatedAt: time.Now().Add(-time.Duration(i) * time.Minute),
			})
		}
		indicator, err := d.Detect(ctx, Input{Messages: messages})
		require.NoError(t, err)
		require.NotNil(t, indicator)
		assert.Equal(t, domain.IndicatorSpamPattern, indicator.Type)
		assert.Equal(t, domain.SeverityMedium, indicator.Severity)
	})

	t.Run("rapid and repetitive together is high", func(t *testing.T) {
		indicator, err := d.Detect(ctx, Input{Messages: recentMessages(12, "buy now")})
		require.NoError(t, err)
		require.NotNil(t, indicator)
		assert.Equal(t, domain.SeverityHigh, indicator.Severity)
	})

	t.Run("link-heavy content fires on its own", func(t *testing.T) {
		messages := make([]activity.Message, 0, 6)
		for i := 0; i < 6; i++ {
			messages = append(messages, activity.Message{
				Content:   "check out https://example.com/" + uuid.NewString(),
				CreatedAt: time.Now().Add(-time.Duration(i+120) * time.Minute),
			})
		}
		indicator, err := d.Detect(ctx, Input{Messages: messages})
		require.NoError(t, err)
		require.NotNil(t, indicator)
		assert.Equal(t, domain.SeverityMedium, indicator.Severity)
	})
}

func TestHarassmentDetector(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	in := Input{UserID: userID, Window: 24 * time.Hour}

	t.Run("no ratings does not fire", func(t *testing.T) {
		repo := new(activityMocks.Repository)
		repo.On("RatingsForUserSince", mock.Anything, userID, mock.AnythingOfType("time.Time")).
			Return([]activity.InteractionRating{}, nil)

		indicator, err := NewHarassmentDetector(repo).Detect(ctx, in)
		require.NoError(t, err)
		assert.Nil(t, indicator)
	})

	t.Run("healthy ratings do not fire", func(t *testing.T) {
		repo := new(activityMocks.Repository)
		repo.On("RatingsForUserSince", mock.Anything, userID, mock.AnythingOfType("time.Time")).
			Return([]activity.InteractionRating{
				{SafetyRating: 5}, {SafetyRating: 4}, {SafetyRating: 4},
			}, nil)

		indicator, err := NewHarassmentDetector(repo).Detect(ctx, in)
		require.NoError(t, err)
		assert.Nil(t, indicator)
	})

	t.Run("single harassment flag is medium", func(t *testing.T) {
		repo := new(activityMocks.Repository)
		repo.On("RatingsForUserSince", mock.Anything, userID, mock.AnythingOfType("time.Time")).
			Return([]activity.InteractionRating{
				{SafetyRating: 4}, {SafetyRating: 2, IsHarassment: true},
			}, nil)

		indicator, err := NewHarassmentDetector(repo).Detect(ctx, in)
		require.NoError(t, err)
		require.NotNil(t, indicator)
		assert.Equal(t, domain.IndicatorHarassmentPattern, indicator.Type)
		assert.Equal(t, domain.SeverityMedium, indicator.Severity)
	})

	t.Run("multiple harassment flags are high", func(t *testing.T) {
		repo := new(activityMocks.Repository)
		repo.On("RatingsForUserSince", mock.Anything, userID, mock.AnythingOfType("time.Time")).
			Return([]activity.InteractionRating{
				{SafetyRating: 1, IsHarassment: true}, {SafetyRating: 2, IsHarassment: true},
			}, nil)

		indicator, err := NewHarassmentDetector(repo).Detect(ctx, in)
		require.NoError(t, err)
		require.NotNil(t, indicator)
		assert.Equal(t, domain.SeverityHigh, indicator.Severity)
	})

	t.Run("consistently low ratings fire without flags", func(t *testing.T) {
		repo := new(activityMocks.Repository)
		repo.On("RatingsForUserSince", mock.Anything, userID, mock.AnythingOfType("time.Time")).
			Return([]activity.InteractionRating{
				{SafetyRating: 2}, {SafetyRating: 1}, {SafetyRating: 3},
			}, nil)

		indicator, err := NewHarassmentDetector(repo).Detect(ctx, in)
		require.NoError(t, err)
		require.NotNil(t, indicator)
		assert.Equal(t, domain.SeverityMedium, indicator.Severity)
	})

	t.Run("repository error is returned", func(t *testing.T) {
		repo := new(activityMocks.Repository)
		repo.On("RatingsForUserSince", mock.Anything, userID, mock.AnythingOfType("time.Time")).
			Return(nil, errors.New("database down"))

		indicator, err := NewHarassmentDetector(repo).Detect(ctx, in)
		assert.Error(t, err)
		assert.Nil(t, indicator)
	})
}

func incidentsWithSeverities(severities ...domain.Severity) []incident.SafetyIncident {
	base := time.Now().Add(-48 * time.Hour)
	incidents := make([]incident.SafetyIncident, 0, len(severities))
	for i, s := range severities {
		incidents = append(incidents, incident.SafetyIncident{
			ID:        uuid.New(),
			Severity:  s,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return incidents
}

func TestEscalationDetector(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	in := Input{UserID: userID, Window: 24 * time.Hour}

	run := func(t *testing.T, incidents []incident.SafetyIncident) *types.ThreatIndicator {
		t.Helper()
		repo := new(incidentMocks.Repository)
		repo.On("ListByUserSince", mock.Anything, userID, mock.AnythingOfType("time.Time")).
			Return(incidents, nil)
		indicator, err := NewEscalationDetector(repo).Detect(ctx, in)
		require.NoError(t, err)
		return indicator
	}

	t.Run("single incident does not fire", func(t *testing.T) {
		assert.Nil(t, run(t, incidentsWithSeverities(domain.SeverityHigh)))
	})

	t.Run("three flat incidents do not fire", func(t *testing.T) {
		assert.Nil(t, run(t, incidentsWithSeverities(
			domain.SeverityMedium, domain.SeverityMedium, domain.SeverityMedium,
		)))
	})

	t.Run("four flat incidents fire on frequency", func(t *testing.T) {
		indicator := run(t, incidentsWithSeverities(
			domain.SeverityMedium, domain.SeverityMedium, domain.SeverityMedium, domain.SeverityMedium,
		))
		require.NotNil(t, indicator)
		assert.Equal(t, domain.IndicatorBehaviorEscalation, indicator.Type)
		assert.Equal(t, domain.SeverityHigh, indicator.Severity)
	})

	t.Run("rising severity fires below the count threshold", func(t *testing.T) {
		indicator := run(t, incidentsWithSeverities(
			domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh,
		))
		require.NotNil(t, indicator)
		assert.Equal(t, domain.SeverityHigh, indicator.Severity)
	})

	t.Run("six incidents escalate to critical", func(t *testing.T) {
		indicator := run(t, incidentsWithSeverities(
			domain.SeverityLow, domain.SeverityLow, domain.SeverityLow,
			domain.SeverityLow, domain.SeverityLow, domain.SeverityLow,
		))
		require.NotNil(t, indicator)
		assert.Equal(t, domain.SeverityCritical, indicator.Severity)
	})
}

func TestThreatLanguageDetector(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	in := Input{UserID: userID, Window: 24 * time.Hour}

	run := func(t *testing.T, records []moderation.ModerationRecord) *types.ThreatIndicator {
		t.Helper()
		repo := new(moderationMocks.Repository)
		repo.On("ListByUserSince", mock.Anything, userID, mock.AnythingOfType("time.Time")).
			Return(records, nil)
		indicator, err := NewThreatLanguageDetector(repo).Detect(ctx, in)
		require.NoError(t, err)
		return indicator
	}

	t.Run("no threat categories does not fire", func(t *testing.T) {
		assert.Nil(t, run(t, []moderation.ModerationRecord{
			{FlaggedCategories: []string{"spam"}, Severity: domain.SeverityLow},
		}))
	})

	t.Run("threat category fires high", func(t *testing.T) {
		indicator := run(t, []moderation.ModerationRecord{
			{FlaggedCategories: []string{"violent_threats"}, Severity: domain.SeverityHigh},
		})
		require.NotNil(t, indicator)
		assert.Equal(t, domain.IndicatorLanguageThreat, indicator.Type)
		assert.Equal(t, domain.SeverityHigh, indicator.Severity)
	})

	t.Run("critical record propagates", func(t *testing.T) {
		indicator := run(t, []moderation.ModerationRecord{
			{FlaggedCategories: []string{"threats"}, Severity: domain.SeverityCritical},
		})
		require.NotNil(t, indicator)
		assert.Equal(t, domain.SeverityCritical, indicator.Severity)
	})
}

type stubDetector struct {
	name      string
	indicator *types.ThreatIndicator
	err       error
}

func (d stubDetector) Name() string { return d.name }

func (d stubDetector) Detect(context.Context, Input) (*types.ThreatIndicator, error) {
	return d.indicator, d.err
}

func TestRunner_FailingDetectorIsSkipped(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	fired := &types.ThreatIndicator{Type: domain.IndicatorSpamPattern, Severity: domain.SeverityMedium}
	r := NewRunner(logger,
		stubDetector{name: "broken", err: errors.New("timeout")},
		stubDetector{name: "quiet"},
		stubDetector{name: "loud", indicator: fired},
	)

	indicators := r.RunAll(context.Background(), Input{UserID: uuid.New()})

	require.Len(t, indicators, 1)
	assert.Equal(t, domain.IndicatorSpamPattern, indicators[0].Type)
}
