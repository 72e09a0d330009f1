package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/personacore/sentinel/pkg/domain"
	"github.com/personacore/sentinel/pkg/domain/activity"
	domainIncident "github.com/personacore/sentinel/pkg/domain/incident"
	domainModeration "github.com/personacore/sentinel/pkg/domain/moderation"
	moderationMocks "github.com/personacore/sentinel/pkg/domain/moderation/mocks"
	domainProfile "github.com/personacore/sentinel/pkg/domain/profile"
	"github.com/personacore/sentinel/pkg/infra/oracle"
	oracleMocks "github.com/personacore/sentinel/pkg/infra/oracle/mocks"
	"github.com/personacore/sentinel/pkg/types"
)

type mockProfileGetter struct {
	mock.Mock
}

func (m *mockProfileGetter) GetProfile(ctx context.Context, userID uuid.UUID) (*domainProfile.SafetyProfile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*domainProfile.SafetyProfile)
	return p, args.Error(1)
}

type mockProfileUpdater struct {
	mock.Mock
}

func (m *mockProfileUpdater) ApplyModeration(ctx context.Context, userID uuid.UUID, status domain.ModerationStatus) (*domainProfile.SafetyProfile, error) {
	args := m.Called(ctx, userID, status)
	p, _ := args.Get(0).(*domainProfile.SafetyProfile)
	return p, args.Error(1)
}

func (m *mockProfileUpdater) ApplyBehaviorRisk(ctx context.Context, userID uuid.UUID, riskLevel domain.Severity, confidence float64) (*domainProfile.SafetyProfile, error) {
	args := m.Called(ctx, userID, riskLevel, confidence)
	p, _ := args.Get(0).(*domainProfile.SafetyProfile)
	return p, args.Error(1)
}

func (m *mockProfileUpdater) ApplyManualRating(ctx context.Context, userID uuid.UUID, safetyRating int) (*domainProfile.SafetyProfile, error) {
	args := m.Called(ctx, userID, safetyRating)
	p, _ := args.Get(0).(*domainProfile.SafetyProfile)
	return p, args.Error(1)
}

type recorderStub struct {
	moderationIncident *domainIncident.SafetyIncident
}

func newRecorderStub() *recorderStub {
	return &recorderStub{}
}

func (s *recorderStub) RecordBehaviorPattern(_ context.Context, _ *types.BehaviorPattern) *domainIncident.SafetyIncident {
	return nil
}

func (s *recorderStub) RecordModeration(_ context.Context, _ *domainModeration.ModerationRecord) *domainIncident.SafetyIncident {
	return s.moderationIncident
}

func (s *recorderStub) RecordRatingReport(_ context.Context, _ *activity.InteractionRating) *domainIncident.SafetyIncident {
	return nil
}

func (s *recorderStub) RecordBlock(_ context.Context, _ *activity.UserBlock) *domainIncident.SafetyIncident {
	return nil
}

func TestDeriveStatus_ExactBoundaries(t *testing.T) {
	cases := []struct {
		score          float64
		expectStatus   domain.ModerationStatus
		expectSeverity domain.Severity
	}{
		{0.8, domain.ModerationStatusBlocked, domain.SeverityCritical},
		{0.79999, domain.ModerationStatusFlagged, domain.SeverityHigh},
		{0.6, domain.ModerationStatusFlagged, domain.SeverityHigh},
		{0.3, domain.ModerationStatusUnderReview, domain.SeverityMedium},
		{0.2, domain.ModerationStatusFlagged, domain.SeverityLow},
		{0.1, domain.ModerationStatusApproved, domain.SeverityLow},
		{0.0999, domain.ModerationStatusApproved, domain.SeverityLow},
		{0.0, domain.ModerationStatusApproved, domain.SeverityLow},
	}
	for _, tc := range cases {
		status, severity := deriveStatus(tc.score)
		assert.Equal(t, tc.expectStatus, status, "score %v", tc.score)
		assert.Equal(t, tc.expectSeverity, severity, "score %v", tc.score)
	}
}

func TestEscalateForProfile(t *testing.T) {
	t.Run("nil profile leaves outcome untouched", func(t *testing.T) {
		status, severity := escalateForProfile(domain.ModerationStatusApproved, domain.SeverityLow, nil)
		assert.Equal(t, domain.ModerationStatusApproved, status)
		assert.Equal(t, domain.SeverityLow, severity)
	})

	t.Run("restricted profile forces at least under_review", func(t *testing.T) {
		p := &domainProfile.SafetyProfile{IsRestricted: true, OverallSafetyScore: 0.5}
		status, severity := escalateForProfile(domain.ModerationStatusApproved, domain.SeverityLow, p)
		assert.Equal(t, domain.ModerationStatusUnderReview, status)
		assert.Equal(t, domain.SeverityMedium, severity)
	})

	t.Run("low safety score forces at least flagged high", func(t *testing.T) {
		p := &domainProfile.SafetyProfile{OverallSafetyScore: 0.2}
		status, severity := escalateForProfile(domain.ModerationStatusApproved, domain.SeverityLow, p)
		assert.Equal(t, domain.ModerationStatusFlagged, status)
		assert.Equal(t, domain.SeverityHigh, severity)
	})

	t.Run("repeat violator forces blocked critical", func(t *testing.T) {
		p := &domainProfile.SafetyProfile{OverallSafetyScore: 0.9, ContentViolations: 6}
		status, severity := escalateForProfile(domain.ModerationStatusApproved, domain.SeverityLow, p)
		assert.Equal(t, domain.ModerationStatusBlocked, status)
		assert.Equal(t, domain.SeverityCritical, severity)
	})

	t.Run("already stricter outcome is kept", func(t *testing.T) {
		p := &domainProfile.SafetyProfile{IsRestricted: true, OverallSafetyScore: 0.5}
		status, severity := escalateForProfile(domain.ModerationStatusBlocked, domain.SeverityCritical, p)
		assert.Equal(t, domain.ModerationStatusBlocked, status)
		assert.Equal(t, domain.SeverityCritical, severity)
	})
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func setupModerator(
	classifier oracle.Classifier,
	compliance oracle.ComplianceAnalyzer,
	records domainModeration.Repository,
	profiles *mockProfileGetter,
	updater *mockProfileUpdater,
	recorder *recorderStub,
) Moderator {
	return NewModerator(testLogger(), classifier, compliance, records, profiles, updater, recorder)
}

func cleanReport() *oracle.ComplianceReport {
	return &oracle.ComplianceReport{
		AgeRating:       domain.AgeRatingAllAges,
		ComplianceFlags: []string{},
		Language:        "en",
	}
}

func TestModerateContent_EmptyContentRejected(t *testing.T) {
	moderator := setupModerator(
		oracle.NewFallbackClassifier(), oracle.NewKeywordComplianceAnalyzer(),
		new(moderationMocks.Repository), new(mockProfileGetter), new(mockProfileUpdater), newRecorderStub(),
	)

	_, err := moderator.ModerateContent(context.Background(), Request{ContentID: "c-1", Content: "   "})

	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}

func TestModerateContent_MissingContentIDRejected(t *testing.T) {
	moderator := setupModerator(
		oracle.NewFallbackClassifier(), oracle.NewKeywordComplianceAnalyzer(),
		new(moderationMocks.Repository), new(mockProfileGetter), new(mockProfileUpdater), newRecorderStub(),
	)

	_, err := moderator.ModerateContent(context.Background(), Request{Content: "hello"})

	assert.ErrorIs(t, err, domain.ErrMissingContentID)
}

// With no real oracle wired, the neutral 0.1 default derives a plain
// approved outcome.
func TestModerateContent_FallbackOracleApproves(t *testing.T) {
	records := new(moderationMocks.Repository)
	records.On("Save", mock.Anything, mock.AnythingOfType("*moderation.ModerationRecord")).Return(nil)

	moderator := setupModerator(
		oracle.NewFallbackClassifier(), oracle.NewKeywordComplianceAnalyzer(),
		records, new(mockProfileGetter), new(mockProfileUpdater), newRecorderStub(),
	)

	result, err := moderator.ModerateContent(context.Background(), Request{
		ContentID: "c-1",
		Content:   "a perfectly ordinary sentence",
	})

	require.NoError(t, err)
	assert.Equal(t, 0.1, result.Score)
	assert.Empty(t, result.FlaggedCategories)
	assert.Equal(t, domain.ModerationStatusApproved, result.Status)
	assert.Equal(t, domain.SeverityLow, result.Severity)
	assert.False(t, result.ActionRequired)
	records.AssertExpectations(t)
}

func TestModerateContent_ClassifierErrorDegradesToNeutral(t *testing.T) {
	classifier := new(oracleMocks.MockClassifier)
	classifier.On("Classify", mock.Anything, mock.Anything).Return(nil, errors.New("oracle down"))
	compliance := new(oracleMocks.MockComplianceAnalyzer)
	compliance.On("AnalyzeCompliance", mock.Anything, mock.Anything, mock.Anything).Return(cleanReport(), nil)

	records := new(moderationMocks.Repository)
	records.On("Save", mock.Anything, mock.AnythingOfType("*moderation.ModerationRecord")).Return(nil)

	moderator := setupModerator(
		classifier, compliance, records, new(mockProfileGetter), new(mockProfileUpdater), newRecorderStub(),
	)

	result, err := moderator.ModerateContent(context.Background(), Request{ContentID: "c-1", Content: "hello"})

	require.NoError(t, err)
	assert.Equal(t, 0.1, result.Score)
	assert.Equal(t, domain.ModerationStatusApproved, result.Status)
}

// High score plus a banned category: the override and the threshold agree
// on blocked/critical, and the incident attaches to the record.
func TestModerateContent_BlockedContentCreatesIncident(t *testing.T) {
	userID := uuid.New()
	incidentID := uuid.New()

	classifier := new(oracleMocks.MockClassifier)
	classifier.On("Classify", mock.Anything, mock.Anything).
		Return(&oracle.Classification{Score: 0.85, Categories: []string{"sexual"}}, nil)
	compliance := new(oracleMocks.MockComplianceAnalyzer)
	compliance.On("AnalyzeCompliance", mock.Anything, mock.Anything, mock.Anything).Return(cleanReport(), nil)

	records := new(moderationMocks.Repository)
	records.On("Save", mock.Anything, mock.AnythingOfType("*moderation.ModerationRecord")).Return(nil)
	records.On("AttachIncident", mock.Anything, mock.AnythingOfType("uuid.UUID"), incidentID).Return(nil)

	profiles := new(mockProfileGetter)
	profiles.On("GetProfile", mock.Anything, userID).Return(domainProfile.NewSafetyProfile(userID), nil)

	updater := new(mockProfileUpdater)
	updater.On("ApplyModeration", mock.Anything, userID, domain.ModerationStatusBlocked).
		Return(domainProfile.NewSafetyProfile(userID), nil)

	recorder := newRecorderStub()
	recorder.moderationIncident = &domainIncident.SafetyIncident{ID: incidentID}

	moderator := setupModerator(classifier, compliance, records, profiles, updater, recorder)

	result, err := moderator.ModerateContent(context.Background(), Request{
		ContentID: "c-1",
		UserID:    &userID,
		Content:   "bad content",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ModerationStatusBlocked, result.Status)
	assert.Equal(t, domain.SeverityCritical, result.Severity)
	assert.True(t, result.ActionRequired)
	records.AssertExpectations(t)
	updater.AssertExpectations(t)
}

// A banned category forces blocked even when the raw score is negligible.
func TestModerateContent_CategoryOverrideBeatsScore(t *testing.T) {
	classifier := new(oracleMocks.MockClassifier)
	classifier.On("Classify", mock.Anything, mock.Anything).
		Return(&oracle.Classification{Score: 0.05, Categories: []string{"violence"}}, nil)
	compliance := new(oracleMocks.MockComplianceAnalyzer)
	compliance.On("AnalyzeCompliance", mock.Anything, mock.Anything, mock.Anything).Return(cleanReport(), nil)

	records := new(moderationMocks.Repository)
	records.On("Save", mock.Anything, mock.AnythingOfType("*moderation.ModerationRecord")).Return(nil)
	records.On("AttachIncident", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("uuid.UUID")).Return(nil).Maybe()

	moderator := setupModerator(
		classifier, compliance, records, new(mockProfileGetter), new(mockProfileUpdater), newRecorderStub(),
	)

	result, err := moderator.ModerateContent(context.Background(), Request{ContentID: "c-1", Content: "x"})

	require.NoError(t, err)
	assert.Equal(t, domain.ModerationStatusBlocked, result.Status)
	assert.Equal(t, domain.SeverityCritical, result.Severity)
}

// A repeat violator's submissions are blocked regardless of the raw score.
func TestModerateContent_RepeatViolatorForcedBlocked(t *testing.T) {
	userID := uuid.New()

	profile := domainProfile.NewSafetyProfile(userID)
	profile.ContentViolations = 6

	records := new(moderationMocks.Repository)
	records.On("Save", mock.Anything, mock.AnythingOfType("*moderation.ModerationRecord")).Return(nil)
	records.On("AttachIncident", mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("uuid.UUID")).Return(nil).Maybe()

	profiles := new(mockProfileGetter)
	profiles.On("GetProfile", mock.Anything, userID).Return(profile, nil)

	updater := new(mockProfileUpdater)
	updater.On("ApplyModeration", mock.Anything, userID, domain.ModerationStatusBlocked).Return(profile, nil)

	moderator := setupModerator(
		oracle.NewFallbackClassifier(), oracle.NewKeywordComplianceAnalyzer(),
		records, profiles, updater, newRecorderStub(),
	)

	result, err := moderator.ModerateContent(context.Background(), Request{
		ContentID: "c-1",
		UserID:    &userID,
		Content:   "anything at all",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ModerationStatusBlocked, result.Status)
	assert.Equal(t, domain.SeverityCritical, result.Severity)
	updater.AssertExpectations(t)
}

func TestModerateContent_AdultsOnlyRatingFloorsSeverity(t *testing.T) {
	classifier := new(oracleMocks.MockClassifier)
	classifier.On("Classify", mock.Anything, mock.Anything).
		Return(&oracle.Classification{Score: 0.05, Categories: []string{}}, nil)
	compliance := new(oracleMocks.MockComplianceAnalyzer)
	compliance.On("AnalyzeCompliance", mock.Anything, mock.Anything, mock.Anything).
		Return(&oracle.ComplianceReport{AgeRating: domain.AgeRatingAdultsOnly, ComplianceFlags: []string{"adult_content"}}, nil)

	records := new(moderationMocks.Repository)
	records.On("Save", mock.Anything, mock.AnythingOfType("*moderation.ModerationRecord")).Return(nil)

	moderator := setupModerator(
		classifier, compliance, records, new(mockProfileGetter), new(mockProfileUpdater), newRecorderStub(),
	)

	result, err := moderator.ModerateContent(context.Background(), Request{ContentID: "c-1", Content: "x"})

	require.NoError(t, err)
	assert.Equal(t, domain.ModerationStatusApproved, result.Status)
	assert.Equal(t, domain.SeverityMedium, result.Severity)
	assert.Equal(t, domain.AgeRatingAdultsOnly, result.AgeRating)
}

// The record write is the primary write: its failure reaches the caller.
func TestModerateContent_SaveFailureSurfaced(t *testing.T) {
	records := new(moderationMocks.Repository)
	records.On("Save", mock.Anything, mock.AnythingOfType("*moderation.ModerationRecord")).
		Return(errors.New("database down"))

	moderator := setupModerator(
		oracle.NewFallbackClassifier(), oracle.NewKeywordComplianceAnalyzer(),
		records, new(mockProfileGetter), new(mockProfileUpdater), newRecorderStub(),
	)

	_, err := moderator.ModerateContent(context.Background(), Request{ContentID: "c-1", Content: "hello"})

	assert.Error(t, err)
}

// Profile-update failure after a persisted record is swallowed.
func TestModerateContent_ProfileUpdateFailureSwallowed(t *testing.T) {
	userID := uuid.New()

	records := new(moderationMocks.Repository)
	records.On("Save", mock.Anything, mock.AnythingOfType("*moderation.ModerationRecord")).Return(nil)

	profiles := new(mockProfileGetter)
	profiles.On("GetProfile", mock.Anything, userID).Return(domainProfile.NewSafetyProfile(userID), nil)

	updater := new(mockProfileUpdater)
	updater.On("ApplyModeration", mock.Anything, userID, domain.ModerationStatusApproved).
		Return(nil, errors.New("conflict"))

	moderator := setupModerator(
		oracle.NewFallbackClassifier(), oracle.NewKeywordComplianceAnalyzer(),
		records, profiles, updater, newRecorderStub(),
	)

	result, err := moderator.ModerateContent(context.Background(), Request{
		ContentID: "c-1",
		UserID:    &userID,
		Content:   "hello",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ModerationStatusApproved, result.Status)
	updater.AssertExpectations(t)
}
