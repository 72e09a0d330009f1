package moderation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	appIncident "github.com/personacore/sentinel/pkg/app/incident"
	appProfile "github.com/personacore/sentinel/pkg/app/profile"
	"github.com/personacore/sentinel/pkg/domain"
	domainModeration "github.com/personacore/sentinel/pkg/domain/moderation"
	domainProfile "github.com/personacore/sentinel/pkg/domain/profile"
	dbtypes "github.com/personacore/sentinel/pkg/infra/database/types"
	"github.com/personacore/sentinel/pkg/infra/oracle"
	"github.com/personacore/sentinel/pkg/infra/prometheus"
	"github.com/personacore/sentinel/pkg/types"
)

// Request is one content item submitted for moderation.
type Request struct {
	ContentType string                 `json:"content_type"`
	ContentID   string                 `json:"content_id"`
	UserID      *uuid.UUID             `json:"user_id,omitempty"`
	PersonaID   *uuid.UUID             `json:"persona_id,omitempty"`
	Content     string                 `json:"content"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

func (r *Request) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return domain.ErrEmptyContent
	}
	if r.ContentID == "" {
		return domain.ErrMissingContentID
	}
	return nil
}

// Moderator runs the content pipeline. Past input validation the operation is
// total: oracle failures degrade to neutral defaults and a processing failure
// persists an under_review fallback record instead of losing the submission.
// Only the primary record write can surface an error, since the caller must
// know whether the record exists.
type Moderator interface {
	ModerateContent(ctx context.Context, req Request) (*types.ModerationResult, error)
	GetModerationRecord(ctx context.Context, contentID string) (*domainModeration.ModerationRecord, error)
}

type moderator struct {
	logger             *logrus.Logger
	classifier         oracle.Classifier
	compliance         oracle.ComplianceAnalyzer
	complianceFallback oracle.ComplianceAnalyzer
	records            domainModeration.Repository
	profiles           appProfile.Getter
	updater            appProfile.Updater
	recorder           appIncident.Recorder
}

func NewModerator(
	logger *logrus.Logger,
	classifier oracle.Classifier,
	compliance oracle.ComplianceAnalyzer,
	records domainModeration.Repository,
	profiles appProfile.Getter,
	updater appProfile.Updater,
	recorder appIncident.Recorder,
) Moderator {
	return &moderator{
		logger:             logger,
		classifier:         classifier,
		compliance:         compliance,
		complianceFallback: oracle.NewKeywordComplianceAnalyzer(),
		records:            records,
		profiles:           profiles,
		updater:            updater,
		recorder:           recorder,
	}
}

// blockedCategories force a blocked/critical outcome regardless of score.
var blockedCategories = map[string]struct{}{
	"sexual":     {},
	"violence":   {},
	"harassment": {},
}

func (m *moderator) ModerateContent(ctx context.Context, req Request) (result *types.ModerationResult, err error) {
	if verr := req.Validate(); verr != nil {
		return nil, verr
	}

	start := time.Now()
	defer func() {
		prometheus.AnalysisLatency.WithLabelValues("content_moderation").
			Observe(float64(time.Since(start).Milliseconds()))
	}()

	defer func() {
		if rec := recover(); rec != nil {
			m.logger.WithFields(logrus.Fields{
				"content_id": req.ContentID,
				"panic":      rec,
			}).Error("content moderation failed, persisting fallback record")
			result = m.persistFallback(ctx, req)
			err = nil
		}
	}()

	classification, report := m.consultOracles(ctx, req)

	status, severity := deriveStatus(classification.Score)

	for _, cat := range classification.Categories {
		if _, banned := blockedCategories[strings.ToLower(cat)]; banned {
			status, severity = domain.ModerationStatusBlocked, domain.SeverityCritical
			break
		}
	}

	var profile *domainProfile.SafetyProfile
	if req.UserID != nil {
		p, perr := m.profiles.GetProfile(ctx, *req.UserID)
		if perr != nil {
			m.logger.WithError(perr).WithField("user_id", *req.UserID).Warn("safety profile unavailable, skipping escalation")
		} else {
			profile = p
		}
	}
	status, severity = escalateForProfile(status, severity, profile)

	if report.AgeRating == domain.AgeRatingAdultsOnly {
		severity = domain.MaxSeverity(severity, domain.SeverityMedium)
	}

	actionRequired := status == domain.ModerationStatusBlocked || severity.AtLeast(domain.SeverityHigh)

	record := &domainModeration.ModerationRecord{
		ContentID:         req.ContentID,
		ContentType:       req.ContentType,
		UserID:            req.UserID,
		PersonaID:         req.PersonaID,
		Content:           req.Content,
		Status:            status,
		Score:             classification.Score,
		FlaggedCategories: dbtypes.StringArray(classification.Categories),
		Severity:          severity,
		AgeRating:         report.AgeRating,
		ComplianceFlags:   dbtypes.StringArray(report.ComplianceFlags),
		Language:          report.Language,
		Summary:           report.Summary,
		ActionRequired:    actionRequired,
		Metadata:          domain.MetadataJSON(req.Metadata),
	}
	if err := m.records.Save(ctx, record); err != nil {
		return nil, err
	}
	prometheus.ModerationTotal.WithLabelValues(string(status)).Inc()

	m.applySideEffects(ctx, record)

	return resultFromRecord(record), nil
}

func (m *moderator) GetModerationRecord(ctx context.Context, contentID string) (*domainModeration.ModerationRecord, error) {
	return m.records.GetByContentID(ctx, contentID)
}

// consultOracles runs the two external calls concurrently; each degrades
// independently to its fallback verdict.
func (m *moderator) consultOracles(ctx context.Context, req Request) (*oracle.Classification, *oracle.ComplianceReport) {
	var (
		classification *oracle.Classification
		report         *oracle.ComplianceReport
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c, err := m.classifier.Classify(gctx, req.Content)
		if err != nil {
			m.logger.WithError(err).WithField("content_id", req.ContentID).Warn("classification oracle degraded")
			prometheus.OracleFailuresTotal.WithLabelValues("classifier").Inc()
			c = oracle.NeutralClassification()
		}
		classification = c
		return nil
	})

	g.Go(func() error {
		r, err := m.compliance.AnalyzeCompliance(gctx, req.Content, req.ContentType)
		if err != nil {
			m.logger.WithError(err).WithField("content_id", req.ContentID).Warn("compliance oracle degraded")
			prometheus.OracleFailuresTotal.WithLabelValues("compliance").Inc()
			r, _ = m.complianceFallback.AnalyzeCompliance(gctx, req.Content, req.ContentType)
		}
		report = r
		return nil
	})

	// Both goroutines swallow their own errors, so Wait only synchronizes.
	_ = g.Wait()

	return classification, report
}

// deriveStatus maps the raw classifier score onto a status/severity pair.
// The 0.1 boundary is exclusive so the neutral fallback score stays approved.
func deriveStatus(score float64) (domain.ModerationStatus, domain.Severity) {
	switch {
	case score >= 0.8:
		return domain.ModerationStatusBlocked, domain.SeverityCritical
	case score >= 0.6:
		return domain.ModerationStatusFlagged, domain.SeverityHigh
	case score >= 0.3:
		return domain.ModerationStatusUnderReview, domain.SeverityMedium
	case score > 0.1:
		return domain.ModerationStatusFlagged, domain.SeverityLow
	default:
		return domain.ModerationStatusApproved, domain.SeverityLow
	}
}

// escalateForProfile tightens the outcome for users with bad standing. The
// checks run in increasing strictness so the harshest applicable rule wins.
func escalateForProfile(status domain.ModerationStatus, severity domain.Severity, p *domainProfile.SafetyProfile) (domain.ModerationStatus, domain.Severity) {
	if p == nil {
		return status, severity
	}
	if p.IsRestricted && !severity.AtLeast(domain.SeverityMedium) {
		status, severity = domain.ModerationStatusUnderReview, domain.SeverityMedium
	}
	if p.OverallSafetyScore < 0.3 && !severity.AtLeast(domain.SeverityHigh) {
		status, severity = domain.ModerationStatusFlagged, domain.SeverityHigh
	}
	if p.ContentViolations > 5 {
		status, severity = domain.ModerationStatusBlocked, domain.SeverityCritical
	}
	return status, severity
}

// applySideEffects records the incident and updates the safety profile.
// Failures here are logged only; the record is already durable.
func (m *moderator) applySideEffects(ctx context.Context, record *domainModeration.ModerationRecord) {
	if record.RequiresIncident() {
		if inc := m.recorder.RecordModeration(ctx, record); inc != nil {
			if err := m.records.AttachIncident(ctx, record.ID, inc.ID); err != nil {
				m.logger.WithError(err).WithField("record_id", record.ID).Error("failed to attach incident to moderation record")
			} else {
				record.IncidentID = &inc.ID
			}
		}
	}

	if record.UserID != nil {
		if _, err := m.updater.ApplyModeration(ctx, *record.UserID, record.Status); err != nil {
			m.logger.WithError(err).WithField("user_id", *record.UserID).Error("failed to apply moderation outcome to safety profile")
		}
	}
}

// persistFallback writes the under_review record used when processing broke
// mid-flight. If even that write fails, the fallback result is still returned
// so the operation stays total.
func (m *moderator) persistFallback(ctx context.Context, req Request) *types.ModerationResult {
	record := &domainModeration.ModerationRecord{
		ContentID:         req.ContentID,
		ContentType:       req.ContentType,
		UserID:            req.UserID,
		PersonaID:         req.PersonaID,
		Content:           req.Content,
		Status:            domain.ModerationStatusUnderReview,
		Score:             0,
		FlaggedCategories: dbtypes.StringArray{},
		Severity:          domain.SeverityMedium,
		AgeRating:         domain.AgeRatingAllAges,
		ComplianceFlags:   dbtypes.StringArray{},
		Summary:           "moderation processing error; queued for manual review",
		ActionRequired:    false,
		Metadata:          domain.MetadataJSON(req.Metadata),
	}
	if err := m.records.Save(ctx, record); err != nil {
		m.logger.WithError(err).WithField("content_id", req.ContentID).Error("failed to persist fallback moderation record")
	} else {
		prometheus.ModerationTotal.WithLabelValues(string(record.Status)).Inc()
	}
	return resultFromRecord(record)
}

func resultFromRecord(record *domainModeration.ModerationRecord) *types.ModerationResult {
	return &types.ModerationResult{
		RecordID:          record.ID,
		ContentID:         record.ContentID,
		Status:            record.Status,
		Score:             record.Score,
		FlaggedCategories: record.FlaggedCategories,
		Severity:          record.Severity,
		AgeRating:         record.AgeRating,
		ComplianceFlags:   record.ComplianceFlags,
		Language:          record.Language,
		Summary:           record.Summary,
		ActionRequired:    record.ActionRequired,
	}
}
