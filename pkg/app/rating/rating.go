package rating

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	appIncident "github.com/personacore/sentinel/pkg/app/incident"
	appProfile "github.com/personacore/sentinel/pkg/app/profile"
	"github.com/personacore/sentinel/pkg/domain"
	"github.com/personacore/sentinel/pkg/domain/activity"
)

// RateRequest is a creator's manual safety rating of one interaction.
type RateRequest struct {
	RaterID        uuid.UUID  `json:"rater_id"`
	RatedUserID    uuid.UUID  `json:"rated_user_id"`
	PersonaID      *uuid.UUID `json:"persona_id,omitempty"`
	ConversationID *uuid.UUID `json:"conversation_id,omitempty"`
	SafetyRating   int        `json:"safety_rating"`
	IsHarassment   bool       `json:"is_harassment"`
	ReportsThreats bool       `json:"reports_threats"`
	Comment        string     `json:"comment"`
}

// BlockRequest toggles a creator's block of a user on one persona.
type BlockRequest struct {
	CreatorID uuid.UUID  `json:"creator_id"`
	UserID    uuid.UUID  `json:"user_id"`
	PersonaID *uuid.UUID `json:"persona_id,omitempty"`
	IsBlocked bool       `json:"is_blocked"`
	Reason    string     `json:"reason"`
}

// Service ingests manual safety signals. The rating or block row is the
// primary write; the incident and profile updates that follow are best-effort.
type Service interface {
	RateUserInteraction(ctx context.Context, req RateRequest) (*activity.InteractionRating, error)
	BlockUser(ctx context.Context, req BlockRequest) (*activity.UserBlock, error)
}

type service struct {
	logger   *logrus.Logger
	activity activity.Repository
	recorder appIncident.Recorder
	updater  appProfile.Updater
}

func NewService(
	logger *logrus.Logger,
	activityRepo activity.Repository,
	recorder appIncident.Recorder,
	updater appProfile.Updater,
) Service {
	return &service{
		logger:   logger,
		activity: activityRepo,
		recorder: recorder,
		updater:  updater,
	}
}

func (s *service) RateUserInteraction(ctx context.Context, req RateRequest) (*activity.InteractionRating, error) {
	if req.SafetyRating < 1 || req.SafetyRating > 5 {
		return nil, domain.ErrInvalidRating
	}
	if req.RaterID == req.RatedUserID {
		return nil, domain.ErrSelfRating
	}

	rating := &activity.InteractionRating{
		RaterID:        req.RaterID,
		RatedUserID:    req.RatedUserID,
		PersonaID:      req.PersonaID,
		ConversationID: req.ConversationID,
		SafetyRating:   req.SafetyRating,
		IsHarassment:   req.IsHarassment,
		ReportsThreats: req.ReportsThreats,
		Comment:        req.Comment,
	}
	if err := s.activity.SaveRating(ctx, rating); err != nil {
		return nil, err
	}

	s.recorder.RecordRatingReport(ctx, rating)
	if _, err := s.updater.ApplyManualRating(ctx, req.RatedUserID, req.SafetyRating); err != nil {
		s.logger.WithError(err).WithField("user_id", req.RatedUserID).Error("failed to apply manual rating to safety profile")
	}
	return rating, nil
}

func (s *service) BlockUser(ctx context.Context, req BlockRequest) (*activity.UserBlock, error) {
	block := &activity.UserBlock{
		CreatorID: req.CreatorID,
		UserID:    req.UserID,
		PersonaID: req.PersonaID,
		IsBlocked: req.IsBlocked,
		Reason:    req.Reason,
	}
	if err := s.activity.UpsertBlock(ctx, block); err != nil {
		return nil, err
	}

	if req.IsBlocked {
		s.recorder.RecordBlock(ctx, block)
		// A block is a strong distrust signal; fold it in as the lowest
		// manual rating.
		if _, err := s.updater.ApplyManualRating(ctx, req.UserID, 1); err != nil {
			s.logger.WithError(err).WithField("user_id", req.UserID).Error("failed to apply block to safety profile")
		}
	}
	return block, nil
}
