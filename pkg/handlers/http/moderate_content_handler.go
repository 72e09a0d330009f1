package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/personacore/sentinel/pkg/app/moderation"
	"github.com/personacore/sentinel/pkg/domain"
)

type moderateContentHandler struct {
	logger    *logrus.Logger
	moderator moderation.Moderator
}

func NewModerateContentHandler(logger *logrus.Logger, moderator moderation.Moderator) Handler {
	return &moderateContentHandler{
		logger:    logger,
		moderator: moderator,
	}
}

// Handle @Summary Moderate a content item
// @Description Classifies one content item and persists the moderation record
// @Tags Safety
// @Accept json
// @Produce json
// @Param request body moderation.Request true "Content to moderate"
// @Success 200 {object} types.ModerationResult "Moderation result"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /api/v1/safety/moderations [post]
func (s *moderateContentHandler) Handle(c *fiber.Ctx) error {
	var req moderation.Request
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	result, err := s.moderator.ModerateContent(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyContent) || errors.Is(err, domain.ErrMissingContentID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		s.logger.WithError(err).WithField("content_id", req.ContentID).Error("failed to moderate content")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to moderate content"})
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
