package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/personacore/sentinel/pkg/app/moderation"
	"github.com/personacore/sentinel/pkg/domain"
)

type getModerationRecordHandler struct {
	logger    *logrus.Logger
	moderator moderation.Moderator
}

func NewGetModerationRecordHandler(logger *logrus.Logger, moderator moderation.Moderator) Handler {
	return &getModerationRecordHandler{
		logger:    logger,
		moderator: moderator,
	}
}

// Handle @Summary Retrieve a moderation record
// @Description Returns the latest moderation outcome for a content item
// @Tags Safety
// @Produce json
// @Param content_id path string true "Content ID"
// @Success 200 {object} moderation.ModerationRecord "Moderation record"
// @Failure 404 {object} map[string]interface{} "Record not found"
// @Router /api/v1/safety/moderations/{content_id} [get]
func (s *getModerationRecordHandler) Handle(c *fiber.Ctx) error {
	contentID := c.Params("content_id")
	if contentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "content_id is required"})
	}

	record, err := s.moderator.GetModerationRecord(c.Context(), contentID)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "moderation record not found"})
		}
		s.logger.WithError(err).WithField("content_id", contentID).Error("failed to get moderation record")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get moderation record"})
	}

	return c.Status(fiber.StatusOK).JSON(record)
}
