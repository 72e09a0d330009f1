package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/personacore/sentinel/pkg/app/behavior"
)

type getBehaviorSummaryHandler struct {
	logger     *logrus.Logger
	summarizer behavior.Summarizer
}

func NewGetBehaviorSummaryHandler(logger *logrus.Logger, summarizer behavior.Summarizer) Handler {
	return &getBehaviorSummaryHandler{
		logger:     logger,
		summarizer: summarizer,
	}
}

// Handle @Summary Retrieve a user's behavior summary
// @Description Returns the derived risk view consumed by other platform components
// @Tags Safety
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} types.BehaviorSummary "Behavior summary"
// @Failure 400 {object} map[string]interface{} "Invalid user ID"
// @Router /api/v1/safety/users/{user_id}/summary [get]
func (s *getBehaviorSummaryHandler) Handle(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user_id"})
	}

	summary, err := s.summarizer.GetBehaviorSummary(c.Context(), userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to build behavior summary")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to build behavior summary"})
	}

	return c.Status(fiber.StatusOK).JSON(summary)
}
