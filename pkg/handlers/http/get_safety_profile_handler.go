package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	appProfile "github.com/personacore/sentinel/pkg/app/profile"
)

type getSafetyProfileHandler struct {
	logger   *logrus.Logger
	profiles appProfile.Getter
}

func NewGetSafetyProfileHandler(logger *logrus.Logger, profiles appProfile.Getter) Handler {
	return &getSafetyProfileHandler{
		logger:   logger,
		profiles: profiles,
	}
}

// Handle @Summary Retrieve a user's safety profile
// @Description Returns the safety profile, creating it on first access
// @Tags Safety
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} profile.SafetyProfile "Safety profile"
// @Failure 400 {object} map[string]interface{} "Invalid user ID"
// @Router /api/v1/safety/users/{user_id}/profile [get]
func (s *getSafetyProfileHandler) Handle(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user_id"})
	}

	p, err := s.profiles.GetProfile(c.Context(), userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to get safety profile")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get safety profile"})
	}

	return c.Status(fiber.StatusOK).JSON(p)
}
