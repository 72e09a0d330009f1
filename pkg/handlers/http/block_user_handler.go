package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/personacore/sentinel/pkg/app/rating"
	"github.com/personacore/sentinel/pkg/domain"
)

type blockUserHandler struct {
	logger  *logrus.Logger
	ratings rating.Service
}

func NewBlockUserHandler(logger *logrus.Logger, ratings rating.Service) Handler {
	return &blockUserHandler{
		logger:  logger,
		ratings: ratings,
	}
}

// Handle @Summary Block or unblock a user
// @Description Records a creator's block of a user on one persona
// @Tags Safety
// @Accept json
// @Produce json
// @Param request body rating.BlockRequest true "Block request body"
// @Success 200 {object} activity.UserBlock "Block state"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/v1/safety/blocks [post]
func (s *blockUserHandler) Handle(c *fiber.Ctx) error {
	var req rating.BlockRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}
	if req.CreatorID == uuid.Nil || req.UserID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "creator_id and user_id are required"})
	}

	block, err := s.ratings.BlockUser(c.Context(), req)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		s.logger.WithError(err).Error("failed to save user block")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save user block"})
	}

	return c.Status(fiber.StatusOK).JSON(block)
}
