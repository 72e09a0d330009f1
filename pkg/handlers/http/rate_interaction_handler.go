package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/personacore/sentinel/pkg/app/rating"
	"github.com/personacore/sentinel/pkg/domain"
)

type rateInteractionHandler struct {
	logger  *logrus.Logger
	ratings rating.Service
}

func NewRateInteractionHandler(logger *logrus.Logger, ratings rating.Service) Handler {
	return &rateInteractionHandler{
		logger:  logger,
		ratings: ratings,
	}
}

// Handle @Summary Rate a user interaction
// @Description Records a creator's manual safety rating of one interaction
// @Tags Safety
// @Accept json
// @Produce json
// @Param request body rating.RateRequest true "Rating request body"
// @Success 201 {object} activity.InteractionRating "Rating created"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/v1/safety/ratings [post]
func (s *rateInteractionHandler) Handle(c *fiber.Ctx) error {
	var req rating.RateRequest
	if err := c.BodyParser(&req); err != nil {
		s.logger.WithError(err).Error("failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	saved, err := s.ratings.RateUserInteraction(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRating) || errors.Is(err, domain.ErrSelfRating) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		s.logger.WithError(err).Error("failed to save interaction rating")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save interaction rating"})
	}

	return c.Status(fiber.StatusCreated).JSON(saved)
}
