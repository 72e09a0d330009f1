package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/personacore/sentinel/pkg/app/behavior"
	"github.com/personacore/sentinel/pkg/common"
)

type analyzeBehaviorRequest struct {
	LookbackHours int `json:"lookback_hours"`
}

type analyzeBehaviorHandler struct {
	logger   *logrus.Logger
	analyzer behavior.Analyzer
}

func NewAnalyzeBehaviorHandler(logger *logrus.Logger, analyzer behavior.Analyzer) Handler {
	return &analyzeBehaviorHandler{
		logger:   logger,
		analyzer: analyzer,
	}
}

// Handle @Summary Analyze a user's recent behavior
// @Description Runs the behavior pipeline over the user's recent activity
// @Tags Safety
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param request body analyzeBehaviorRequest false "Analysis options"
// @Success 200 {object} types.BehaviorPattern "Behavior pattern"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/v1/safety/users/{user_id}/analysis [post]
func (s *analyzeBehaviorHandler) Handle(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user_id"})
	}

	var req analyzeBehaviorRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			s.logger.WithError(err).Error("failed to bind request")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
		}
	}
	if req.LookbackHours == 0 {
		req.LookbackHours = c.QueryInt("lookback_hours")
	}
	if req.LookbackHours < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "lookback_hours must be positive"})
	}

	window := common.DefaultLookback
	if req.LookbackHours > 0 {
		window = time.Duration(req.LookbackHours) * time.Hour
	}

	pattern := s.analyzer.Analyze(c.Context(), userID, window)
	return c.Status(fiber.StatusOK).JSON(pattern)
}
