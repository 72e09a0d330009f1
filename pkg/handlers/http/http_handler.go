package http

import "github.com/gofiber/fiber/v2"

const ErrInvalidJsonPayload = "invalid json payload"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Behavior
	AnalyzeBehaviorHandler    Handler
	GetBehaviorSummaryHandler Handler

	// Moderation
	ModerateContentHandler     Handler
	GetModerationRecordHandler Handler

	// Profile
	GetSafetyProfileHandler Handler

	// Manual signals
	RateInteractionHandler Handler
	BlockUserHandler       Handler
}
