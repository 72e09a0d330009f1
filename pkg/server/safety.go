package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/personacore/sentinel/pkg/config"
	handlers "github.com/personacore/sentinel/pkg/handlers/http"
)

type (
	SafetyServerDI struct {
		HandlerTransport handlers.HandlerTransport
		Config           *config.Config
		Logger           *logrus.Logger
	}
	SafetyServer struct {
		*BaseServer
		handlerTransport handlers.HandlerTransport
	}
)

func NewSafetyServer(di SafetyServerDI) *SafetyServer {
	return &SafetyServer{
		BaseServer:       NewBaseServer(di.Config, di.Logger),
		handlerTransport: di.HandlerTransport,
	}
}

func (s *SafetyServer) Run() error {
	s.router.Use(recover.New())
	s.setupRoutes()
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf(":%d", s.config.Server.Port)
	s.logger.WithField("addr", addr).Info("starting safety server")
	return s.router.Listen(addr)
}

func (s *SafetyServer) setupRoutes() {
	baseRouter := s.router.Group("")
	s.addRoutes(baseRouter)
}

func (s *SafetyServer) addRoutes(router fiber.Router) {
	v1 := router.Group("/api/v1")
	{
		safety := v1.Group("/safety")
		{
			users := safety.Group("/users/:user_id")
			{
				users.Post("/analysis", s.handlerTransport.AnalyzeBehaviorHandler.Handle)
				users.Get("/profile", s.handlerTransport.GetSafetyProfileHandler.Handle)
				users.Get("/summary", s.handlerTransport.GetBehaviorSummaryHandler.Handle)
			}

			moderations := safety.Group("/moderations")
			{
				moderations.Post("", s.handlerTransport.ModerateContentHandler.Handle)
				moderations.Get("/:content_id", s.handlerTransport.GetModerationRecordHandler.Handle)
			}

			safety.Post("/ratings", s.handlerTransport.RateInteractionHandler.Handle)
			safety.Post("/blocks", s.handlerTransport.BlockUserHandler.Handle)
		}
	}
}

func (s *SafetyServer) Shutdown() error {
	return s.router.Shutdown()
}
