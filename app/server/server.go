package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/Ram19prakash/Public-Health-Chatbot/app/config"
	"github.com/Ram19prakash/Public-Health-Chatbot/app/service/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/samber/do"
)

var _ do.Shutdownable = (*Service)(nil)

// Service exposes the conversation controller over HTTP. Each endpoint is
// one UI event; every mutating endpoint answers with the fresh view so the
// display surface never has to track state of its own.
type Service struct {
	cfg        *config.Config
	sessionSvc *session.Service
	app        *fiber.App
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		cfg:        do.MustInvoke[*config.Config](di),
		sessionSvc: do.MustInvoke[*session.Service](di),
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(recover.New())

	if s.cfg.Server.CorsOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: s.cfg.Server.CorsOrigins,
			AllowHeaders: "Origin, Content-Type, Accept",
			AllowMethods: "GET, POST, OPTIONS",
		}))
	}

	s.app = app
	s.registerRoutes()

	return s, nil
}

func (s *Service) registerRoutes() {
	api := s.app.Group("/api")

	api.Post("/sessions", s.createSession)
	api.Get("/sessions/:id", s.getView)
	api.Post("/sessions/:id/department", s.selectDepartment)
	api.Post("/sessions/:id/select", s.selectOption)
	api.Post("/sessions/:id/toggle", s.toggleOption)
	api.Post("/sessions/:id/advance", s.advance)
	api.Post("/sessions/:id/rewind", s.rewind)
	api.Post("/sessions/:id/restart", s.restart)
	api.Post("/sessions/:id/language", s.setLanguage)
}

// App exposes the fiber app for tests.
func (s *Service) App() *fiber.App {
	return s.app
}

func (s *Service) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()

		if err := s.app.ShutdownWithTimeout(5 * time.Second); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Server listening", "port", s.cfg.Server.Port)

	return s.app.Listen(":" + s.cfg.Server.Port)
}

func (s *Service) Shutdown() error {
	return s.app.Shutdown()
}
