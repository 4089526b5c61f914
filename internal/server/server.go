// Package server exposes a detector over HTTP.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"

	"github.com/jamesainslie/go-uidet/box"
	"github.com/jamesainslie/go-uidet/internal/config"
)

// Predictor turns an image file into tagged boxes.
type Predictor interface {
	DetectFile(ctx context.Context, path string) (box.Collection, error)
}

// Server serves the prediction endpoint.
type Server struct {
	app       *fiber.App
	predictor Predictor
	cfg       config.Config
	log       *slog.Logger
}

// New builds a server around p. Routes are registered immediately.
func New(p Predictor, cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	app := fiber.New(fiber.Config{
		AppName:               "uidet",
		BodyLimit:             cfg.UploadLimitMB * 1024 * 1024,
		CaseSensitive:         true,
		DisableStartupMessage: true,
		JSONEncoder:           jsoniter.Marshal,
		JSONDecoder:           jsoniter.Unmarshal,
	})

	s := &Server{
		app:       app,
		predictor: p,
		cfg:       cfg,
		log:       logger,
	}

	app.Use(recover.New())
	// Local annotation tools call the endpoint from other origins.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "*",
	}))
	app.Use(s.logRequests)

	app.Get("/", s.health)
	app.Post("/predict/", s.predict)

	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens on the configured port until Shutdown is called.
func (s *Server) Run() error {
	s.log.Info("listening", "addr", s.cfg.Addr())
	return s.app.Listen(s.cfg.Addr())
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Server is Healthy!",
	})
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	attrs := []any{
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"latency_ms", time.Since(start).Milliseconds(),
		"ip", c.IP(),
	}

	switch {
	case status >= fiber.StatusInternalServerError:
		s.log.Error("request failed", attrs...)
	case status >= fiber.StatusBadRequest:
		s.log.Warn("request rejected", attrs...)
	default:
		s.log.Info("request", attrs...)
	}
	return err
}
