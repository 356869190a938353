package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// AppConfig holds transport settings.
type AppConfig struct {
	BodyLimit        int
	CORSAllowOrigins string
}

// NewApp wires middleware and routes around h.
func NewApp(h *Handler, cfg AppConfig, logger *zap.Logger) *fiber.App {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CORSAllowOrigins == "" {
		cfg.CORSAllowOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(RequestID())
	app.Use(AccessLog(logger))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowOrigins,
		AllowMethods:  "GET,POST,OPTIONS",
		ExposeHeaders: "Content-Disposition,X-Request-ID,X-Job-ID",
	}))

	api := app.Group("/api")
	api.Post("/generate-curriculum", h.GenerateCurriculum)
	api.Post("/generate-pdf", h.GenerateCurriculum)
	api.Post("/preview", h.Preview)
	api.Get("/health", h.Health)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	return app
}

// errorHandler renders fiber errors (404, 413, recovered panics) as JSON
// without internal details.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		if code < fiber.StatusInternalServerError {
			msg = fe.Message
		}
	}
	kind := "internal"
	if code < fiber.StatusInternalServerError {
		kind = "request"
	}
	return c.Status(code).JSON(fiber.Map{"error": kind, "message": msg})
}
