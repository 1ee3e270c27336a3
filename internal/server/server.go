package server

import (
	"log"

	"study-buddy-be/internal/bootstrap"
	"study-buddy-be/internal/config"
	"study-buddy-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
)

type Server struct {
	app *fiber.App
	cfg *config.Config
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // 1MB, chat payloads are small
	})

	// Middleware. CORS runs first so even panics answered by the recover
	// middleware carry the permissive headers.
	app.Use(serverutils.CORSMiddleware())
	app.Use(serverutils.RecoverMiddleware(container.Logger))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	registerRoutes(app, container)

	return &Server{
		app: app,
		cfg: cfg,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

// registerRoutes wires the three behaviors. Order matters: the chat
// controller ends with a catch-all, so it must be registered last.
func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	c.MaterialsController.RegisterRoutes(app)
	c.ChatController.RegisterRoutes(app)
}
