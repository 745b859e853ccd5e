package server

import (
	"log"

	"solosolver-be/internal/bootstrap"
	"solosolver-be/internal/config"
	"solosolver-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app *fiber.App
	cfg *config.Config
}

// Routes is implemented by every controller the server mounts.
type Routes interface {
	RegisterRoutes(r fiber.Router)
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	return NewWithRoutes(cfg,
		container.ComplaintController,
		container.SearchController,
		container.InteractionController,
	)
}

func NewWithRoutes(cfg *config.Config, routes ...Routes) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CorsAllowedOrigins,
		AllowHeaders: cfg.App.CorsAllowedHeaders,
		AllowMethods: "GET, POST, OPTIONS",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	api := app.Group("/api")
	api.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})
	for _, r := range routes {
		r.RegisterRoutes(api)
	}

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

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
