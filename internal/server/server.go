package server

import (
	"context"
	"log"
	"strings"

	"github.com/cristiansanchez/indice/internal/bootstrap"
	"github.com/cristiansanchez/indice/internal/config"
	"github.com/cristiansanchez/indice/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	// Initialize Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "indice",
		BodyLimit:    10 * 1024 * 1024, // 10MB, analysis bodies carry raw page content
		ErrorHandler: serverutils.ErrorHandler(container.Logger),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(corsConfig(cfg.App.CorsAllowedOrigins)))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	// Routes
	registerRoutes(app, container)

	// Static front end
	app.Static("/", cfg.App.StaticDir)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// corsConfig allows credentials only for an explicit origin list; fiber
// refuses credentials together with the "*" wildcard.
func corsConfig(origins string) cors.Config {
	origins = strings.TrimSpace(origins)
	if origins == "" {
		origins = "*"
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: !strings.Contains(origins, "*"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type",
	}
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	requireSession := serverutils.SessionMiddleware(c.AuthService, c.Config.Auth.CookieName)

	c.AuthController.RegisterRoutes(api)
	c.IndexController.RegisterRoutes(api, requireSession)
	c.AnalysisController.RegisterRoutes(api, requireSession)
	c.ModelController.RegisterRoutes(api, requireSession)
}
