package hosting

import (
	"fmt"
	"log/slog"

	"github.com/contre95/soulkeep/src/features/config"
	"github.com/contre95/soulkeep/src/features/records"
	"github.com/contre95/soulkeep/src/features/tracking"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP surface of serve mode: the record table, the
// non-interactive host hooks and Prometheus metrics.
type Server struct {
	app  *fiber.App
	port uint32
}

// NewServer creates a new HTTP server.
func NewServer(cfg *config.Manager, configPath string, recordsService *records.Service, trackingService *tracking.Service) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("Internal Server Error", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
		AppName:               "Soulkeep",
		DisableStartupMessage: true,
		EnablePrintRoutes:     cfg.Get().Server.PrintRoutes,
	})

	app.Use(LogAllRequestsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	config.RegisterRoutes(app, cfg, configPath)
	records.RegisterRoutes(app, recordsService)
	if cfg.Get().Auto {
		tracking.RegisterRoutes(app, trackingService)
	} else {
		slog.Info("automatic hooks disabled by config, not registering hook routes")
	}

	return &Server{app: app, port: cfg.Get().Server.Port}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	return s.app.Listen(":" + fmt.Sprint(s.port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
