package config

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the config routes with the Fiber app.
func RegisterRoutes(app *fiber.App, configManager *Manager, configPath string) {
	handler := NewHandler(configManager, configPath)

	app.Get("/api/config", handler.GetConfig)
	app.Put("/api/config", handler.UpdateConfig)
}
