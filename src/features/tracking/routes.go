package tracking

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the hook routes with the Fiber app.
// The removal hook is deliberately absent: cleanup is interactive and runs
// through the CLI in an attended terminal, not over HTTP.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	hooks := app.Group("/api/hooks")
	hooks.Post("/import", handler.ImportCompleted)
	hooks.Post("/moved", handler.ItemMoved)
}
