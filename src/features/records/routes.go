package records

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the records routes with the Fiber app.
func RegisterRoutes(app *fiber.App, service *Service) {
	handler := NewHandler(service)

	api := app.Group("/api/records")
	api.Get("/", handler.GetRecords)
	api.Delete("/:id", handler.DeleteRecord)
}
