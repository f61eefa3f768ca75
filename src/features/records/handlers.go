package records

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for the records feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new records handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetRecords returns every import record.
func (h *Handler) GetRecords(c *fiber.Ctx) error {
	records, err := h.service.List(c.Context())
	if err != nil {
		slog.Error("failed to list records", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list records"})
	}
	return c.JSON(records)
}

// DeleteRecord evicts one record, with the same host-library validation as
// the delete command.
func (h *Handler) DeleteRecord(c *fiber.Ctx) error {
	identifier := c.Params("id")
	err := h.service.Delete(c.Context(), identifier)
	switch {
	case err == nil:
		return c.SendStatus(fiber.StatusNoContent)
	case errors.Is(err, ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrIdentifierInLibrary):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrLibraryInconsistent):
		slog.Error("host library inconsistency", "identifier", identifier, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	default:
		slog.Error("failed to delete record", "identifier", identifier, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete record"})
	}
}
