package tracking

import (
	"log/slog"

	"github.com/contre95/soulkeep/src/history"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handler handles HTTP hook requests for the tracking feature.
type Handler struct {
	service *Service
}

// NewHandler creates a new tracking handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type importPayload struct {
	Items []history.ImportedItem `json:"items"`
}

// ImportCompleted receives the host's import-completed webhook.
func (h *Handler) ImportCompleted(c *fiber.Ctx) error {
	var payload importPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	eventID := uuid.New().String()
	slog.Info("import hook received", "eventID", eventID, "items", len(payload.Items))
	h.service.OnImportCompleted(c.Context(), payload.Items)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"event_id": eventID})
}

// ItemMoved receives the host's item-moved webhook.
func (h *Handler) ItemMoved(c *fiber.Ctx) error {
	var item history.MovedItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	eventID := uuid.New().String()
	slog.Info("moved hook received", "eventID", eventID, "albumID", item.AlbumID)
	h.service.OnItemMoved(c.Context(), item)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"event_id": eventID})
}
