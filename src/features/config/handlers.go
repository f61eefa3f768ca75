package config

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Handler is the handler for the config feature.
type Handler struct {
	configManager *Manager
	configPath    string
}

// NewHandler creates a new handler for the config feature.
func NewHandler(configManager *Manager, configPath string) *Handler {
	return &Handler{configManager: configManager, configPath: configPath}
}

// GetConfig returns the current configuration. The telegram token is
// redacted; it can be set, never read back.
func (h *Handler) GetConfig(c *fiber.Ctx) error {
	cfg := *h.configManager.Get()
	if cfg.Telegram.Token != "" {
		cfg.Telegram.Token = "<redacted>"
	}
	return c.JSON(cfg)
}

// UpdateConfig replaces the runtime configuration from a JSON body and
// persists it. Server settings are preserved from the current config; it
// makes no sense to change them on a running listener.
func (h *Handler) UpdateConfig(c *fiber.Ctx) error {
	slog.Info("Configuration update requested")
	current := h.configManager.Get()

	var newConfig Config
	if err := c.BodyParser(&newConfig); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	newConfig.Server = current.Server

	if err := validator.New().Struct(newConfig); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	h.configManager.Update(&newConfig)
	slog.Info("Configuration updated in memory")

	// Saving may fail on a read-only config mount; the runtime update stands.
	if err := h.configManager.Save(h.configPath); err != nil {
		slog.Warn("failed to save config to file", "path", h.configPath, "error", err)
	}

	return c.JSON(fiber.Map{"status": "updated"})
}
