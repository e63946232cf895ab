// Package handler wires the HTTP routes to the services. Handlers
// stay thin: decode, delegate, encode; error mapping lives in the
// middleware error handler.
package handler

import (
	"rse-quest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// LevelHandler handles level browsing HTTP requests
type LevelHandler struct {
	service service.LevelService
}

// NewLevelHandler creates a new LevelHandler instance
func NewLevelHandler(service service.LevelService) *LevelHandler {
	return &LevelHandler{service: service}
}

// ListLevels handles GET /api/levels
func (h *LevelHandler) ListLevels(c *fiber.Ctx) error {
	levels, err := h.service.ListLevels(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(levels)
}

// GetLevel handles GET /api/levels/:id
func (h *LevelHandler) GetLevel(c *fiber.Ctx) error {
	levelID := c.Locals("validated_level_id").(int)

	level, err := h.service.GetLevel(c.Context(), levelID)
	if err != nil {
		return err
	}
	return c.JSON(level)
}
