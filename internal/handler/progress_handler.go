package handler

import (
	"rse-quest/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ProgressHandler handles progression HTTP requests
type ProgressHandler struct {
	service service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler instance
func NewProgressHandler(service service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// GetProgress handles GET /api/progress
func (h *ProgressHandler) GetProgress(c *fiber.Ctx) error {
	progress, err := h.service.GetProgress(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(progress)
}

// ResetProgress handles POST /api/progress/reset
func (h *ProgressHandler) ResetProgress(c *fiber.Ctx) error {
	if err := h.service.ResetProgress(c.Context()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
