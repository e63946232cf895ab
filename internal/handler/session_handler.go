package handler

import (
	"rse-quest/internal/domain"
	"rse-quest/internal/dto"
	"rse-quest/internal/service"
	"rse-quest/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles play session HTTP requests
type SessionHandler struct {
	service   service.SessionService
	validator *validation.Validator
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(service service.SessionService) *SessionHandler {
	return &SessionHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// StartSession handles POST /api/sessions
func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	var req dto.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{
			domain.NewInvalidFormatError("body", err.Error()),
		}
	}
	if errs := h.validator.ValidateLevelID(req.LevelID); len(errs) > 0 {
		return errs
	}

	session, err := h.service.StartSession(c.Context(), req.LevelID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// GetSession handles GET /api/sessions/:id
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	sessionID := c.Locals("validated_session_id").(string)

	session, err := h.service.GetSession(c.Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(session)
}

// SubmitAnswer handles POST /api/sessions/:id/answer
func (h *SessionHandler) SubmitAnswer(c *fiber.Ctx) error {
	sessionID := c.Locals("validated_session_id").(string)

	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{
			domain.NewInvalidFormatError("body", err.Error()),
		}
	}

	result, err := h.service.SubmitAnswer(c.Context(), sessionID, &req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// Advance handles POST /api/sessions/:id/advance
func (h *SessionHandler) Advance(c *fiber.Ctx) error {
	sessionID := c.Locals("validated_session_id").(string)

	result, err := h.service.Advance(c.Context(), sessionID)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// AbandonSession handles DELETE /api/sessions/:id
func (h *SessionHandler) AbandonSession(c *fiber.Ctx) error {
	sessionID := c.Locals("validated_session_id").(string)

	if err := h.service.AbandonSession(c.Context(), sessionID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
