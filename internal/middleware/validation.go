package middleware

import (
	"strconv"

	"rse-quest/internal/domain"
	"rse-quest/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateLevelID validates the :id path parameter
func (vm *ValidationMiddleware) ValidateLevelID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("id")
		levelID, err := strconv.Atoi(raw)
		if err != nil {
			return domain.ValidationErrors{
				domain.NewInvalidFormatError("level_id", raw),
			}
		}

		if errors := vm.validator.ValidateLevelID(levelID); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		// Store validated value in context for handlers to use
		c.Locals("validated_level_id", levelID)
		return c.Next()
	}
}

// ValidateSessionID validates the :id path parameter of session routes
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Params("id")

		if errors := vm.validator.ValidateSessionID(sessionID); len(errors) > 0 {
			return errors
		}

		c.Locals("validated_session_id", sessionID)
		return c.Next()
	}
}
