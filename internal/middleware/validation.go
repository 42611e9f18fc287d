package middleware

import (
	"restaurant-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	if v == nil {
		v = validation.NewValidator()
	}
	return &ValidationMiddleware{validator: v}
}

// ValidateSessionID rejects requests whose :id path parameter is not a ULID.
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Params("id")
		if errs := vm.validator.ValidateSessionID(sessionID); len(errs) > 0 {
			return errs
		}
		c.Locals("validated_session_id", sessionID)
		return c.Next()
	}
}
