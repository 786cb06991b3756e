package handlers

import (
	"errors"
	"fmt"

	"cartx/internal/cart"
	"cartx/internal/services"
	"cartx/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var stockErr *cart.InsufficientStockError
	switch {
	case errors.As(err, &stockErr), errors.Is(err, cart.ErrOutOfStock):
		return fiber.StatusConflict
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, session.ErrInvalidTransition):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrProductNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, session.ErrSessionNotFound):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrAlreadyRegistered):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the user-facing message for err.
func respondError(c *fiber.Ctx, err error, extra fiber.Map) error {
	body := fiber.Map{"message": services.UserMessage(err)}
	var stockErr *cart.InsufficientStockError
	if errors.As(err, &stockErr) {
		body["available"] = stockErr.Available
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(statusFor(err)).JSON(body)
}

// validationFailed reports field errors from the validator.
func validationFailed(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// currentSession returns the session stored by middleware.AuthRequired.
func currentSession(c *fiber.Ctx) (*session.Context, error) {
	sess, ok := c.Locals("session").(*session.Context)
	if !ok || sess == nil {
		return nil, session.ErrSessionNotFound
	}
	return sess, nil
}
