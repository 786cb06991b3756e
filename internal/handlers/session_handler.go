package handlers

import (
	"cartx/internal/session"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler exposes the caller's identity and navigation state.
type SessionHandler struct{}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// RegisterRoutes registers the session routes.
func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/session", h.HandleGetSession)
	router.Post("/session/navigate", h.HandleNavigate)
}

// HandleGetSession returns the header data: display name, screen and cart badge.
func (h *SessionHandler) HandleGetSession(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(fiber.Map{
		"username":   sess.DisplayName(),
		"screen":     sess.Screen(),
		"cart_count": sess.Cart.ItemCount(),
	})
}

// HandleNavigate applies a navigation event to the session's screen.
func (h *SessionHandler) HandleNavigate(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return respondError(c, err, nil)
	}

	var req struct {
		Event session.Event `json:"event"`
	}
	if err := c.BodyParser(&req); err != nil || req.Event == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "An event is required",
		})
	}

	screen, err := sess.Navigate(req.Event)
	if err != nil {
		return respondError(c, err, fiber.Map{"screen": screen})
	}
	return c.JSON(fiber.Map{"screen": screen})
}
