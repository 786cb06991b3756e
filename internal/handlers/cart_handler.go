package handlers

import (
	"cartx/internal/models"
	"cartx/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the session's cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Post("/pending/:id", h.HandleChangeQuantity)
	cartRoutes.Post("/pending/:id/commit", h.HandleCommitPending)
}

// HandleGetCart returns the cart lines, item count and total.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(h.service.Summary(sess))
}

// HandleAddItem adds a product to the cart. Quantity defaults to 1.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return respondError(c, err, nil)
	}

	var req models.AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Quantity must be a whole number of at least 1.",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	count, err := h.service.AddProduct(c.UserContext(), sess, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err, fiber.Map{"item_count": count})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Added to cart",
		"item_count": count,
	})
}

type changeQuantityRequest struct {
	Delta int `json:"delta"`
}

// HandleChangeQuantity moves the pending selector for a product.
func (h *CartHandler) HandleChangeQuantity(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return respondError(c, err, nil)
	}

	var req changeQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	productID := c.Params("id")
	return c.JSON(fiber.Map{
		"product_id": productID,
		"quantity":   h.service.ChangeQuantity(sess, productID, req.Delta),
	})
}

// HandleCommitPending adds the pending quantity of a product to the cart.
func (h *CartHandler) HandleCommitPending(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return respondError(c, err, nil)
	}

	count, err := h.service.AddPending(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return respondError(c, err, fiber.Map{"item_count": count})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Added to cart",
		"item_count": count,
	})
}

// HandleRemoveItem drops a product from the cart. Unknown products are ignored.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if err != nil {
		return respondError(c, err, nil)
	}
	return c.JSON(h.service.Remove(sess, c.Params("id")))
}
