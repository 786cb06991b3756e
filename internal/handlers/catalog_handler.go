package handlers

import (
	"errors"

	"cartx/internal/models"
	"cartx/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves product listings.
type CatalogHandler struct {
	catalog *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
	}
}

// RegisterRoutes registers the catalog routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleBrowse)
	router.Get("/products/:id", h.HandleGetProduct)
	router.Get("/categories", h.HandleCategories)
}

// HandleBrowse lists products matching ?q= and ?category=. A storage fault
// still answers 200 with an empty list and a notice.
func (h *CatalogHandler) HandleBrowse(c *fiber.Ctx) error {
	var criteria models.SearchCriteria
	if err := c.QueryParser(&criteria); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid query parameters",
		})
	}

	products, err := h.catalog.Browse(c.UserContext(), criteria)
	body := fiber.Map{"products": products, "count": len(products)}
	switch {
	case err != nil:
		body["message"] = services.UserMessage(err)
	case len(products) == 0:
		body["message"] = services.UserMessage(services.ErrProductNotFound)
	}
	return c.JSON(body)
}

// HandleGetProduct returns a single product.
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.catalog.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, nil)
	}
	if product == nil {
		return respondError(c, services.ErrProductNotFound, nil)
	}
	return c.JSON(product)
}

// HandleCategories returns the category filter labels.
func (h *CatalogHandler) HandleCategories(c *fiber.Ctx) error {
	names, err := h.catalog.ListCategories(c.UserContext())
	body := fiber.Map{"categories": names}
	if errors.Is(err, services.ErrStorageUnavailable) {
		body["message"] = services.UserMessage(err)
	}
	return c.JSON(body)
}
