package repositories

import (
	"context"

	"cartx/internal/models"
)

// ProductRepository defines read access to the catalog.
type ProductRepository interface {
	// ListAll returns every product joined with its category, ordered by name then ID.
	ListAll(ctx context.Context) ([]models.CatalogProduct, error)
	// GetByID returns nil and no error when the product does not exist.
	GetByID(ctx context.Context, id string) (*models.CatalogProduct, error)
	// SearchByName matches a case-insensitive substring of the product name.
	SearchByName(ctx context.Context, text string) ([]models.CatalogProduct, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// InventoryWriter is implemented by stores that can be seeded with catalog data.
type InventoryWriter interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	Create(ctx context.Context, product *models.Product) error
}
