package database

import (
	"context"
	"fmt"

	"cartx/internal/models"
	"cartx/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultCategories are the filter bar categories of the storefront.
var DefaultCategories = []string{"Clothing", "Electronics", "Footwear", "Accessories"}

type seedProduct struct {
	name, description, price, category string
	stock                              int
}

var defaultProducts = []seedProduct{
	{"Red Shirt", "Cotton crew-neck shirt", "19.99", "Clothing", 5},
	{"Denim Jacket", "Classic blue denim jacket", "59.00", "Clothing", 12},
	{"Wireless Earbuds", "Bluetooth earbuds with charging case", "79.99", "Electronics", 25},
	{"Smart Watch", "Fitness tracking smart watch", "149.00", "Electronics", 0},
	{"Running Shoes", "Lightweight trail running shoes", "89.50", "Footwear", 8},
	{"Leather Belt", "Full-grain leather belt", "24.00", "Accessories", 30},
}

// Seed fills an empty catalog with the default categories and products.
// It does nothing when any category already exists.
func Seed(ctx context.Context, catalog repositories.ProductRepository, writer repositories.InventoryWriter, logger *zap.Logger) error {
	existing, err := catalog.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to check catalog before seeding: %w", err)
	}
	if len(existing) > 0 {
		logger.Debug("catalog already seeded", zap.Int("categories", len(existing)))
		return nil
	}

	ids := make(map[string]string, len(DefaultCategories))
	for _, name := range DefaultCategories {
		c := &models.Category{Name: name}
		if err := writer.CreateCategory(ctx, c); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", name, err)
		}
		ids[name] = c.ID
	}

	for _, sp := range defaultProducts {
		categoryID := ids[sp.category]
		p := &models.Product{
			Name:        sp.name,
			Description: sp.description,
			Price:       decimal.RequireFromString(sp.price),
			Stock:       sp.stock,
			CategoryID:  &categoryID,
		}
		if err := writer.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", sp.name, err)
		}
		logger.Info("seeded product", zap.String("name", p.Name), zap.String("id", p.ID))
	}
	return nil
}
