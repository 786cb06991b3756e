package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a row of the products table. Products are maintained by
// the inventory process; the storefront only reads them.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"type:varchar(100);index"`
	Description string          `json:"description" gorm:"type:varchar(500)"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int             `json:"stock" gorm:"not null;default:0"`
	ImagePath   *string         `json:"image_path,omitempty" gorm:"type:varchar(255)"`
	CategoryID  *string         `json:"category_id,omitempty" gorm:"type:varchar(36);index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Category groups products for the catalog filter bar.
type Category struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"name" gorm:"uniqueIndex;type:varchar(100)"`
}

// CatalogProduct is a product joined with the name of its category.
// Category is nil when the product has none or the category row is gone.
type CatalogProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImagePath   *string         `json:"image_path,omitempty"`
	Category    *string         `json:"category"`
}

// InCategory reports whether the product's category label equals name.
func (p CatalogProduct) InCategory(name string) bool {
	return p.Category != nil && *p.Category == name
}

// AllCategories is the filter value that disables category narrowing.
const AllCategories = "All"

// SearchCriteria narrows a catalog listing. Text is a case-insensitive
// substring of the product name; Category is an exact label or AllCategories.
type SearchCriteria struct {
	Text     string `query:"q"`
	Category string `query:"category"`
}
