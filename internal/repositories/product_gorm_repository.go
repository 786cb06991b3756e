package repositories

import (
	"context"
	"fmt"
	"strings"

	"cartx/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const catalogColumns = "p.id, p.name, p.description, p.price, p.stock, p.image_path, c.name AS category"

// likeEscaper escapes LIKE wildcards so user text is matched literally.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

func (r *GORMProductRepository) catalog(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products AS p").
		Select(catalogColumns).
		Joins("LEFT JOIN categories c ON p.category_id = c.id")
}

// ListAll retrieves all products with their category names.
func (r *GORMProductRepository) ListAll(ctx context.Context) ([]models.CatalogProduct, error) {
	products := []models.CatalogProduct{}
	if err := r.catalog(ctx).Order("p.name ASC, p.id ASC").Scan(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.CatalogProduct, error) {
	var products []models.CatalogProduct
	if err := r.catalog(ctx).Where("p.id = ?", id).Limit(1).Scan(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	if len(products) == 0 {
		return nil, nil
	}
	return &products[0], nil
}

// SearchByName retrieves products whose name contains text, ignoring case.
func (r *GORMProductRepository) SearchByName(ctx context.Context, text string) ([]models.CatalogProduct, error) {
	if r.db.Dialector.Name() == "sqlite" {
		return r.searchFolded(ctx, text)
	}

	pattern := "%" + likeEscaper.Replace(strings.ToLower(text)) + "%"
	products := []models.CatalogProduct{}
	err := r.catalog(ctx).
		Where("LOWER(p.name) LIKE ? ESCAPE '!'", pattern).
		Order("p.name ASC, p.id ASC").
		Scan(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search products by name %q: %w", text, err)
	}
	return products, nil
}

// searchFolded matches names in Go because SQLite's LOWER and LIKE only fold ASCII.
func (r *GORMProductRepository) searchFolded(ctx context.Context, text string) ([]models.CatalogProduct, error) {
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search products by name %q: %w", text, err)
	}

	needle := strings.ToLower(text)
	products := []models.CatalogProduct{}
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			products = append(products, p)
		}
	}
	return products, nil
}

// ListCategories retrieves all categories ordered by name.
func (r *GORMProductRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory inserts a category, generating an ID when none is set.
func (r *GORMProductRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Create inserts a product, generating an ID when none is set.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}
