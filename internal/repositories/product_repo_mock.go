package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"cartx/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// Setting Err makes every read fail with it, simulating a storage outage.
type MockProductRepository struct {
	products   map[string]models.Product
	categories map[string]models.Category
	mu         sync.RWMutex

	Err error
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products:   make(map[string]models.Product),
		categories: make(map[string]models.Category),
	}
}

// join resolves the category label of p; callers hold the read lock.
func (r *MockProductRepository) join(p models.Product) models.CatalogProduct {
	item := models.CatalogProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImagePath:   p.ImagePath,
	}
	if p.CategoryID != nil {
		if c, ok := r.categories[*p.CategoryID]; ok {
			name := c.Name
			item.Category = &name
		}
	}
	return item
}

func (r *MockProductRepository) list(match func(models.Product) bool) ([]models.CatalogProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.Err != nil {
		return nil, r.Err
	}
	productList := make([]models.CatalogProduct, 0, len(r.products))
	for _, p := range r.products {
		if match(p) {
			productList = append(productList, r.join(p))
		}
	}
	sort.Slice(productList, func(i, j int) bool {
		if productList[i].Name != productList[j].Name {
			return productList[i].Name < productList[j].Name
		}
		return productList[i].ID < productList[j].ID
	})
	return productList, nil
}

// ListAll returns all products.
func (r *MockProductRepository) ListAll(_ context.Context) ([]models.CatalogProduct, error) {
	return r.list(func(models.Product) bool { return true })
}

// SearchByName returns products whose name contains text, ignoring case.
func (r *MockProductRepository) SearchByName(_ context.Context, text string) ([]models.CatalogProduct, error) {
	needle := strings.ToLower(text)
	return r.list(func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	})
}

// GetByID returns a product by its ID, or nil when absent.
func (r *MockProductRepository) GetByID(_ context.Context, id string) (*models.CatalogProduct, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.Err != nil {
		return nil, r.Err
	}
	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	item := r.join(product)
	return &item, nil
}

// ListCategories returns all categories ordered by name.
func (r *MockProductRepository) ListCategories(_ context.Context) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.Err != nil {
		return nil, r.Err
	}
	categoryList := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		categoryList = append(categoryList, c)
	}
	sort.Slice(categoryList, func(i, j int) bool { return categoryList[i].Name < categoryList[j].Name })
	return categoryList, nil
}

// CreateCategory adds a new category.
func (r *MockProductRepository) CreateCategory(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	r.categories[category.ID] = *category
	return nil
}

// DeleteCategory removes a category, leaving its products uncategorized.
func (r *MockProductRepository) DeleteCategory(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.categories, id)
}

// Create adds a new product.
func (r *MockProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	r.products[product.ID] = *product
	return nil
}

// SetStock overwrites the stock of an existing product.
func (r *MockProductRepository) SetStock(id string, stock int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.products[id]; ok {
		p.Stock = stock
		r.products[id] = p
	}
}
