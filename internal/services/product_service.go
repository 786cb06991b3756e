package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cartx/internal/models"
	"cartx/internal/repositories"

	"go.uber.org/zap"
)

// CatalogService answers product listing, search and lookup for the storefront.
// Reads fail soft: a storage fault yields an empty result together with
// ErrStorageUnavailable, and is logged here.
type CatalogService struct {
	repo    repositories.ProductRepository
	logger  *zap.Logger
	timeout time.Duration
}

// NewCatalogService creates a new CatalogService. A zero timeout leaves
// queries bounded only by the caller's context.
func NewCatalogService(repo repositories.ProductRepository, logger *zap.Logger, timeout time.Duration) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		repo:    repo,
		logger:  logger,
		timeout: timeout,
	}
}

func (s *CatalogService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *CatalogService) unavailable(op string, err error, fields ...zap.Field) error {
	s.logger.Warn("catalog query failed", append(fields, zap.String("op", op), zap.Error(err))...)
	return fmt.Errorf("%s: %w", op, ErrStorageUnavailable)
}

// ListAll retrieves all products.
func (s *CatalogService) ListAll(ctx context.Context) ([]models.CatalogProduct, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return []models.CatalogProduct{}, s.unavailable("list products", err)
	}
	return products, nil
}

// FindByID returns the product or nil when no product has that ID.
func (s *CatalogService) FindByID(ctx context.Context, id string) (*models.CatalogProduct, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.unavailable("get product", err, zap.String("product_id", id))
	}
	return product, nil
}

// SearchByName retrieves products whose name contains text, ignoring case.
// Blank text lists everything.
func (s *CatalogService) SearchByName(ctx context.Context, text string) ([]models.CatalogProduct, error) {
	if strings.TrimSpace(text) == "" {
		return s.ListAll(ctx)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	products, err := s.repo.SearchByName(ctx, text)
	if err != nil {
		return []models.CatalogProduct{}, s.unavailable("search products", err, zap.String("query", text))
	}
	return products, nil
}

// FilterByCategory keeps products labelled category. An empty category or
// models.AllCategories returns products unchanged.
func FilterByCategory(products []models.CatalogProduct, category string) []models.CatalogProduct {
	if category == "" || category == models.AllCategories {
		return products
	}
	filtered := make([]models.CatalogProduct, 0, len(products))
	for _, p := range products {
		if p.InCategory(category) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Browse searches first and narrows by category second.
func (s *CatalogService) Browse(ctx context.Context, criteria models.SearchCriteria) ([]models.CatalogProduct, error) {
	products, err := s.SearchByName(ctx, criteria.Text)
	return FilterByCategory(products, criteria.Category), err
}

// ListCategories returns the filter bar labels, starting with models.AllCategories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	names := []string{models.AllCategories}
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return names, s.unavailable("list categories", err)
	}
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names, nil
}
