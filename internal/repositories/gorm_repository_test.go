package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"cartx/internal/database"
	"cartx/internal/models"
	"cartx/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTestDB opens a private in-memory SQLite database with the schema applied.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type catalogFixture struct {
	repo     *repositories.GORMProductRepository
	db       *gorm.DB
	clothing models.Category
	shoes    models.Category
}

func newCatalogFixture(t *testing.T) catalogFixture {
	t.Helper()
	db := openTestDB(t)
	repo := repositories.NewGORMProductRepository(db)
	ctx := context.Background()

	f := catalogFixture{repo: repo, db: db, clothing: models.Category{Name: "Clothing"}, shoes: models.Category{Name: "Footwear"}}
	require.NoError(t, repo.CreateCategory(ctx, &f.clothing))
	require.NoError(t, repo.CreateCategory(ctx, &f.shoes))

	image := "shirt.png"
	products := []models.Product{
		{ID: "p-3", Name: "Red Shirt", Price: decimal.RequireFromString("19.99"), Stock: 5, CategoryID: &f.clothing.ID, ImagePath: &image},
		{ID: "p-1", Name: "Boots", Price: decimal.RequireFromString("120.00"), Stock: 2, CategoryID: &f.shoes.ID},
		{ID: "p-2", Name: "Gift Card", Price: decimal.RequireFromString("25.00"), Stock: 100},
		{ID: "p-4", Name: "Red Shirt", Price: decimal.RequireFromString("21.00"), Stock: 1, CategoryID: &f.clothing.ID},
		{ID: "p-5", Name: "100% Wool Scarf", Price: decimal.RequireFromString("30.00"), Stock: 3, CategoryID: &f.clothing.ID},
	}
	for i := range products {
		require.NoError(t, repo.Create(ctx, &products[i]))
	}
	return f
}

func names(products []models.CatalogProduct) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestGORMProductRepository_ListAll(t *testing.T) {
	f := newCatalogFixture(t)

	products, err := f.repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"100% Wool Scarf", "Boots", "Gift Card", "Red Shirt", "Red Shirt"}, names(products))

	// Equal names are ordered by ID
	assert.Equal(t, "p-3", products[3].ID)
	assert.Equal(t, "p-4", products[4].ID)

	require.NotNil(t, products[3].Category)
	assert.Equal(t, "Clothing", *products[3].Category)
	require.NotNil(t, products[3].ImagePath)
	assert.Equal(t, "shirt.png", *products[3].ImagePath)
	assert.True(t, decimal.RequireFromString("19.99").Equal(products[3].Price))

	assert.Nil(t, products[2].Category, "uncategorized products still appear")
}

func TestGORMProductRepository_DeletedCategoryLeavesProductListed(t *testing.T) {
	f := newCatalogFixture(t)
	require.NoError(t, f.db.Delete(&models.Category{}, "id = ?", f.shoes.ID).Error)

	products, err := f.repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 5)
	assert.Equal(t, "Boots", products[1].Name)
	assert.Nil(t, products[1].Category)
}

func TestGORMProductRepository_GetByID(t *testing.T) {
	f := newCatalogFixture(t)

	product, err := f.repo.GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Boots", product.Name)
	assert.Equal(t, "Footwear", *product.Category)

	product, err = f.repo.GetByID(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, product)
}

func TestGORMProductRepository_SearchByName(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	products, err := f.repo.SearchByName(ctx, "sHiRt")
	require.NoError(t, err)
	assert.Equal(t, []string{"Red Shirt", "Red Shirt"}, names(products))

	// Wildcards in the search text match literally
	products, err = f.repo.SearchByName(ctx, "100%")
	require.NoError(t, err)
	assert.Equal(t, []string{"100% Wool Scarf"}, names(products))

	products, err = f.repo.SearchByName(ctx, "_")
	require.NoError(t, err)
	assert.Empty(t, products)

	// Text is bound, never spliced into SQL
	products, err = f.repo.SearchByName(ctx, "'; DROP TABLE products; --")
	require.NoError(t, err)
	assert.Empty(t, products)
	all, err := f.repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestGORMProductRepository_SearchFoldsNonASCII(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	scarf := models.Product{Name: "Écharpe Élégante", Price: decimal.RequireFromString("45.00"), Stock: 2, CategoryID: &f.clothing.ID}
	require.NoError(t, f.repo.Create(ctx, &scarf))

	mock := repositories.NewMockProductRepository()
	require.NoError(t, mock.Create(ctx, &models.Product{Name: "Écharpe Élégante", Price: decimal.RequireFromString("45.00"), Stock: 2}))

	for _, text := range []string{"écharpe", "ÉCHARPE", "élégante"} {
		products, err := f.repo.SearchByName(ctx, text)
		require.NoError(t, err)
		assert.Equalf(t, []string{"Écharpe Élégante"}, names(products), "search %q", text)

		expected, err := mock.SearchByName(ctx, text)
		require.NoError(t, err)
		assert.Lenf(t, products, len(expected), "search %q", text)
	}
}

func TestGORMProductRepository_SearchIsSubsetOfListAll(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	all, err := f.repo.ListAll(ctx)
	require.NoError(t, err)
	for _, text := range []string{"r", "RED", "oo", "zzz", "card"} {
		products, err := f.repo.SearchByName(ctx, text)
		require.NoError(t, err)
		for _, p := range products {
			assert.Contains(t, all, p)
			assert.Containsf(t, lower(p.Name), lower(text), "search %q", text)
		}
	}
}

func TestGORMProductRepository_ListCategories(t *testing.T) {
	f := newCatalogFixture(t)

	categories, err := f.repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Clothing", categories[0].Name)
	assert.Equal(t, "Footwear", categories[1].Name)
}

func TestGORMUserRepository(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMUserRepository(db)
	ctx := context.Background()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = repo.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	exists, err := repo.ExistsByUsernameOrEmail(ctx, "someone", "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsernameOrEmail(ctx, "bob", "bob@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	// Unique index rejects a duplicate username
	err = repo.Create(ctx, &models.User{Username: "alice", Email: "other@example.com", Password: "hash"})
	assert.Error(t, err)
}
