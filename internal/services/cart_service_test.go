package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"cartx/internal/cart"
	"cartx/internal/models"
	"cartx/internal/repositories"
	"cartx/internal/services"
	"cartx/internal/session"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

func newCartFixture(t *testing.T, publisher services.EventPublisher) (*services.CartService, *repositories.MockProductRepository, *session.Context) {
	t.Helper()
	repo := repositories.NewMockProductRepository()
	ctx := context.Background()

	clothing := &models.Category{Name: "Clothing"}
	require.NoError(t, repo.CreateCategory(ctx, clothing))
	require.NoError(t, repo.Create(ctx, &models.Product{
		ID: "1", Name: "Red Shirt", Price: decimal.RequireFromString("19.99"), Stock: 5, CategoryID: &clothing.ID,
	}))
	require.NoError(t, repo.Create(ctx, &models.Product{
		ID: "2", Name: "Sold Out Hat", Price: decimal.RequireFromString("12.00"), Stock: 0, CategoryID: &clothing.ID,
	}))

	catalog := services.NewCatalogService(repo, nil, 0)
	sess := session.NewStore(0).Create("u1", "alice")
	return services.NewCartService(catalog, publisher, nil), repo, sess
}

func TestCartService_AddProduct(t *testing.T) {
	publisher := new(MockPublisher)
	svc, _, sess := newCartFixture(t, publisher)

	publisher.On("Publish", services.CartEventsExchange, services.EventItemAdded, mock.MatchedBy(func(body []byte) bool {
		var ev models.CartEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return false
		}
		return ev.ProductID == "1" && ev.Quantity == 3 && ev.ItemCount == 3 && ev.Username == "alice"
	})).Return(nil).Once()

	count, err := svc.AddProduct(context.Background(), sess, "1", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, "59.97", svc.Summary(sess).Total.StringFixed(2))

	count, err = svc.AddProduct(context.Background(), sess, "1", 3)
	var stockErr *cart.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 3, count)
	assert.Equal(t, "Only 5 items available in stock.", services.UserMessage(err))
	publisher.AssertExpectations(t)
}

func TestCartService_AddProductUsesLiveStock(t *testing.T) {
	svc, repo, sess := newCartFixture(t, nil)

	_, err := svc.AddProduct(context.Background(), sess, "1", 2)
	require.NoError(t, err)

	repo.SetStock("1", 3)
	_, err = svc.AddProduct(context.Background(), sess, "1", 2)
	var stockErr *cart.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 3, stockErr.Available)
	assert.Equal(t, 2, sess.Cart.ItemCount())
}

func TestCartService_AddProductFailures(t *testing.T) {
	svc, repo, sess := newCartFixture(t, nil)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, sess, "2", 1)
	assert.ErrorIs(t, err, cart.ErrOutOfStock)

	_, err = svc.AddProduct(ctx, sess, "missing", 1)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
	assert.Equal(t, "No products found.", services.UserMessage(err))

	_, err = svc.AddProduct(ctx, sess, "1", 0)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

	repo.Err = errors.New("connection reset")
	_, err = svc.AddProduct(ctx, sess, "1", 1)
	assert.ErrorIs(t, err, services.ErrStorageUnavailable)

	assert.Equal(t, 0, sess.Cart.ItemCount())
}

func TestCartService_AddPending(t *testing.T) {
	svc, _, sess := newCartFixture(t, nil)

	assert.Equal(t, 3, svc.ChangeQuantity(sess, "1", 2))
	count, err := svc.AddPending(context.Background(), sess, "1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 1, sess.Cart.PendingQuantity("1"), "selector resets after a successful add")

	svc.ChangeQuantity(sess, "1", 4)
	_, err = svc.AddPending(context.Background(), sess, "1")
	assert.Error(t, err)
	assert.Equal(t, 5, sess.Cart.PendingQuantity("1"), "selector is kept after a rejected add")
}

func TestCartService_Remove(t *testing.T) {
	publisher := new(MockPublisher)
	svc, _, sess := newCartFixture(t, publisher)

	publisher.On("Publish", services.CartEventsExchange, services.EventItemAdded, mock.Anything).Return(nil).Once()
	publisher.On("Publish", services.CartEventsExchange, services.EventItemRemoved, mock.Anything).Return(errors.New("broker down")).Once()

	_, err := svc.AddProduct(context.Background(), sess, "1", 2)
	require.NoError(t, err)

	summary := svc.Remove(sess, "1")
	assert.Empty(t, summary.Items)
	assert.True(t, summary.Total.IsZero())

	// Removing again publishes nothing
	summary = svc.Remove(sess, "1")
	assert.Equal(t, 0, summary.ItemCount)
	publisher.AssertExpectations(t)
}
