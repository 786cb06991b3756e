package services

import (
	"context"
	"encoding/json"
	"fmt"

	"cartx/internal/models"
	"cartx/internal/session"

	"go.uber.org/zap"
)

const (
	// CartEventsExchange is the topic exchange cart events are published to.
	CartEventsExchange = "cart_events"

	EventItemAdded   = "cart.item_added"
	EventItemRemoved = "cart.item_removed"
)

// EventPublisher delivers cart events to a broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CartService drives a session's cart from catalog data.
type CartService struct {
	catalog   *CatalogService
	publisher EventPublisher // optional
	logger    *zap.Logger
}

// NewCartService creates a new CartService. publisher may be nil.
func NewCartService(catalog *CatalogService, publisher EventPublisher, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		catalog:   catalog,
		publisher: publisher,
		logger:    logger,
	}
}

// AddProduct re-reads the product so stock is validated against current
// inventory, then adds quantity units to the session's cart. It returns the
// cart's item count.
func (s *CartService) AddProduct(ctx context.Context, sess *session.Context, productID string, quantity int) (int, error) {
	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		return sess.Cart.ItemCount(), err
	}
	if product == nil {
		return sess.Cart.ItemCount(), fmt.Errorf("product %s: %w", productID, ErrProductNotFound)
	}

	count, err := sess.Cart.AddItem(*product, quantity)
	if err != nil {
		s.logger.Info("add to cart rejected",
			zap.String("session_id", sess.ID),
			zap.String("product_id", productID),
			zap.Int("quantity", quantity),
			zap.Error(err))
		return count, err
	}

	s.logger.Info("added to cart",
		zap.String("session_id", sess.ID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("item_count", count))
	s.publish(sess, EventItemAdded, productID, quantity)
	return count, nil
}

// AddPending commits the product's pending selector value and resets the
// selector to 1 on success.
func (s *CartService) AddPending(ctx context.Context, sess *session.Context, productID string) (int, error) {
	quantity := sess.Cart.PendingQuantity(productID)
	count, err := s.AddProduct(ctx, sess, productID, quantity)
	if err != nil {
		return count, err
	}
	sess.Cart.ResetPending(productID)
	return count, nil
}

// ChangeQuantity adjusts the pending selector for productID.
func (s *CartService) ChangeQuantity(sess *session.Context, productID string, delta int) int {
	return sess.Cart.ChangeQuantity(productID, delta)
}

// Remove drops the product's line from the cart, if any.
func (s *CartService) Remove(sess *session.Context, productID string) models.CartSummary {
	held := sess.Cart.Quantity(productID)
	sess.Cart.RemoveItem(productID)
	if held > 0 {
		s.publish(sess, EventItemRemoved, productID, held)
	}
	return sess.Cart.Summary()
}

// Summary returns the session's cart contents and totals.
func (s *CartService) Summary(sess *session.Context) models.CartSummary {
	return sess.Cart.Summary()
}

func (s *CartService) publish(sess *session.Context, eventType, productID string, quantity int) {
	if s.publisher == nil {
		return
	}

	summary := sess.Cart.Summary()
	body, err := json.Marshal(models.CartEvent{
		Type:      eventType,
		SessionID: sess.ID,
		Username:  sess.Username,
		ProductID: productID,
		Quantity:  quantity,
		ItemCount: summary.ItemCount,
		Total:     summary.Total,
	})
	if err != nil {
		s.logger.Error("failed to marshal cart event", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(CartEventsExchange, eventType, body); err != nil {
		s.logger.Warn("failed to publish cart event",
			zap.String("event", eventType),
			zap.String("session_id", sess.ID),
			zap.Error(err))
	}
}
