// Package cart holds the per-session shopping cart: committed line items plus
// the pending quantity selectors shown next to each product.
package cart

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"cartx/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrOutOfStock      = errors.New("product is out of stock")
)

// InsufficientStockError is returned when a cart line would exceed the
// product's stock.
type InsufficientStockError struct {
	ProductID string
	Requested int // cumulative quantity the line would have held
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested: %d, available: %d)", e.ProductID, e.Requested, e.Available)
}

// Cart is safe for concurrent use.
type Cart struct {
	mu      sync.Mutex
	items   []models.CartLineItem
	index   map[string]int // product ID -> position in items
	pending map[string]int // product ID -> selector value, absent means 1
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{
		index:   make(map[string]int),
		pending: make(map[string]int),
	}
}

// AddItem adds quantity units of product, merging with an existing line.
// Stock is checked against the cumulative line quantity. The unit price is
// captured when the line is first created. It returns the cart's item count.
func (c *Cart) AddItem(product models.CatalogProduct, quantity int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		return c.itemCount(), ErrInvalidQuantity
	}

	if product.Stock <= 0 {
		return c.itemCount(), ErrOutOfStock
	}

	pos, ok := c.index[product.ID]
	held := 0
	if ok {
		held = c.items[pos].Quantity
	}
	if held+quantity > product.Stock {
		return c.itemCount(), &InsufficientStockError{
			ProductID: product.ID,
			Requested: held + quantity,
			Available: product.Stock,
		}
	}

	if ok {
		c.items[pos].Quantity += quantity
	} else {
		c.index[product.ID] = len(c.items)
		c.items = append(c.items, models.CartLineItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    quantity,
			UnitPrice:   product.Price,
		})
	}
	return c.itemCount(), nil
}

// RemoveItem deletes the line for productID. Removing an absent product is a no-op.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos, ok := c.index[productID]
	if !ok {
		return
	}
	c.items = append(c.items[:pos], c.items[pos+1:]...)
	delete(c.index, productID)
	for i := pos; i < len(c.items); i++ {
		c.index[c.items[i].ProductID] = i
	}
}

// ChangeQuantity moves the pending selector for productID by delta and
// returns the new value, never less than 1.
func (c *Cart) ChangeQuantity(productID string, delta int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := c.pendingQuantity(productID)
	if delta > 0 && q > math.MaxInt-delta {
		q = math.MaxInt
	} else {
		q += delta
	}
	if q < 1 {
		q = 1
	}
	c.pending[productID] = q
	return q
}

// PendingQuantity returns the selector value for productID.
func (c *Cart) PendingQuantity(productID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pendingQuantity(productID)
}

func (c *Cart) pendingQuantity(productID string) int {
	if q, ok := c.pending[productID]; ok {
		return q
	}
	return 1
}

// ResetPending puts the selector for productID back to 1.
func (c *Cart) ResetPending(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.pending, productID)
}

// Total sums quantity × captured unit price over all lines.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, li := range c.items {
		total = total.Add(li.Subtotal())
	}
	return total
}

// ItemCount sums quantities over all lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.itemCount()
}

func (c *Cart) itemCount() int {
	n := 0
	for _, li := range c.items {
		n += li.Quantity
	}
	return n
}

// Quantity returns the committed quantity for productID, 0 when absent.
func (c *Cart) Quantity(productID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pos, ok := c.index[productID]; ok {
		return c.items[pos].Quantity
	}
	return 0
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []models.CartLineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartLineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Summary returns items, count and total taken under a single lock.
func (c *Cart) Summary() models.CartSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]models.CartLineItem, len(c.items))
	copy(items, c.items)
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.Subtotal())
	}
	return models.CartSummary{Items: items, ItemCount: c.itemCount(), Total: total}
}

// Clear empties the cart and all pending selectors.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.index = make(map[string]int)
	c.pending = make(map[string]int)
}
