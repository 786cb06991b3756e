package models

import "github.com/shopspring/decimal"

// CartLineItem represents one product in a cart.
type CartLineItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"` // Price at the time the product was added
}

// Subtotal returns quantity × unit price.
func (li CartLineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// CartSummary is the view of a cart handed to the presentation layer.
type CartSummary struct {
	Items     []CartLineItem  `json:"items"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}

// AddToCartRequest is the body of an add-to-cart call. A zero quantity means 1.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

// CartEvent is published to the message broker when a cart changes.
type CartEvent struct {
	Type      string          `json:"type"` // "cart.item_added" or "cart.item_removed"
	SessionID string          `json:"session_id"`
	Username  string          `json:"username"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	ItemCount int             `json:"item_count"`
	Total     decimal.Decimal `json:"total"`
}
