package services

import (
	"errors"
	"fmt"

	"cartx/internal/cart"
	"cartx/internal/session"
)

var (
	// ErrStorageUnavailable marks a catalog read that failed or timed out.
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyRegistered  = errors.New("username or email already exists")
)

// UserMessage turns an error from this package into a short message fit for
// display. Storage details are never included.
func UserMessage(err error) string {
	var stockErr *cart.InsufficientStockError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &stockErr):
		return fmt.Sprintf("Only %d items available in stock.", stockErr.Available)
	case errors.Is(err, cart.ErrOutOfStock):
		return "This product is currently out of stock."
	case errors.Is(err, cart.ErrInvalidQuantity):
		return "Quantity must be a whole number of at least 1."
	case errors.Is(err, ErrProductNotFound):
		return "No products found."
	case errors.Is(err, ErrStorageUnavailable):
		return "The catalog is temporarily unavailable. Please try again."
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid username or password"
	case errors.Is(err, ErrAlreadyRegistered):
		return "Username or email already exists."
	case errors.Is(err, session.ErrSessionNotFound):
		return "Your session has ended. Please log in again."
	case errors.Is(err, session.ErrInvalidTransition):
		return "That action is not available here."
	default:
		return "Something went wrong. Please try again."
	}
}
