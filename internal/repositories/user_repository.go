package repositories

import (
	"context"

	"cartx/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// ExistsByUsernameOrEmail reports whether either value is already registered.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
