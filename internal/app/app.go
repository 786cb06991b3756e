// Package app wires configuration, storage, services and HTTP routes into a
// runnable storefront server.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cartx/internal/config"
	"cartx/internal/database"
	"cartx/internal/handlers"
	"cartx/internal/middleware"
	"cartx/internal/repositories"
	"cartx/internal/services"
	"cartx/internal/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App is a configured storefront server.
type App struct {
	Fiber    *fiber.App
	DB       *gorm.DB
	Sessions *session.Store
	Auth     *services.AuthService
	Catalog  *services.CatalogService
	Cart     *services.CartService
}

// New opens the database, optionally seeds the catalog and registers all
// routes. publisher may be nil to disable cart events.
func New(ctx context.Context, cfg *config.Config, publisher services.EventPublisher, log *zap.Logger) (*App, error) {
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, errors.Join(err, database.Close(db))
	}

	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)

	if cfg.SeedCatalog {
		if err := database.Seed(ctx, productRepo, productRepo, log); err != nil {
			return nil, errors.Join(fmt.Errorf("failed to seed catalog: %w", err), database.Close(db))
		}
	}

	a := NewWithRepositories(cfg, productRepo, userRepo, publisher, log)
	a.DB = db
	return a, nil
}

// NewWithRepositories builds the server on top of existing repositories.
func NewWithRepositories(cfg *config.Config, productRepo repositories.ProductRepository, userRepo repositories.UserRepository, publisher services.EventPublisher, log *zap.Logger) *App {
	sessions := session.NewStore(cfg.SessionTTL)

	catalogService := services.NewCatalogService(productRepo, log.Named("catalog"), cfg.QueryTimeout)
	cartService := services.NewCartService(catalogService, publisher, log.Named("cart"))
	authService := services.NewAuthService(userRepo, sessions, cfg.JWTSecret, log.Named("auth"))

	authHandler := handlers.NewAuthHandler(authService, log.Named("auth"))
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	sessionHandler := handlers.NewSessionHandler()

	f := fiber.New()
	f.Use(logger.New())

	f.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"sessions": sessions.Len(),
		})
	})

	apiV1 := f.Group("/api/v1")
	authHandler.RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService, log.Named("middleware")))
	authHandler.RegisterProtectedRoutes(protected)
	sessionHandler.RegisterRoutes(protected)
	catalogHandler.RegisterRoutes(protected)
	cartHandler.RegisterRoutes(protected)

	return &App{
		Fiber:    f,
		Sessions: sessions,
		Auth:     authService,
		Catalog:  catalogService,
		Cart:     cartService,
	}
}

// SweepSessions drops idle sessions every interval until ctx is done.
func (a *App) SweepSessions(ctx context.Context, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := a.Sessions.Sweep(); n > 0 {
				log.Info("expired idle sessions", zap.Int("count", n))
			}
		}
	}
}

// Close shuts the HTTP server down and releases the database.
func (a *App) Close() error {
	var errs []error
	if err := a.Fiber.Shutdown(); err != nil {
		errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
	}
	if a.DB != nil {
		if err := database.Close(a.DB); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
