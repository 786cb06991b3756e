package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cartx/internal/app"
	"cartx/internal/config"
	"cartx/internal/logging"
	"cartx/internal/services"
	"cartx/pkg/rabbitmq"

	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Cart events (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:        cfg.RabbitMQURL,
			Exchange:   services.CartEventsExchange,
			Queue:      "cart_activity",
			BindingKey: "cart.#",
		}, logger.Named("rabbitmq"))
		if err != nil {
			logger.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		logger.Info("RABBITMQ_URL not set, cart events disabled")
	}

	// --- Storage, services, routes ---
	a, err := app.New(ctx, cfg, publisher, logger)
	if err != nil {
		logger.Fatal("failed to build app", zap.Error(err))
	}

	if cfg.SessionTTL > 0 {
		go a.SweepSessions(ctx, cfg.SessionTTL/4, logger.Named("sessions"))
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.AppPort), zap.String("db_driver", cfg.DBDriver))
		if err := a.Fiber.Listen(cfg.AppPort); err != nil {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownDone := make(chan error, 1)
	go func() { shutdownDone <- a.Close() }()
	select {
	case err := <-shutdownDone:
		if err != nil {
			logger.Error("error during shutdown", zap.Error(err))
		}
	case <-time.After(10 * time.Second):
		logger.Warn("shutdown timed out")
	}
	logger.Info("server gracefully stopped")
}
