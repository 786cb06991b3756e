// Command cart-activity consumes cart events from RabbitMQ and logs them.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cartx/internal/config"
	"cartx/internal/logging"
	"cartx/internal/models"
	"cartx/internal/services"
	"cartx/pkg/rabbitmq"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.RabbitMQURL == "" {
		log.Fatal("RABBITMQ_URL is required")
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	client, err := rabbitmq.NewClient(rabbitmq.Config{
		URL:        cfg.RabbitMQURL,
		Exchange:   services.CartEventsExchange,
		Queue:      "cart_activity",
		BindingKey: "cart.#",
	}, logger.Named("rabbitmq"))
	if err != nil {
		logger.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		logger.Info("shutting down consumer")
		client.Close()
	}()

	logger.Info("waiting for cart events")
	if err := client.Consume("cart-activity", handleEvent(logger)); err != nil {
		logger.Fatal("consumer stopped", zap.Error(err))
	}
}

func handleEvent(logger *zap.Logger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		var ev models.CartEvent
		if err := json.Unmarshal(msg.Body, &ev); err != nil {
			return fmt.Errorf("decode cart event: %w", err)
		}
		logger.Info("cart event",
			zap.String("type", ev.Type),
			zap.String("session_id", ev.SessionID),
			zap.String("username", ev.Username),
			zap.String("product_id", ev.ProductID),
			zap.Int("quantity", ev.Quantity),
			zap.Int("item_count", ev.ItemCount),
			zap.String("total", ev.Total.StringFixed(2)))
		return nil
	}
}
