package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"dinebook/internal/notifier"
	"dinebook/pkg/config"
	"dinebook/pkg/kafka"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)
	if !cfg.EventsEnabled() {
		cfg.Log.Fatal("KAFKA_BROKERS must be set for the notifier")
	}

	handler := notifier.Handler(notifier.LogSender{Log: cfg.Log}, cfg.Log)
	consumer, err := kafka.NewConsumer(
		kafka.DefaultOptions(cfg.KafkaBrokers, cfg.Log),
		cfg.KafkaBookingsTopic,
		cfg.KafkaGroupID,
		handler,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting notifier", "topic", cfg.KafkaBookingsTopic, "group_id", cfg.KafkaGroupID)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped")
}
