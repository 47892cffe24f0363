package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"dinebook/internal/dialogue"
	"dinebook/pkg/client"
	"dinebook/pkg/config"
)

const ServiceName = "voice-agent"

func main() {
	cfg := config.Load(ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	booker := client.NewBookingClient(cfg.BookingsAPIURL, cfg.RequestTimeout)
	driver := dialogue.NewDriver(
		dialogue.NewLineRecognizer(os.Stdin),
		dialogue.NewWriterPrompter(os.Stdout),
		booker,
		cfg.Log,
	)

	cfg.Log.Debug("Voice agent started", "bookings_api", cfg.BookingsAPIURL)
	_, result, err := driver.Run(ctx)
	if err != nil {
		cfg.Log.Fatal("Voice booking did not complete", "error", err)
	}
	if result.Booking != nil {
		cfg.Log.Info("Voice booking created", "booking_id", result.Booking.BookingID)
	}
}
