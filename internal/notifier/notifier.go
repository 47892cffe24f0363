// Package notifier turns booking events into guest notifications.
package notifier

import (
	"context"
	"fmt"

	"dinebook/internal/bookings/events"
	"dinebook/pkg/kafka"
	"dinebook/pkg/logger"
)

// Sender delivers a notification line to a guest.
type Sender interface {
	Send(ctx context.Context, bookingID, text string) error
}

// LogSender writes notifications to the service log.
type LogSender struct {
	Log *logger.Logger
}

func (s LogSender) Send(_ context.Context, bookingID, text string) error {
	s.Log.Info("Guest notification", "booking_id", bookingID, "text", text)
	return nil
}

// Handler consumes booking events. Malformed or unknown events are
// permanent failures and are never retried.
func Handler(sender Sender, log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event events.BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.Permanent(fmt.Errorf("invalid booking event: %w", err))
		}
		if event.Type == "" {
			event.Type = msg.EventType()
		}

		text, err := Render(event)
		if err != nil {
			return kafka.Permanent(err)
		}

		log.Debug("Booking event received",
			"event_id", msg.EventID(),
			"event_type", event.Type,
			"booking_id", event.BookingID,
		)
		return sender.Send(ctx, event.BookingID, text)
	}
}

// Render builds the guest-facing line for an event.
func Render(e events.BookingEvent) (string, error) {
	switch e.Type {
	case events.TypeBookingCreated:
		text := fmt.Sprintf("Hi %s, your table for %d on %s at %s is booked (%s seating).",
			e.CustomerName, e.NumberOfGuests, e.BookingDate, e.BookingTime, e.SeatingPreference)
		if e.VoiceSuggestion != "" {
			text += " " + e.VoiceSuggestion
		}
		return text, nil
	case events.TypeBookingCancelled:
		return fmt.Sprintf("Hi %s, your booking on %s at %s has been cancelled.",
			e.CustomerName, e.BookingDate, e.BookingTime), nil
	default:
		return "", fmt.Errorf("unknown event type %q", e.Type)
	}
}
