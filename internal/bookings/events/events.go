// Package events publishes booking lifecycle events for downstream
// consumers such as the guest notifier.
package events

import (
	"context"
	"time"

	"dinebook/pkg/datetime"
	"dinebook/pkg/kafka"
	"dinebook/pkg/middleware"
	"dinebook/pkg/model"
)

const (
	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"

	SchemaVersion = "1"
	Source        = "bookings-service"
)

type BookingEvent struct {
	Type              string    `json:"type"`
	BookingID         string    `json:"bookingId"`
	CustomerName      string    `json:"customerName"`
	NumberOfGuests    int       `json:"numberOfGuests"`
	BookingDate       string    `json:"bookingDate"`
	BookingTime       string    `json:"bookingTime"`
	SeatingPreference string    `json:"seatingPreference"`
	Location          string    `json:"location"`
	VoiceSuggestion   string    `json:"voiceSuggestion,omitempty"`
	OccurredAt        time.Time `json:"occurredAt"`
}

func NewBookingEvent(eventType string, b *model.Booking, voiceSuggestion string) BookingEvent {
	return BookingEvent{
		Type:              eventType,
		BookingID:         b.BookingID,
		CustomerName:      b.CustomerName,
		NumberOfGuests:    b.NumberOfGuests,
		BookingDate:       datetime.FormatDate(b.BookingDate),
		BookingTime:       b.BookingTime,
		SeatingPreference: b.SeatingPreference,
		Location:          b.Location,
		VoiceSuggestion:   voiceSuggestion,
		OccurredAt:        time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event BookingEvent) error
	Close() error
}

// MessageWriter is the subset of *kafka.Producer the publisher needs.
type MessageWriter interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) Publisher {
	return &kafkaPublisher{writer: writer}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event BookingEvent) error {
	msg, err := kafka.NewMessage().
		WithKey(event.BookingID).
		WithValue(event).
		WithEventType(event.Type).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		Build()
	if err != nil {
		return err
	}
	return p.writer.Publish(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher is used when no Kafka brokers are configured.
func NewNoopPublisher() Publisher { return noopPublisher{} }

func (noopPublisher) Publish(context.Context, BookingEvent) error { return nil }
func (noopPublisher) Close() error                                { return nil }
