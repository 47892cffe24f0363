package events

import (
	"context"
	"testing"
	"time"

	"dinebook/pkg/kafka"
	"dinebook/pkg/middleware"
	"dinebook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (f *fakeWriter) Publish(_ context.Context, msg kafka.Message) error {
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func booking() *model.Booking {
	return &model.Booking{
		BookingID:         "b-1",
		CustomerName:      "Asha",
		NumberOfGuests:    4,
		BookingDate:       time.Date(2025, time.December, 6, 0, 0, 0, 0, time.UTC),
		BookingTime:       "20:00",
		SeatingPreference: model.SeatingOutdoor,
		Location:          "Bangalore,IN",
	}
}

func TestNewBookingEvent(t *testing.T) {
	e := NewBookingEvent(TypeBookingCreated, booking(), "Enjoy")

	assert.Equal(t, TypeBookingCreated, e.Type)
	assert.Equal(t, "b-1", e.BookingID)
	assert.Equal(t, "2025-12-06", e.BookingDate)
	assert.Equal(t, "Enjoy", e.VoiceSuggestion)
	assert.False(t, e.OccurredAt.IsZero())
}

func TestKafkaPublisher(t *testing.T) {
	w := &fakeWriter{}
	p := NewKafkaPublisher(w)
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-7")

	require.NoError(t, p.Publish(ctx, NewBookingEvent(TypeBookingCancelled, booking(), "")))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "b-1", msg.Key)
	assert.Equal(t, TypeBookingCancelled, msg.EventType())
	assert.Equal(t, "req-7", msg.Headers[kafka.HeaderCorrelationID])
	assert.Equal(t, SchemaVersion, msg.Headers[kafka.HeaderSchemaVersion])
	assert.Equal(t, Source, msg.Headers[kafka.HeaderSource])

	var decoded BookingEvent
	require.NoError(t, msg.DecodeValue(&decoded))
	assert.Equal(t, "Asha", decoded.CustomerName)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}
