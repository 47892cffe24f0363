package repository

import (
	"context"
	"testing"
	"time"

	bookingserrors "dinebook/internal/bookings/errors"
	"dinebook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(id string, day int, at string, created time.Time) *model.Booking {
	return &model.Booking{
		BookingID:    id,
		CustomerName: "Guest " + id,
		BookingDate:  time.Date(2025, time.December, day, 0, 0, 0, 0, time.UTC),
		BookingTime:  at,
		Status:       model.StatusPending,
		CreatedAt:    created,
		WeatherInfo:  &model.WeatherInfo{Condition: "sunny"},
	}
}

func TestMemoryRepository_CreateClaimsSlot(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	now := time.Now()

	first := booking("a", 6, "20:00", now)
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, "2025-12-06|20:00", first.SlotKey)

	err := repo.Create(ctx, booking("b", 6, "20:00", now))
	assert.ErrorIs(t, err, bookingserrors.ErrSlotTaken)

	assert.NoError(t, repo.Create(ctx, booking("c", 6, "20:30", now)))
	assert.NoError(t, repo.Create(ctx, booking("d", 7, "20:00", now)))
}

func TestMemoryRepository_FindBySlot(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, booking("a", 6, "20:00", time.Now())))

	got, err := repo.FindBySlot(ctx, time.Date(2025, 12, 6, 21, 45, 0, 0, time.UTC), "20:00")
	require.NoError(t, err)
	assert.Equal(t, "a", got.BookingID)

	_, err = repo.FindBySlot(ctx, time.Date(2025, 12, 6, 0, 0, 0, 0, time.UTC), "19:00")
	assert.ErrorIs(t, err, bookingserrors.ErrNotFound)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	b := booking("a", 6, "20:00", time.Now())
	require.NoError(t, repo.Create(ctx, b))

	b.CustomerName = "mutated"
	got, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Guest a", got.CustomerName)

	got.WeatherInfo.Condition = "rainy"
	again, err := repo.FindByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "sunny", again.WeatherInfo.Condition)
}

func TestMemoryRepository_ListDayRangeAndOrder(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	base := time.Date(2025, 11, 30, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, booking("old", 6, "18:00", base)))
	require.NoError(t, repo.Create(ctx, booking("new", 6, "19:00", base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, booking("prev-day", 5, "19:00", base.Add(2*time.Hour))))
	require.NoError(t, repo.Create(ctx, booking("next-day", 7, "00:00", base.Add(3*time.Hour))))

	day := time.Date(2025, 12, 6, 15, 0, 0, 0, time.UTC)
	got, err := repo.List(ctx, &day)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].BookingID)
	assert.Equal(t, "old", got[1].BookingID)

	all, err := repo.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "next-day", all[0].BookingID)
}

func TestMemoryRepository_DeleteFreesSlot(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, booking("a", 6, "20:00", time.Now())))

	deleted, err := repo.Delete(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", deleted.BookingID)

	_, err = repo.FindByID(ctx, "a")
	assert.ErrorIs(t, err, bookingserrors.ErrNotFound)

	_, err = repo.Delete(ctx, "a")
	assert.ErrorIs(t, err, bookingserrors.ErrNotFound)

	assert.NoError(t, repo.Create(ctx, booking("b", 6, "20:00", time.Now())))
}

func TestMemoryRepository_CancelledContext(t *testing.T) {
	repo := NewMemoryBookingRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Create(ctx, booking("a", 6, "20:00", time.Now())), context.Canceled)
	_, err := repo.List(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
