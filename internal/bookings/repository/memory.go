package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	bookingserrors "dinebook/internal/bookings/errors"
	"dinebook/pkg/datetime"
	"dinebook/pkg/model"
)

// memoryBookingRepository mirrors the Mongo collection, including its unique
// slot index. Callers always receive copies.
type memoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*model.Booking
	slots    map[string]string
}

func NewMemoryBookingRepository() BookingRepository {
	return &memoryBookingRepository{
		bookings: make(map[string]*model.Booking),
		slots:    make(map[string]string),
	}
}

func (r *memoryBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	booking.SlotKey = model.SlotKey(booking.BookingDate, booking.BookingTime)
	if _, taken := r.slots[booking.SlotKey]; taken {
		return bookingserrors.ErrSlotTaken
	}

	stored := clone(booking)
	r.bookings[stored.BookingID] = stored
	r.slots[stored.SlotKey] = stored.BookingID
	return nil
}

func (r *memoryBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	return clone(b), nil
}

func (r *memoryBookingRepository) FindBySlot(ctx context.Context, date time.Time, bookingTime string) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.slots[model.SlotKey(datetime.Midnight(date), bookingTime)]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	b := r.bookings[id]
	if b.Status == model.StatusCancelled {
		return nil, bookingserrors.ErrNotFound
	}
	return clone(b), nil
}

func (r *memoryBookingRepository) List(ctx context.Context, day *time.Time) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var start, end time.Time
	if day != nil {
		start, end = datetime.DayRange(*day)
	}

	r.mu.RLock()
	result := make([]*model.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		if day != nil && (b.BookingDate.Before(start) || !b.BookingDate.Before(end)) {
			continue
		}
		result = append(result, clone(b))
	}
	r.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memoryBookingRepository) Delete(ctx context.Context, id string) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	delete(r.bookings, id)
	if r.slots[b.SlotKey] == id {
		delete(r.slots, b.SlotKey)
	}
	return b, nil
}

func clone(b *model.Booking) *model.Booking {
	c := *b
	if b.WeatherInfo != nil {
		w := *b.WeatherInfo
		c.WeatherInfo = &w
	}
	return &c
}
