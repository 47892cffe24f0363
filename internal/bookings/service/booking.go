package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"dinebook/internal/bookings/events"
	bookingserrors "dinebook/internal/bookings/errors"
	"dinebook/internal/bookings/repository"
	"dinebook/internal/bookings/validator"
	"dinebook/pkg/config"
	"dinebook/pkg/datetime"
	apperrors "dinebook/pkg/errors"
	"dinebook/pkg/model"

	"github.com/google/uuid"
)

const (
	MsgRequiredFields  = "Name, guests, date and time are required"
	MsgInvalidDate     = "Invalid bookingDate format"
	MsgInvalidDetails  = "Invalid booking details"
	MsgSlotTaken       = "That time slot is already booked on this date. Please choose another time."
	MsgCreated         = "Booking created successfully"
	MsgCreatedFallback = "Your booking has been created successfully."
	MsgCreateFailed    = "Server error creating booking"
	MsgCancelled       = "Booking cancelled successfully"
)

// WeatherAdvisor is implemented by *weather.Client.
type WeatherAdvisor interface {
	Forecast(ctx context.Context, date time.Time, location string) (*model.WeatherInfo, error)
}

type BookingService interface {
	Create(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResult, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	List(ctx context.Context, day *time.Time) ([]*model.Booking, error)
	Cancel(ctx context.Context, id string) error
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	weather   WeatherAdvisor
	publisher events.Publisher
	cfg       *config.Config
	now       func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	weather WeatherAdvisor,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	return &bookingService{
		repo:      repo,
		validator: validator,
		weather:   weather,
		publisher: publisher,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (s *bookingService) Create(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResult, error) {
	s.sanitize(req)

	if req.CustomerName == "" || req.NumberOfGuests == 0 || req.BookingDate == "" || req.BookingTime == "" {
		s.cfg.Log.Warn("Booking rejected, required fields missing")
		return nil, apperrors.Validation(MsgRequiredFields, nil)
	}

	bookingDate, err := datetime.ParseDate(req.BookingDate)
	if err != nil {
		s.cfg.Log.Warn("Booking rejected, unparseable date", "booking_date", req.BookingDate)
		return nil, apperrors.Validation(MsgInvalidDate, map[string]any{"bookingDate": req.BookingDate})
	}

	if err := s.validator.Validate(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			s.cfg.Log.Warn("Booking rejected by validation", "error", err)
			return nil, apperrors.Validation(MsgInvalidDetails, validationErrs.Details())
		}
		return nil, apperrors.Internal(MsgCreateFailed, err)
	}
	bookingTime := normalizeClock(req.BookingTime)

	if err := s.verifySlotFree(ctx, bookingDate, bookingTime); err != nil {
		return nil, err
	}

	weatherInfo := s.lookupWeather(ctx, bookingDate, req.Location)

	booking := &model.Booking{
		BookingID:         uuid.NewString(),
		CustomerName:      req.CustomerName,
		NumberOfGuests:    int(req.NumberOfGuests),
		BookingDate:       bookingDate,
		BookingTime:       bookingTime,
		CuisinePreference: req.CuisinePreference,
		SpecialRequests:   req.SpecialRequests,
		WeatherInfo:       weatherInfo,
		SeatingPreference: resolveSeating(req.SeatingPreference, weatherInfo),
		Location:          req.Location,
		Status:            model.StatusPending,
		CreatedAt:         s.now(),
	}
	if booking.Location == "" {
		booking.Location = s.cfg.DefaultLocation
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrSlotTaken) {
			s.cfg.Log.Warn("Slot claimed concurrently", "slot", booking.SlotKey)
			return nil, slotTakenError()
		}
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, apperrors.Internal(MsgCreateFailed, err)
	}

	voice := MsgCreatedFallback
	if weatherInfo != nil && weatherInfo.VoiceSuggestion != "" {
		voice = weatherInfo.VoiceSuggestion
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.BookingID,
		"booking_date", datetime.FormatDate(booking.BookingDate),
		"booking_time", booking.BookingTime,
		"guests", booking.NumberOfGuests,
		"seating", booking.SeatingPreference,
	)
	s.publish(ctx, events.NewBookingEvent(events.TypeBookingCreated, booking, voice))

	return &model.BookingResult{
		Message:         MsgCreated,
		VoiceSuggestion: voice,
		Booking:         booking,
	}, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFound("Booking")
		}
		s.cfg.Log.Error("Failed to fetch booking", "id", id, "error", err)
		return nil, apperrors.Internal("Server error fetching booking", err)
	}
	return booking, nil
}

func (s *bookingService) List(ctx context.Context, day *time.Time) ([]*model.Booking, error) {
	bookings, err := s.repo.List(ctx, day)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "error", err)
		return nil, apperrors.Internal("Server error fetching bookings", err)
	}
	return bookings, nil
}

// Cancel removes the booking outright. The cancelled status is not used here.
func (s *bookingService) Cancel(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFound("Booking")
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return apperrors.Internal("Server error cancelling booking", err)
	}

	s.cfg.Log.Info("Booking cancelled", "id", id)
	s.publish(ctx, events.NewBookingEvent(events.TypeBookingCancelled, booking, ""))
	return nil
}

func (s *bookingService) verifySlotFree(ctx context.Context, date time.Time, bookingTime string) error {
	existing, err := s.repo.FindBySlot(ctx, date, bookingTime)
	if err == nil && existing != nil {
		s.cfg.Log.Warn("Booking rejected, slot taken",
			"booking_date", datetime.FormatDate(date),
			"booking_time", bookingTime,
			"existing_id", existing.BookingID,
		)
		return slotTakenError()
	}
	if err != nil && !errors.Is(err, bookingserrors.ErrNotFound) {
		s.cfg.Log.Error("Failed to check slot availability", "error", err)
		return apperrors.Internal(MsgCreateFailed, err)
	}
	return nil
}

// lookupWeather never fails the booking; provider errors only drop the advice.
func (s *bookingService) lookupWeather(ctx context.Context, date time.Time, location string) *model.WeatherInfo {
	if s.weather == nil {
		return nil
	}
	info, err := s.weather.Forecast(ctx, date, location)
	if err != nil {
		s.cfg.Log.Warn("Weather lookup failed, continuing without advice",
			"booking_date", datetime.FormatDate(date),
			"location", location,
			"error", err,
		)
		return nil
	}
	return info
}

func (s *bookingService) publish(ctx context.Context, event events.BookingEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"type", event.Type,
			"id", event.BookingID,
			"error", err,
		)
	}
}

func (s *bookingService) sanitize(req *model.CreateBookingRequest) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.BookingDate = strings.TrimSpace(req.BookingDate)
	req.BookingTime = strings.TrimSpace(req.BookingTime)
	req.CuisinePreference = strings.TrimSpace(req.CuisinePreference)
	req.SpecialRequests = strings.TrimSpace(req.SpecialRequests)
	req.Location = strings.TrimSpace(req.Location)
	req.SeatingPreference = strings.ToLower(strings.TrimSpace(req.SeatingPreference))
}

// resolveSeating: an explicit choice wins, then the weather suggestion, then indoor.
func resolveSeating(requested string, weather *model.WeatherInfo) string {
	if requested != "" {
		return requested
	}
	if weather != nil && weather.SeatingSuggestion != "" {
		return weather.SeatingSuggestion
	}
	return model.SeatingIndoor
}

// normalizeClock zero-pads the hour so "8:30" and "08:30" name the same slot.
func normalizeClock(t string) string {
	if len(t) == 4 && t[1] == ':' {
		return "0" + t
	}
	return t
}

func slotTakenError() *apperrors.AppError {
	return apperrors.SlotTaken(MsgSlotTaken)
}
