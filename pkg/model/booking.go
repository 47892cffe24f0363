package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dinebook/pkg/datetime"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"

	SeatingIndoor  = "indoor"
	SeatingOutdoor = "outdoor"
)

type Booking struct {
	BookingID         string       `json:"bookingId" bson:"_id"`
	CustomerName      string       `json:"customerName" bson:"customer_name"`
	NumberOfGuests    int          `json:"numberOfGuests" bson:"number_of_guests"`
	BookingDate       time.Time    `json:"bookingDate" bson:"booking_date"`
	BookingTime       string       `json:"bookingTime" bson:"booking_time"`
	SlotKey           string       `json:"-" bson:"slot_key"`
	CuisinePreference string       `json:"cuisinePreference" bson:"cuisine_preference"`
	SpecialRequests   string       `json:"specialRequests" bson:"special_requests"`
	WeatherInfo       *WeatherInfo `json:"weatherInfo,omitempty" bson:"weather_info,omitempty"`
	SeatingPreference string       `json:"seatingPreference" bson:"seating_preference"`
	Location          string       `json:"location" bson:"location"`
	Status            string       `json:"status" bson:"status"`
	CreatedAt         time.Time    `json:"createdAt" bson:"created_at"`
}

// WeatherInfo is the forecast summary attached to a booking at creation time.
type WeatherInfo struct {
	Condition         string     `json:"condition" bson:"condition"`
	RawCondition      string     `json:"rawCondition" bson:"raw_condition"`
	Description       string     `json:"description" bson:"description"`
	Temperature       float64    `json:"temperature" bson:"temperature"`
	SeatingSuggestion string     `json:"seatingSuggestion" bson:"seating_suggestion"`
	VoiceSuggestion   string     `json:"voiceSuggestion" bson:"voice_suggestion"`
	Raw               WeatherRaw `json:"raw" bson:"raw"`
}

type WeatherRaw struct {
	DtTxt string `json:"dt_txt" bson:"dt_txt"`
}

type CreateBookingRequest struct {
	CustomerName      string     `json:"customerName" validate:"required,max=100"`
	NumberOfGuests    GuestCount `json:"numberOfGuests" validate:"required,min=1"`
	BookingDate       string     `json:"bookingDate" validate:"required"`
	BookingTime       string     `json:"bookingTime" validate:"required,hhmm"`
	CuisinePreference string     `json:"cuisinePreference" validate:"required,max=50"`
	SpecialRequests   string     `json:"specialRequests,omitempty" validate:"max=500"`
	Location          string     `json:"location,omitempty" validate:"max=100"`
	SeatingPreference string     `json:"seatingPreference,omitempty" validate:"omitempty,seating"`
}

// GuestCount accepts both 4 and "4"; HTML form fields post numbers as strings.
type GuestCount int

func (g *GuestCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*g = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*g = 0
			return nil
		}
		data = []byte(s)
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("numberOfGuests must be a whole number")
	}
	*g = GuestCount(n)
	return nil
}

type BookingResult struct {
	Message         string   `json:"message"`
	VoiceSuggestion string   `json:"voiceSuggestion"`
	Booking         *Booking `json:"booking"`
}

// SlotKey identifies a bookable (date, time) pair. Two live bookings never share one.
func SlotKey(date time.Time, bookingTime string) string {
	return datetime.FormatDate(date) + "|" + bookingTime
}
