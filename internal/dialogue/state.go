// Package dialogue collects booking fields through a fixed sequence of
// spoken questions and hands the result to the booking workflow.
package dialogue

import (
	"dinebook/pkg/model"
)

const (
	SpeakerBot  = "bot"
	SpeakerUser = "user"
)

const (
	MsgWelcome      = "Welcome to our restaurant booking system. Click Start Voice Booking to begin."
	MsgIntro        = "Okay, I will ask you a few questions for your booking."
	MsgDone         = "Thank you. I have filled the booking form with your answers. I will now confirm your booking."
	MsgBookingError = "Sorry, I could not create your booking due to an error."
	MsgNotHeard     = "Sorry, I could not understand. Please click Answer with Voice and try again."
	MsgBooked       = "Your booking has been created successfully."
)

const (
	DefaultGuests   = 2
	DefaultCuisine  = "Indian"
	DefaultLocation = "Bangalore,IN"
)

// Fields mirrors the booking form.
type Fields struct {
	CustomerName      string `json:"customerName"`
	NumberOfGuests    int    `json:"numberOfGuests"`
	BookingDate       string `json:"bookingDate"`
	BookingTime       string `json:"bookingTime"`
	CuisinePreference string `json:"cuisinePreference"`
	SpecialRequests   string `json:"specialRequests"`
	Location          string `json:"location"`
}

func DefaultFields() Fields {
	return Fields{
		NumberOfGuests:    DefaultGuests,
		CuisinePreference: DefaultCuisine,
		Location:          DefaultLocation,
	}
}

// Request converts the collected fields into a booking request.
func (f Fields) Request() *model.CreateBookingRequest {
	return &model.CreateBookingRequest{
		CustomerName:      f.CustomerName,
		NumberOfGuests:    model.GuestCount(f.NumberOfGuests),
		BookingDate:       f.BookingDate,
		BookingTime:       f.BookingTime,
		CuisinePreference: f.CuisinePreference,
		SpecialRequests:   f.SpecialRequests,
		Location:          f.Location,
	}
}

// Step asks one question and applies the answer to the fields. Apply
// reports false when the transcript held nothing usable.
type Step struct {
	Name   string
	Prompt string
	Apply  func(f *Fields, transcript string) bool
}

func NewStep(name, prompt string, apply func(f *Fields, transcript string) bool) Step {
	return Step{Name: name, Prompt: prompt, Apply: apply}
}

// Steps is the fixed question order.
var Steps = []Step{
	NewStep("name", "What is your name?", func(f *Fields, t string) bool {
		v, ok := ParseName(t)
		if ok {
			f.CustomerName = v
		}
		return ok
	}),
	NewStep("guests", "How many guests should I book the table for?", func(f *Fields, t string) bool {
		v, ok := ParseGuests(t)
		if ok {
			f.NumberOfGuests = v
		}
		return ok
	}),
	NewStep("date", "On which date would you like to book? For example, say 6 December 2025.", func(f *Fields, t string) bool {
		v, ok := ParseDate(t)
		if ok {
			f.BookingDate = v
		}
		return ok
	}),
	NewStep("time", "At what time? For example, say 8 p.m. or 20 00.", func(f *Fields, t string) bool {
		v, ok := ParseTime(t)
		if ok {
			f.BookingTime = v
		}
		return ok
	}),
	NewStep("cuisine", "What cuisine would you like? For example, Indian, Italian, Chinese, Mexican or Thai.", func(f *Fields, t string) bool {
		v, ok := ParseCuisine(t)
		if ok {
			f.CuisinePreference = v
		}
		return ok
	}),
	NewStep("special", "Any special requests like birthday, anniversary or dietary preferences?", func(f *Fields, t string) bool {
		v, ok := ParseText(t)
		if ok {
			f.SpecialRequests = v
		}
		return ok
	}),
	NewStep("location", "Which city should I use for weather? For example, Bangalore India or Mangalore India.", func(f *Fields, t string) bool {
		v, ok := ParseText(t)
		if ok {
			f.Location = v
		}
		return ok
	}),
}

type Message struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// State is the whole dialogue. It is a value: transitions return a new
// State and never touch the one passed in.
type State struct {
	Step    int       `json:"step"`
	Fields  Fields    `json:"fields"`
	History []Message `json:"history"`
}

// Start returns a fresh dialogue with the greeting and the first prompt.
func Start() State {
	return State{
		Fields: DefaultFields(),
		History: []Message{
			{From: SpeakerBot, Text: MsgWelcome},
			{From: SpeakerBot, Text: MsgIntro},
			{From: SpeakerBot, Text: Steps[0].Prompt},
		},
	}
}

// Done reports whether every question has been answered.
func (s State) Done() bool {
	return s.Step >= len(Steps)
}

// Prompt is the question currently awaiting an answer, or "" when done.
func (s State) Prompt() string {
	if s.Step < 0 || s.Done() {
		return ""
	}
	return Steps[s.Step].Prompt
}

// Advance records the transcript as the answer to the current step and
// moves on. A transcript the parser cannot use leaves the field as it was.
func Advance(s State, transcript string) State {
	if s.Step < 0 {
		s.Step = 0
	}
	if s.Done() {
		return s
	}

	next := State{
		Step:    s.Step + 1,
		Fields:  s.Fields,
		History: make([]Message, len(s.History), len(s.History)+2),
	}
	copy(next.History, s.History)

	if transcript != "" {
		next.History = append(next.History, Message{From: SpeakerUser, Text: transcript})
	}
	Steps[s.Step].Apply(&next.Fields, transcript)

	if !next.Done() {
		next.History = append(next.History, Message{From: SpeakerBot, Text: next.Prompt()})
	}
	return next
}

// Skip moves past the current step without an answer, as when the
// recognizer failed to hear anything.
func Skip(s State) State {
	if s.Done() {
		return s
	}
	next := State{
		Step:    s.Step,
		Fields:  s.Fields,
		History: make([]Message, len(s.History), len(s.History)+2),
	}
	copy(next.History, s.History)
	next.History = append(next.History, Message{From: SpeakerBot, Text: MsgNotHeard})
	return Advance(next, "")
}

// Say appends a bot line to a copy of the history.
func (s State) Say(text string) State {
	h := make([]Message, len(s.History), len(s.History)+1)
	copy(h, s.History)
	s.History = append(h, Message{From: SpeakerBot, Text: text})
	return s
}
