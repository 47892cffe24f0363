package dialogue

import (
	"context"
	"errors"
	"fmt"
	"io"

	"dinebook/pkg/logger"
	"dinebook/pkg/model"
)

// Recognizer captures one spoken answer. io.EOF means the speaker is gone.
type Recognizer interface {
	Listen(ctx context.Context, prompt string) (string, error)
}

// Prompter speaks a bot line to the user.
type Prompter interface {
	Say(ctx context.Context, text string) error
}

// Booker runs the booking workflow. BookingService and BookingClient both
// satisfy it.
type Booker interface {
	Create(ctx context.Context, req *model.CreateBookingRequest) (*model.BookingResult, error)
}

type Driver struct {
	recognizer Recognizer
	prompter   Prompter
	booker     Booker
	log        *logger.Logger
}

func NewDriver(recognizer Recognizer, prompter Prompter, booker Booker, log *logger.Logger) *Driver {
	return &Driver{
		recognizer: recognizer,
		prompter:   prompter,
		booker:     booker,
		log:        log,
	}
}

// Run walks every step, one capture at a time, then books the table.
// A failed capture is announced and the step is skipped with its field
// unchanged. Only context cancellation or io.EOF stop the loop early.
func (d *Driver) Run(ctx context.Context) (State, *model.BookingResult, error) {
	s := Start()
	for _, m := range s.History {
		if err := d.prompter.Say(ctx, m.Text); err != nil {
			return s, nil, fmt.Errorf("greeting failed: %w", err)
		}
	}

	for !s.Done() {
		step := Steps[s.Step]

		transcript, err := d.recognizer.Listen(ctx, step.Prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return s, nil, fmt.Errorf("%s step aborted: %w", step.Name, err)
			}
			d.log.Warn("Could not capture answer", "step", step.Name, "error", err)
			said := len(s.History)
			s = Skip(s)
			if err := d.sayFrom(ctx, s, said); err != nil {
				return s, nil, err
			}
			continue
		}

		s = Advance(s, transcript)
		d.log.Debug("Dialogue step answered", "step", step.Name)
		if !s.Done() {
			if err := d.prompter.Say(ctx, s.Prompt()); err != nil {
				return s, nil, err
			}
		}
	}

	s, result, err := Complete(ctx, s, d.booker)
	for _, m := range s.History[len(s.History)-2:] {
		if sayErr := d.prompter.Say(ctx, m.Text); sayErr != nil {
			return s, result, sayErr
		}
	}
	if err != nil {
		d.log.Error("Voice booking failed", "error", err)
	}
	return s, result, err
}

// sayFrom speaks the bot lines of s.History starting at index from.
func (d *Driver) sayFrom(ctx context.Context, s State, from int) error {
	for _, m := range s.History[from:] {
		if m.From != SpeakerBot {
			continue
		}
		if err := d.prompter.Say(ctx, m.Text); err != nil {
			return err
		}
	}
	return nil
}

// Complete books the table for a finished dialogue and appends the closing
// lines: the done notice, then either the voice suggestion or the error.
func Complete(ctx context.Context, s State, booker Booker) (State, *model.BookingResult, error) {
	if !s.Done() {
		return s, nil, fmt.Errorf("dialogue not finished, at step %d of %d", s.Step, len(Steps))
	}

	s = s.Say(MsgDone)

	result, err := booker.Create(ctx, s.Fields.Request())
	if err != nil {
		return s.Say(MsgBookingError), nil, err
	}

	text := MsgBooked
	if result != nil && result.VoiceSuggestion != "" {
		text = result.VoiceSuggestion
	}
	return s.Say(text), result, nil
}
