package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	// ErrSlotTaken is returned when another booking already holds the same date and time.
	ErrSlotTaken = errors.New("booking slot already taken")
)
