// Package errors carries the error codes and HTTP statuses the booking API
// renders. Handlers never build status codes themselves.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound         = "NOT_FOUND"
	CodeValidation       = "VALIDATION_ERROR"
	CodeConflict         = "CONFLICT"
	CodeInternal         = "INTERNAL_ERROR"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeTooLarge         = "PAYLOAD_TOO_LARGE"
	CodeExternalProvider = "EXTERNAL_PROVIDER_ERROR"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// Validation reports user-fixable input problems. Booking clients expect 400 here.
func Validation(message string, details map[string]any) *AppError {
	e := New(CodeValidation, message, http.StatusBadRequest)
	e.Details = details
	return e
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

// SlotTaken is a conflict on a (date, time) slot. Browser clients only
// distinguish 2xx from 400, so it keeps the 400 status.
func SlotTaken(message string) *AppError {
	return New(CodeConflict, message, http.StatusBadRequest)
}

func TooLarge(message string) *AppError {
	return New(CodeTooLarge, message, http.StatusRequestEntityTooLarge)
}

// ExternalProvider wraps a failure of a third-party API (forecast, speech-to-text).
func ExternalProvider(message string, err error) *AppError {
	e := New(CodeExternalProvider, message, http.StatusInternalServerError)
	e.Err = err
	return e
}

func Internal(message string, err error) *AppError {
	e := New(CodeInternal, message, http.StatusInternalServerError)
	e.Err = err
	return e
}

// AsAppError unwraps err to its AppError, wrapping anything else as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
