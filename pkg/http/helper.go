package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"dinebook/pkg/datetime"
	apperrors "dinebook/pkg/errors"
)

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return apperrors.TooLarge("Request body too large")
		}
		return apperrors.InvalidInput("Invalid request body")
	}
	return nil
}

// QueryDate reads a calendar-day query parameter. Missing or unparseable
// values yield ok=false so callers can fall back to an unfiltered query.
func QueryDate(r *http.Request, key string) (time.Time, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return time.Time{}, false
	}
	day, err := datetime.ParseDate(raw)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
