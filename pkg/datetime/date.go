// Package datetime parses the loose, human-entered calendar dates that reach
// the booking API from the form and from spoken transcripts.
package datetime

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var ErrUnparseableDate = errors.New("unparseable date")

var (
	reOrdinal    = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
	reOfWord     = regexp.MustCompile(`(?i)\bof\b`)
	reSpaces     = regexp.MustCompile(`\s+`)
	reCommaSpace = regexp.MustCompile(`\s*,\s*`)
)

// Tried in order; the first layout that parses wins.
var layouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"Monday, 2 January 2006",
	"Monday 2 January 2006",
	"Monday, January 2, 2006",
	"Mon Jan 2 2006",
}

// ParseDate parses s and returns the calendar day it names, at midnight UTC.
// Any time-of-day or zone component in the input is dropped, the day keeps the
// value written in the input.
func ParseDate(s string) (time.Time, error) {
	cleaned := normalize(s)
	if cleaned == "" {
		return time.Time{}, ErrUnparseableDate
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return Midnight(t), nil
		}
	}
	return time.Time{}, ErrUnparseableDate
}

// Midnight strips the time of day, keeping the calendar day of t in its own location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayRange returns the half-open interval [day 00:00, next day 00:00).
func DayRange(day time.Time) (time.Time, time.Time) {
	start := Midnight(day)
	return start, start.AddDate(0, 0, 1)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".!?")
	s = reOrdinal.ReplaceAllString(s, "$1")
	s = reOfWord.ReplaceAllString(s, " ")
	s = reCommaSpace.ReplaceAllString(s, ", ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
