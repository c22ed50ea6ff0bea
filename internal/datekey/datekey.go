// Package datekey owns the calendar-day identity used everywhere a log
// says "which day". A date key is always YYYY-MM-DD computed in UTC, so a
// completion never shifts days depending on where the process runs.
package datekey

import (
	"fmt"
	"time"
)

const Layout = "2006-01-02"

// InvalidDateError reports input the normalizer could not parse.
type InvalidDateError struct {
	Input string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %q", e.Input)
}

// layouts accepted by Normalize, tried in order. Date-only input first
// since that is what clients send; the rest cover timestamps coming back
// from Postgres or mobile clients.
var layouts = []string{
	Layout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Normalize reduces any supported date or timestamp string to a UTC date
// key. Idempotent: normalizing an already-normalized key returns it
// unchanged.
func Normalize(input string) (string, error) {
	for _, layout := range layouts {
		t, err := time.Parse(layout, input)
		if err == nil {
			return t.UTC().Format(Layout), nil
		}
	}
	return "", &InvalidDateError{Input: input}
}

// FromTime returns the UTC date key for a moment in time.
func FromTime(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Parse turns a date key back into a UTC midnight time. The input must
// already be a normalized key.
func Parse(key string) (time.Time, error) {
	t, err := time.Parse(Layout, key)
	if err != nil {
		return time.Time{}, &InvalidDateError{Input: key}
	}
	return t, nil
}

// Clock supplies "today" so handlers and services never read the ambient
// clock directly. Tests swap in a Fixed clock to pin week boundaries.
type Clock interface {
	TodayKey() string
}

// UTC is the production clock.
type UTC struct{}

func (UTC) TodayKey() string {
	return FromTime(time.Now())
}

// Fixed always reports the same date key.
type Fixed string

func (f Fixed) TodayKey() string {
	return string(f)
}
