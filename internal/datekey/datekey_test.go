package datekey

import (
	"errors"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2025-06-15", "2025-06-15"},
		{"2025-06-15T00:00:00Z", "2025-06-15"},
		{"2025-06-15T23:59:59Z", "2025-06-15"},
		// +02:00 just past midnight is still the previous day in UTC
		{"2025-06-15T01:30:00+02:00", "2025-06-14"},
		{"2025-12-31T23:00:00-05:00", "2026-01-01"},
		{"2025-06-15T12:00:00", "2025-06-15"},
		{"2025-06-15 12:00:00", "2025-06-15"},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.input)
		if err != nil {
			t.Errorf("Normalize(%q) error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"2025-06-15", "2025-06-15T18:30:00Z", "2024-02-29"}
	for _, input := range inputs {
		once, err := Normalize(input)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", input, err)
		}
		twice, err := Normalize(once)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", once, err)
		}
		if once != twice {
			t.Errorf("Normalize not idempotent: %q -> %q -> %q", input, once, twice)
		}
	}
}

func TestNormalizeInvalid(t *testing.T) {
	inputs := []string{"", "yesterday", "15/06/2025", "2025-13-40"}
	for _, input := range inputs {
		_, err := Normalize(input)
		if err == nil {
			t.Errorf("Normalize(%q) expected error, got nil", input)
			continue
		}
		var invalid *InvalidDateError
		if !errors.As(err, &invalid) {
			t.Errorf("Normalize(%q) error type = %T, want *InvalidDateError", input, err)
		}
	}
}

func TestFromTime(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 07:30 on the 16th in UTC+9 is 22:30 on the 15th in UTC
	moment := time.Date(2025, 6, 16, 7, 30, 0, 0, loc)
	if got := FromTime(moment); got != "2025-06-15" {
		t.Errorf("FromTime = %q, want 2025-06-15", got)
	}
}

func TestParseRoundTrip(t *testing.T) {
	key := "2025-06-09"
	parsed, err := Parse(key)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := FromTime(parsed); got != key {
		t.Errorf("round trip = %q, want %q", got, key)
	}
	if _, err := Parse("not-a-date"); err == nil {
		t.Error("Parse of garbage expected error")
	}
}

func TestFixedClock(t *testing.T) {
	clock := Fixed("2025-06-15")
	if got := clock.TodayKey(); got != "2025-06-15" {
		t.Errorf("Fixed.TodayKey = %q", got)
	}
}
