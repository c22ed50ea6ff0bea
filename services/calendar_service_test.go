package services

import (
	"testing"

	"showUpAPI/internal/datekey"
)

func TestCurrentMonthFollowsClock(t *testing.T) {
	tests := []struct {
		today string
		year  int
		month int
	}{
		{"2025-06-15", 2025, 6},
		{"2024-12-31", 2024, 12},
		{"2026-01-01", 2026, 1},
	}

	for _, tt := range tests {
		svc := NewCalendarService(nil, datekey.Fixed(tt.today))
		year, month, err := svc.CurrentMonth()
		if err != nil {
			t.Fatalf("CurrentMonth(%s) error: %v", tt.today, err)
		}
		if year != tt.year || month != tt.month {
			t.Errorf("CurrentMonth(%s) = %d, %d, want %d, %d", tt.today, year, month, tt.year, tt.month)
		}
	}
}

func TestCurrentMonthBadClock(t *testing.T) {
	svc := NewCalendarService(nil, datekey.Fixed("not-a-date"))
	if _, _, err := svc.CurrentMonth(); err == nil {
		t.Error("expected an error from an unparseable clock value")
	}
}
