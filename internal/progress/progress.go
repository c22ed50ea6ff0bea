// Package progress is the single source of truth for "how is this habit
// doing this week". Every surface (dashboard, calendar, widgets, the
// mobile app) consumes Aggregate output; nothing downstream recomputes
// targets. Pure computation, no I/O, safe for concurrent use.
package progress

import (
	"math"

	"showUpAPI/internal/datekey"
)

// Recurrence frequencies a habit can carry. Anything else scores a weekly
// target of 0 and is reported in diagnostics, never rejected.
const (
	FreqDaily           = "daily"
	FreqEveryOtherDay   = "every-other-day"
	FreqTwiceAWeek      = "twice-a-week"
	FreqThreeTimesAWeek = "three-times-a-week"
	FreqWeekly          = "weekly"
	FreqWeekdays        = "weekdays"
	FreqWeekends        = "weekends"
	FreqMonthly         = "monthly"
)

// weeklyTargets maps a frequency to the number of completions expected in
// one Monday-aligned week. Monthly is 0.25 (one completion per four-ish
// weeks) but is excluded from the weekly aggregate sums below.
var weeklyTargets = map[string]float64{
	FreqDaily:           7,
	FreqEveryOtherDay:   4,
	FreqTwiceAWeek:      2,
	FreqThreeTimesAWeek: 3,
	FreqWeekly:          1,
	FreqWeekdays:        5,
	FreqWeekends:        2,
	FreqMonthly:         0.25,
}

// Habit is the slice of a habit record the engine needs, plus display
// fields carried through untouched.
type Habit struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Frequency string `json:"frequency"`
	Color     string `json:"color,omitempty"`
}

// LogEntry is one per-day completion record. Date is a normalized date key.
type LogEntry struct {
	HabitID   string `json:"habit_id"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// Window is a half-open date-key range [Start, End).
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains reports whether a date key falls inside the window. Date keys
// compare correctly as strings.
func (w Window) Contains(key string) bool {
	return key >= w.Start && key < w.End
}

// HabitProgress is the per-habit view model.
type HabitProgress struct {
	Habit
	WeeklyTarget       float64  `json:"weekly_target"`
	WeeklyCompleted    int      `json:"weekly_completed"`
	RemainingThisWeek  *float64 `json:"remaining_this_week,omitempty"`
	RemainingThisMonth *float64 `json:"remaining_this_month,omitempty"`
	CompletedToday     bool     `json:"completed_today"`
	CountsInAggregate  bool     `json:"counts_in_aggregate"`
}

// Summary is the weekly aggregate across all of a user's habits.
type Summary struct {
	Window          Window          `json:"window"`
	TotalTarget     float64         `json:"total_target"`
	TotalCompleted  float64         `json:"total_completed"`
	ProgressPercent float64         `json:"progress_percent"`
	Habits          []HabitProgress `json:"habits"`
}

// Diagnostics reports recoverable anomalies. Skipped entries are counted,
// never silently dropped; unrecognized frequencies are listed by habit ID.
type Diagnostics struct {
	SkippedLogs             int      `json:"skipped_logs"`
	UnrecognizedFrequencies []string `json:"unrecognized_frequencies,omitempty"`
}

// WeeklyTarget looks up the weekly multiplier for a frequency.
// Unrecognized values return 0.
func WeeklyTarget(frequency string) float64 {
	return weeklyTargets[frequency]
}

// Recognized reports whether a frequency is in the multiplier table.
func Recognized(frequency string) bool {
	_, ok := weeklyTargets[frequency]
	return ok
}

// WeekWindow returns the Monday-aligned ISO week containing today:
// [Monday, next Monday). A Monday today starts its own window; a Sunday
// belongs to the window that started six days earlier.
func WeekWindow(todayKey string) (Window, error) {
	today, err := datekey.Parse(todayKey)
	if err != nil {
		return Window{}, err
	}
	daysSinceMonday := (int(today.Weekday()) + 6) % 7
	start := today.AddDate(0, 0, -daysSinceMonday)
	end := start.AddDate(0, 0, 7)
	return Window{Start: datekey.FromTime(start), End: datekey.FromTime(end)}, nil
}

// monthWindow is the calendar month containing today, half-open.
func monthWindow(todayKey string) (Window, error) {
	today, err := datekey.Parse(todayKey)
	if err != nil {
		return Window{}, err
	}
	start := today.AddDate(0, 0, 1-today.Day())
	end := start.AddDate(0, 1, 0)
	return Window{Start: datekey.FromTime(start), End: datekey.FromTime(end)}, nil
}

// WeeklyCompletedCount counts distinct completed dates for a habit inside
// the window. Logs are keyed by day upstream, but distinctness is enforced
// here anyway so a misbehaving caller cannot inflate the count.
func WeeklyCompletedCount(habitID string, logs []LogEntry, w Window) int {
	seen := make(map[string]struct{})
	for _, entry := range logs {
		if entry.HabitID != habitID || !entry.Completed {
			continue
		}
		if !w.Contains(entry.Date) {
			continue
		}
		seen[entry.Date] = struct{}{}
	}
	return len(seen)
}

// RemainingThisWeek clamps target minus completed to zero. Never negative.
func RemainingThisWeek(target float64, completed int) float64 {
	return math.Max(target-float64(completed), 0)
}

// CompletedOn reports whether the habit has a completed log for the date.
func CompletedOn(habitID string, logs []LogEntry, dateKey string) bool {
	for _, entry := range logs {
		if entry.HabitID == habitID && entry.Date == dateKey && entry.Completed {
			return true
		}
	}
	return false
}

// Aggregate computes the weekly summary for a set of habits from a lookback
// window of logs. Callers may pass more history than the current week; the
// engine filters. Monthly habits are listed with a remaining-this-month
// figure but stay out of the weekly sums, as do habits with unrecognized
// frequencies. Malformed log entries (missing habit id or a date that does
// not normalize) are skipped and counted in diagnostics.
func Aggregate(habits []Habit, logs []LogEntry, todayKey string) (Summary, Diagnostics, error) {
	week, err := WeekWindow(todayKey)
	if err != nil {
		return Summary{}, Diagnostics{}, err
	}
	month, err := monthWindow(todayKey)
	if err != nil {
		return Summary{}, Diagnostics{}, err
	}

	var diag Diagnostics
	clean := make([]LogEntry, 0, len(logs))
	for _, entry := range logs {
		if entry.HabitID == "" {
			diag.SkippedLogs++
			continue
		}
		normalized, err := datekey.Normalize(entry.Date)
		if err != nil {
			diag.SkippedLogs++
			continue
		}
		entry.Date = normalized
		clean = append(clean, entry)
	}

	summary := Summary{
		Window: week,
		Habits: make([]HabitProgress, 0, len(habits)),
	}

	for _, habit := range habits {
		target := WeeklyTarget(habit.Frequency)
		completed := WeeklyCompletedCount(habit.ID, clean, week)
		hp := HabitProgress{
			Habit:           habit,
			WeeklyTarget:    target,
			WeeklyCompleted: completed,
			CompletedToday:  CompletedOn(habit.ID, clean, todayKey),
		}

		switch {
		case !Recognized(habit.Frequency):
			diag.UnrecognizedFrequencies = append(diag.UnrecognizedFrequencies, habit.ID)
		case habit.Frequency == FreqMonthly:
			// Monthly habits get a whole-month remaining figure instead of
			// a fractional weekly one, and stay out of the weekly sums.
			monthly := WeeklyCompletedCount(habit.ID, clean, month)
			remaining := math.Max(1-float64(monthly), 0)
			hp.RemainingThisMonth = &remaining
		default:
			remaining := RemainingThisWeek(target, completed)
			hp.RemainingThisWeek = &remaining
			hp.CountsInAggregate = true
			summary.TotalTarget += target
			// Cap each habit's contribution at its own target so
			// over-completing one habit cannot inflate the percentage.
			summary.TotalCompleted += math.Min(float64(completed), target)
		}

		summary.Habits = append(summary.Habits, hp)
	}

	if summary.TotalTarget > 0 {
		summary.ProgressPercent = math.Min(100, 100*summary.TotalCompleted/summary.TotalTarget)
	}

	return summary, diag, nil
}
