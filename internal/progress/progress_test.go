package progress

import (
	"testing"
)

func TestWeeklyTargetTable(t *testing.T) {
	tests := []struct {
		frequency string
		want      float64
	}{
		{FreqDaily, 7},
		{FreqEveryOtherDay, 4},
		{FreqTwiceAWeek, 2},
		{FreqThreeTimesAWeek, 3},
		{FreqWeekly, 1},
		{FreqWeekdays, 5},
		{FreqWeekends, 2},
		{FreqMonthly, 0.25},
		{"twice-weekly", 0},
		{"fortnightly", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := WeeklyTarget(tt.frequency); got != tt.want {
			t.Errorf("WeeklyTarget(%q) = %v, want %v", tt.frequency, got, tt.want)
		}
	}
}

func TestWeekWindow(t *testing.T) {
	tests := []struct {
		today string
		start string
		end   string
	}{
		// Sunday belongs to the week that started the previous Monday
		{"2025-06-15", "2025-06-09", "2025-06-16"},
		// Monday starts its own window
		{"2025-06-09", "2025-06-09", "2025-06-16"},
		{"2025-06-12", "2025-06-09", "2025-06-16"},
		// Window spanning a month boundary
		{"2025-07-01", "2025-06-30", "2025-07-07"},
		// And a year boundary
		{"2026-01-01", "2025-12-29", "2026-01-05"},
	}

	for _, tt := range tests {
		w, err := WeekWindow(tt.today)
		if err != nil {
			t.Errorf("WeekWindow(%q) error: %v", tt.today, err)
			continue
		}
		if w.Start != tt.start || w.End != tt.end {
			t.Errorf("WeekWindow(%q) = [%s, %s), want [%s, %s)", tt.today, w.Start, w.End, tt.start, tt.end)
		}
	}

	if _, err := WeekWindow("not-a-date"); err == nil {
		t.Error("WeekWindow with garbage input expected error")
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{Start: "2025-06-09", End: "2025-06-16"}

	if !w.Contains("2025-06-09") {
		t.Error("window should contain its start")
	}
	if !w.Contains("2025-06-15") {
		t.Error("window should contain its last day")
	}
	if w.Contains("2025-06-16") {
		t.Error("window end is exclusive")
	}
	if w.Contains("2025-06-08") {
		t.Error("window should not contain the prior Sunday")
	}
}

func TestWeeklyCompletedCountDistinctDays(t *testing.T) {
	w := Window{Start: "2025-06-09", End: "2025-06-16"}
	logs := []LogEntry{
		{HabitID: "h1", Date: "2025-06-09", Completed: true},
		{HabitID: "h1", Date: "2025-06-09", Completed: true}, // duplicate day
		{HabitID: "h1", Date: "2025-06-10", Completed: true},
		{HabitID: "h1", Date: "2025-06-11", Completed: false}, // not completed
		{HabitID: "h2", Date: "2025-06-12", Completed: true},  // other habit
		{HabitID: "h1", Date: "2025-06-08", Completed: true},  // before window
	}

	if got := WeeklyCompletedCount("h1", logs, w); got != 2 {
		t.Errorf("WeeklyCompletedCount = %d, want 2", got)
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	if got := RemainingThisWeek(1, 2); got != 0 {
		t.Errorf("RemainingThisWeek(1, 2) = %v, want 0", got)
	}
	if got := RemainingThisWeek(7, 3); got != 4 {
		t.Errorf("RemainingThisWeek(7, 3) = %v, want 4", got)
	}
	if got := RemainingThisWeek(0, 5); got != 0 {
		t.Errorf("RemainingThisWeek(0, 5) = %v, want 0", got)
	}
}

func TestCompletedOn(t *testing.T) {
	logs := []LogEntry{
		{HabitID: "h1", Date: "2025-06-15", Completed: true},
		{HabitID: "h2", Date: "2025-06-15", Completed: false},
	}

	if !CompletedOn("h1", logs, "2025-06-15") {
		t.Error("h1 should be completed on 2025-06-15")
	}
	if CompletedOn("h2", logs, "2025-06-15") {
		t.Error("h2 has an uncompleted log, should not count")
	}
	if CompletedOn("h1", logs, "2025-06-14") {
		t.Error("h1 has no log for 2025-06-14")
	}
}

// Scenario A: daily habit with 3 completions this week.
func TestAggregateDailyHabit(t *testing.T) {
	habits := []Habit{{ID: "h1", Title: "Run", Frequency: FreqDaily}}
	logs := []LogEntry{
		{HabitID: "h1", Date: "2025-06-09", Completed: true},
		{HabitID: "h1", Date: "2025-06-10", Completed: true},
		{HabitID: "h1", Date: "2025-06-12", Completed: true},
	}

	summary, diag, err := Aggregate(habits, logs, "2025-06-13")
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if diag.SkippedLogs != 0 {
		t.Errorf("SkippedLogs = %d, want 0", diag.SkippedLogs)
	}

	hp := summary.Habits[0]
	if hp.WeeklyTarget != 7 {
		t.Errorf("WeeklyTarget = %v, want 7", hp.WeeklyTarget)
	}
	if hp.WeeklyCompleted != 3 {
		t.Errorf("WeeklyCompleted = %d, want 3", hp.WeeklyCompleted)
	}
	if hp.RemainingThisWeek == nil || *hp.RemainingThisWeek != 4 {
		t.Errorf("RemainingThisWeek = %v, want 4", hp.RemainingThisWeek)
	}
}

// Scenario B: weekly habit over-completed stays clamped at zero remaining.
func TestAggregateWeeklyHabitClamped(t *testing.T) {
	habits := []Habit{{ID: "h1", Title: "Call home", Frequency: FreqWeekly}}
	logs := []LogEntry{
		{HabitID: "h1", Date: "2025-06-10", Completed: true},
		{HabitID: "h1", Date: "2025-06-11", Completed: true},
	}

	summary, _, err := Aggregate(habits, logs, "2025-06-12")
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}

	hp := summary.Habits[0]
	if hp.RemainingThisWeek == nil || *hp.RemainingThisWeek != 0 {
		t.Errorf("RemainingThisWeek = %v, want 0", hp.RemainingThisWeek)
	}
	// Contribution to the aggregate is capped at the habit's own target.
	if summary.TotalCompleted != 1 {
		t.Errorf("TotalCompleted = %v, want 1", summary.TotalCompleted)
	}
}

// A daily habit done 7/7 next to an untouched target-2 habit: totals are
// 7 of 9 and the percent follows.
func TestAggregateTwoHabits(t *testing.T) {
	habits := []Habit{
		{ID: "h1", Title: "Run", Frequency: FreqDaily},
		{ID: "h2", Title: "Call home", Frequency: FreqTwiceAWeek},
	}
	var logs []LogEntry
	for _, date := range []string{
		"2025-06-09", "2025-06-10", "2025-06-11", "2025-06-12",
		"2025-06-13", "2025-06-14", "2025-06-15",
	} {
		logs = append(logs, LogEntry{HabitID: "h1", Date: date, Completed: true})
	}

	summary, _, err := Aggregate(habits, logs, "2025-06-15")
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}

	if summary.TotalTarget != 9 {
		t.Errorf("TotalTarget = %v, want 9", summary.TotalTarget)
	}
	if summary.TotalCompleted != 7 {
		t.Errorf("TotalCompleted = %v, want 7", summary.TotalCompleted)
	}
	want := 100 * 7.0 / 9.0
	if diff := summary.ProgressPercent - want; diff > 0.01 || diff < -0.01 {
		t.Errorf("ProgressPercent = %v, want %v", summary.ProgressPercent, want)
	}
}

// Scenario D: a malformed log entry is skipped and counted, not fatal.
func TestAggregateSkipsMalformedLogs(t *testing.T) {
	habits := []Habit{{ID: "h1", Title: "Run", Frequency: FreqDaily}}
	logs := []LogEntry{
		{HabitID: "", Date: "2025-06-10", Completed: true},
		{HabitID: "h1", Date: "garbage", Completed: true},
		{HabitID: "h1", Date: "2025-06-10", Completed: true},
	}

	summary, diag, err := Aggregate(habits, logs, "2025-06-12")
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if diag.SkippedLogs != 2 {
		t.Errorf("SkippedLogs = %d, want 2", diag.SkippedLogs)
	}
	if summary.Habits[0].WeeklyCompleted != 1 {
		t.Errorf("WeeklyCompleted = %d, want 1", summary.Habits[0].WeeklyCompleted)
	}
}

func TestAggregateUnrecognizedFrequency(t *testing.T) {
	habits := []Habit{
		{ID: "h1", Title: "Run", Frequency: FreqDaily},
		{ID: "h2", Title: "Mystery", Frequency: "fortnightly"},
	}

	summary, diag, err := Aggregate(habits, nil, "2025-06-12")
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}

	// Still listed so the UI can render it, but out of the sums.
	if len(summary.Habits) != 2 {
		t.Fatalf("len(Habits) = %d, want 2", len(summary.Habits))
	}
	if summary.TotalTarget != 7 {
		t.Errorf("TotalTarget = %v, want 7", summary.TotalTarget)
	}
	if len(diag.UnrecognizedFrequencies) != 1 || diag.UnrecognizedFrequencies[0] != "h2" {
		t.Errorf("UnrecognizedFrequencies = %v, want [h2]", diag.UnrecognizedFrequencies)
	}
	mystery := summary.Habits[1]
	if mystery.WeeklyTarget != 0 || mystery.CountsInAggregate {
		t.Errorf("unrecognized habit should carry target 0 and stay out of the aggregate")
	}
}

func TestAggregateMonthlyHabit(t *testing.T) {
	habits := []Habit{{ID: "h1", Title: "Deep clean", Frequency: FreqMonthly}}
	logs := []LogEntry{
		{HabitID: "h1", Date: "2025-06-03", Completed: true},
	}

	summary, _, err := Aggregate(habits, logs, "2025-06-12")
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}

	hp := summary.Habits[0]
	if hp.RemainingThisWeek != nil {
		t.Error("monthly habits should not expose a weekly remaining figure")
	}
	if hp.RemainingThisMonth == nil || *hp.RemainingThisMonth != 0 {
		t.Errorf("RemainingThisMonth = %v, want 0", hp.RemainingThisMonth)
	}
	// Monthly stays out of the weekly sums entirely.
	if summary.TotalTarget != 0 || summary.TotalCompleted != 0 {
		t.Errorf("monthly habit leaked into weekly sums: target=%v completed=%v",
			summary.TotalTarget, summary.TotalCompleted)
	}
	if summary.ProgressPercent != 0 {
		t.Errorf("ProgressPercent = %v, want 0 when total target is 0", summary.ProgressPercent)
	}
}

func TestAggregateProgressCappedAtHundred(t *testing.T) {
	habits := []Habit{{ID: "h1", Title: "Call home", Frequency: FreqWeekly}}
	logs := []LogEntry{
		{HabitID: "h1", Date: "2025-06-09", Completed: true},
		{HabitID: "h1", Date: "2025-06-10", Completed: true},
		{HabitID: "h1", Date: "2025-06-11", Completed: true},
	}

	summary, _, err := Aggregate(habits, logs, "2025-06-12")
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if summary.ProgressPercent != 100 {
		t.Errorf("ProgressPercent = %v, want 100", summary.ProgressPercent)
	}
}

func TestAggregateCompletedToday(t *testing.T) {
	habits := []Habit{{ID: "h1", Title: "Run", Frequency: FreqDaily}}
	logs := []LogEntry{
		{HabitID: "h1", Date: "2025-06-12", Completed: true},
	}

	summary, _, err := Aggregate(habits, logs, "2025-06-12")
	if err != nil {
		t.Fatalf("Aggregate error: %v", err)
	}
	if !summary.Habits[0].CompletedToday {
		t.Error("CompletedToday should be true")
	}
}
