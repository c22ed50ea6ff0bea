package services

import (
	"context"
	"fmt"
	"time"

	"showUpAPI/internal/calendar"
	"showUpAPI/internal/datekey"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CalendarService struct {
	db    *pgxpool.Pool
	clock datekey.Clock
}

func NewCalendarService(db *pgxpool.Pool, clock datekey.Clock) *CalendarService {
	return &CalendarService{db: db, clock: clock}
}

// CurrentMonth resolves the year and month of the injected clock's today,
// so callers defaulting to "this month" agree with every other surface on
// what today is.
func (s *CalendarService) CurrentMonth() (int, int, error) {
	today, err := datekey.Parse(s.clock.TodayKey())
	if err != nil {
		return 0, 0, fmt.Errorf("failed to resolve current month: %w", err)
	}
	return today.Year(), int(today.Month()), nil
}

// GetMonth aggregates habit and nutrition activity for one calendar month,
// keyed by date for the calendar grid.
func (s *CalendarService) GetMonth(ctx context.Context, clerkID string, year int, month int) (*calendar.MonthResponse, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	startDate := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 1, 0)

	resp := &calendar.MonthResponse{
		Year:  year,
		Month: month,
		Days:  make(map[string]*calendar.Day),
	}
	today := s.clock.TodayKey()

	day := func(key string) *calendar.Day {
		d, ok := resp.Days[key]
		if !ok {
			d = &calendar.Day{Date: key, IsToday: key == today}
			resp.Days[key] = d
		}
		return d
	}

	habitsQuery := `
	SELECT hl.id, hl.habit_id, hl.date, hl.completed, h.title
	FROM habit_logs hl
	JOIN habits h ON hl.habit_id = h.id
	WHERE hl.user_id = $1 AND hl.date >= $2 AND hl.date < $3
	ORDER BY hl.date DESC, h.title
	`

	rows, err := s.db.Query(ctx, habitsQuery, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar habit logs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry calendar.HabitEntry
		var logDate time.Time
		if err := rows.Scan(&entry.ID, &entry.HabitID, &logDate, &entry.Completed, &entry.Title); err != nil {
			return nil, fmt.Errorf("failed to scan calendar habit log: %w", err)
		}
		d := day(datekey.FromTime(logDate))
		d.Habits = append(d.Habits, entry)
		resp.TotalHabitLogs++
	}
	rows.Close()

	nutritionQuery := `
	SELECT nl.id, nl.quantity, nl.calories, nl.date, f.name, f.serving_size
	FROM nutrition_logs nl
	JOIN food f ON nl.food_id = f.id
	WHERE nl.user_id = $1 AND nl.date >= $2 AND nl.date < $3
	ORDER BY nl.date DESC, f.name
	`

	rows, err = s.db.Query(ctx, nutritionQuery, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar nutrition logs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry calendar.NutritionEntry
		var logDate time.Time
		if err := rows.Scan(&entry.ID, &entry.Quantity, &entry.Calories, &logDate, &entry.Name, &entry.ServingSize); err != nil {
			return nil, fmt.Errorf("failed to scan calendar nutrition log: %w", err)
		}
		d := day(datekey.FromTime(logDate))
		d.Nutrition = append(d.Nutrition, entry)
		resp.TotalNutritionEntries++
	}

	err = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM habits WHERE user_id = $1`, userID).Scan(&resp.TotalUniqueHabits)
	if err != nil {
		return nil, fmt.Errorf("failed to count habits: %w", err)
	}

	err = s.db.QueryRow(ctx, `SELECT COUNT(*) FROM food WHERE user_id = $1::text`, userID.String()).Scan(&resp.TotalUniqueFood)
	if err != nil {
		return nil, fmt.Errorf("failed to count food items: %w", err)
	}

	return resp, nil
}
