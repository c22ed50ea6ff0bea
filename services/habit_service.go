package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"showUpAPI/internal/datekey"
	"showUpAPI/internal/habit"
	"showUpAPI/internal/progress"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HabitService struct {
	db    *pgxpool.Pool
	clock datekey.Clock
}

func NewHabitService(db *pgxpool.Pool, clock datekey.Clock) *HabitService {
	return &HabitService{db: db, clock: clock}
}

func (s *HabitService) CreateHabit(ctx context.Context, clerkID string, req *habit.CreateHabitRequest) (*habit.Habit, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = progress.FreqDaily
	}
	if !progress.Recognized(frequency) {
		// Non-fatal: the habit is stored and listed, it just scores a
		// weekly target of 0 until the frequency is fixed.
		log.Printf("CreateHabit: unrecognized frequency %q for user %s", frequency, clerkID)
	}

	h := &habit.Habit{
		ID:          uuid.New().String(),
		UserID:      userID.String(),
		Title:       req.Title,
		Description: req.Description,
		Frequency:   frequency,
		Color:       req.Color,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	query := `
	INSERT INTO habits (id, user_id, title, description, frequency, color, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, user_id, title, description, frequency, color, created_at, updated_at
	`

	err = s.db.QueryRow(
		ctx,
		query,
		h.ID,
		h.UserID,
		h.Title,
		h.Description,
		h.Frequency,
		h.Color,
		h.CreatedAt,
		h.UpdatedAt,
	).Scan(
		&h.ID,
		&h.UserID,
		&h.Title,
		&h.Description,
		&h.Frequency,
		&h.Color,
		&h.CreatedAt,
		&h.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	return h, nil
}

func (s *HabitService) GetHabits(ctx context.Context, clerkID string) ([]*habit.Habit, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	SELECT id, user_id, title, description, frequency, color, created_at, updated_at
	FROM habits
	WHERE user_id = $1
	ORDER BY created_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch habits: %w", err)
	}
	defer rows.Close()

	var habits []*habit.Habit
	for rows.Next() {
		h := &habit.Habit{}
		if err := rows.Scan(&h.ID, &h.UserID, &h.Title, &h.Description, &h.Frequency, &h.Color, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, h)
	}

	return habits, nil
}

func (s *HabitService) UpdateHabit(ctx context.Context, clerkID string, req *habit.UpdateHabitRequest) (*habit.Habit, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if req.Frequency != "" && !progress.Recognized(req.Frequency) {
		log.Printf("UpdateHabit: unrecognized frequency %q for habit %s", req.Frequency, req.ID)
	}

	query := `
	UPDATE habits
	SET title = COALESCE(NULLIF($1, ''), title),
	    description = COALESCE(NULLIF($2, ''), description),
	    frequency = COALESCE(NULLIF($3, ''), frequency),
	    color = COALESCE(NULLIF($4, ''), color),
	    updated_at = NOW()
	WHERE id = $5 AND user_id = $6
	RETURNING id, user_id, title, description, frequency, color, created_at, updated_at
	`

	h := &habit.Habit{}
	err = s.db.QueryRow(ctx, query, req.Title, req.Description, req.Frequency, req.Color, req.ID, userID).Scan(
		&h.ID,
		&h.UserID,
		&h.Title,
		&h.Description,
		&h.Frequency,
		&h.Color,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}

	return h, nil
}

// DeleteHabit hard-deletes the habit; its logs go with it through the FK
// cascade.
func (s *HabitService) DeleteHabit(ctx context.Context, clerkID string, habitID string) error {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	result, err := s.db.Exec(ctx, `DELETE FROM habits WHERE id = $1 AND user_id = $2`, habitID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// LogCompletion records or overwrites the completion flag for one habit on
// one day. The (habit_id, date) unique constraint makes the toggle a
// single atomic statement, so two near-simultaneous toggles cannot produce
// duplicate rows or lost updates.
func (s *HabitService) LogCompletion(ctx context.Context, clerkID string, req *habit.LogHabitRequest) (*habit.Log, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	date, err := datekey.Normalize(req.Date)
	if err != nil {
		return nil, err
	}

	// Ownership check before any mutation.
	var owned bool
	err = s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM habits WHERE id = $1 AND user_id = $2)`, req.HabitID, userID).Scan(&owned)
	if err != nil {
		return nil, fmt.Errorf("failed to check habit ownership: %w", err)
	}
	if !owned {
		return nil, ErrNotFound
	}

	query := `
	INSERT INTO habit_logs (id, habit_id, user_id, date, completed)
	VALUES ($1, $2, $3, $4::date, $5)
	ON CONFLICT (habit_id, date)
	DO UPDATE SET completed = $5, updated_at = NOW()
	RETURNING id, habit_id, user_id, date, completed, created_at, updated_at
	`

	entry := &habit.Log{}
	var logDate time.Time
	err = s.db.QueryRow(ctx, query, uuid.New().String(), req.HabitID, userID, date, req.Completed).Scan(
		&entry.ID,
		&entry.HabitID,
		&entry.UserID,
		&logDate,
		&entry.Completed,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to log habit completion: %w", err)
	}
	entry.Date = datekey.FromTime(logDate)

	return entry, nil
}

// GetLogs lists the user's habit logs, optionally filtered by habit and/or
// date, newest first.
func (s *HabitService) GetLogs(ctx context.Context, clerkID string, habitID string, date string) ([]*habit.LogWithTitle, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	SELECT hl.id, hl.habit_id, hl.user_id, hl.date, hl.completed, hl.created_at, hl.updated_at, h.title
	FROM habit_logs hl
	JOIN habits h ON hl.habit_id = h.id
	WHERE hl.user_id = $1
	`
	args := []any{userID}

	if habitID != "" {
		args = append(args, habitID)
		query += fmt.Sprintf(" AND hl.habit_id = $%d", len(args))
	}
	if date != "" {
		normalized, err := datekey.Normalize(date)
		if err != nil {
			return nil, err
		}
		args = append(args, normalized)
		query += fmt.Sprintf(" AND hl.date = $%d::date", len(args))
	}

	query += " ORDER BY hl.date DESC, h.title"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch habit logs: %w", err)
	}
	defer rows.Close()

	var logs []*habit.LogWithTitle
	for rows.Next() {
		entry := &habit.LogWithTitle{}
		var logDate time.Time
		if err := rows.Scan(&entry.ID, &entry.HabitID, &entry.UserID, &logDate, &entry.Completed, &entry.CreatedAt, &entry.UpdatedAt, &entry.Title); err != nil {
			return nil, fmt.Errorf("failed to scan habit log: %w", err)
		}
		entry.Date = datekey.FromTime(logDate)
		logs = append(logs, entry)
	}

	return logs, nil
}

// logEntriesInRange fetches the engine's input for a half-open date range.
// The unique constraint guarantees at most one row per (habit, date).
func (s *HabitService) logEntriesInRange(ctx context.Context, userID uuid.UUID, start, end string) ([]progress.LogEntry, error) {
	query := `
	SELECT habit_id, date, completed
	FROM habit_logs
	WHERE user_id = $1 AND date >= $2::date AND date < $3::date
	`

	rows, err := s.db.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch habit logs in range: %w", err)
	}
	defer rows.Close()

	var entries []progress.LogEntry
	for rows.Next() {
		var habitID string
		var logDate time.Time
		var completed bool
		if err := rows.Scan(&habitID, &logDate, &completed); err != nil {
			return nil, fmt.Errorf("failed to scan habit log: %w", err)
		}
		entries = append(entries, progress.LogEntry{
			HabitID:   habitID,
			Date:      datekey.FromTime(logDate),
			Completed: completed,
		})
	}

	return entries, nil
}

// GetWeeklyProgress runs the engine over the current Monday-aligned week.
// The log fetch is widened to cover the whole calendar month so monthly
// habits get a correct remaining-this-month figure.
func (s *HabitService) GetWeeklyProgress(ctx context.Context, clerkID string) (*progress.Summary, progress.Diagnostics, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, progress.Diagnostics{}, fmt.Errorf("user not found: %w", err)
	}

	today := s.clock.TodayKey()
	week, err := progress.WeekWindow(today)
	if err != nil {
		return nil, progress.Diagnostics{}, err
	}

	habits, err := s.GetHabits(ctx, clerkID)
	if err != nil {
		return nil, progress.Diagnostics{}, err
	}

	start, end := week.Start, week.End
	monthStart, err := datekey.Parse(today)
	if err != nil {
		return nil, progress.Diagnostics{}, err
	}
	firstOfMonth := datekey.FromTime(monthStart.AddDate(0, 0, 1-monthStart.Day()))
	if firstOfMonth < start {
		start = firstOfMonth
	}
	firstOfNextMonth := datekey.FromTime(monthStart.AddDate(0, 1, 1-monthStart.Day()))
	if firstOfNextMonth > end {
		end = firstOfNextMonth
	}

	entries, err := s.logEntriesInRange(ctx, userID, start, end)
	if err != nil {
		return nil, progress.Diagnostics{}, err
	}

	engineHabits := make([]progress.Habit, 0, len(habits))
	for _, h := range habits {
		engineHabits = append(engineHabits, progress.Habit{
			ID:        h.ID,
			Title:     h.Title,
			Frequency: h.Frequency,
			Color:     h.Color,
		})
	}

	summary, diag, err := progress.Aggregate(engineHabits, entries, today)
	if err != nil {
		return nil, progress.Diagnostics{}, err
	}

	if diag.SkippedLogs > 0 || len(diag.UnrecognizedFrequencies) > 0 {
		log.Printf("GetWeeklyProgress: user %s: %d skipped logs, %d unrecognized frequencies",
			clerkID, diag.SkippedLogs, len(diag.UnrecognizedFrequencies))
	}

	return &summary, diag, nil
}
