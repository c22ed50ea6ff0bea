package habit

import "time"

type Habit struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Frequency   string    `json:"frequency"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Log is one completion record per habit per calendar day. Date is a
// YYYY-MM-DD key; the (habit_id, date) pair is unique in storage.
type Log struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LogWithTitle carries the habit title alongside a log row for list views.
type LogWithTitle struct {
	Log
	Title string `json:"title"`
}
