package calendar

// HabitEntry is a habit log as it appears on a calendar day.
type HabitEntry struct {
	ID        string `json:"id"`
	HabitID   string `json:"habit_id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// NutritionEntry is a consumption log as it appears on a calendar day.
type NutritionEntry struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Calories    int     `json:"calories"`
	Quantity    float64 `json:"quantity"`
	ServingSize string  `json:"serving_size,omitempty"`
}

type Day struct {
	Date      string           `json:"date"`
	IsToday   bool             `json:"is_today"`
	Habits    []HabitEntry     `json:"habits"`
	Nutrition []NutritionEntry `json:"nutrition"`
}

type MonthResponse struct {
	Year                  int             `json:"year"`
	Month                 int             `json:"month"`
	Days                  map[string]*Day `json:"days"`
	TotalHabitLogs        int             `json:"total_habit_logs"`
	TotalNutritionEntries int             `json:"total_nutrition_entries"`
	TotalUniqueHabits     int             `json:"total_unique_habits"`
	TotalUniqueFood       int             `json:"total_unique_food"`
}
