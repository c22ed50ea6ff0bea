package nutrition

import "time"

// PantryOwner marks food rows shared with every user.
const PantryOwner = "all_users"

type Food struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Name              string    `json:"name"`
	ServingSize       string    `json:"serving_size,omitempty"`
	Calories          int       `json:"calories"`
	Protein           float64   `json:"protein"`
	TotalFat          float64   `json:"total_fat"`
	TotalCarbohydrate float64   `json:"total_carbohydrate"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Log is one consumption entry. Unlike habit logs there is no per-day
// uniqueness: eating the same food twice in a day is two rows.
type Log struct {
	ID        string    `json:"id"`
	FoodID    string    `json:"food_id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Quantity  float64   `json:"quantity"`
	MealType  string    `json:"meal_type"`
	Calories  int       `json:"calories"`
	CreatedAt time.Time `json:"created_at"`
}

// LogWithFood joins the food details dashboards read onto a log row.
type LogWithFood struct {
	Log
	Name              string  `json:"name"`
	ServingSize       string  `json:"serving_size,omitempty"`
	Protein           float64 `json:"protein"`
	TotalFat          float64 `json:"total_fat"`
	TotalCarbohydrate float64 `json:"total_carbohydrate"`
}
