package dashboard

import (
	"showUpAPI/internal/habit"
	"showUpAPI/internal/nutrition"
	"showUpAPI/internal/progress"
)

// Response is everything the dashboard page and the preview widgets show.
// The weekly progress block comes straight from the engine; no surface
// recomputes targets on its own.
type Response struct {
	Today     string `json:"today"`
	Yesterday string `json:"yesterday"`

	TodayHabits     []habit.LogWithTitle `json:"today_habits"`
	YesterdayHabits []habit.LogWithTitle `json:"yesterday_habits"`

	NutritionLogs   []nutrition.LogWithFood `json:"nutrition_logs"`
	WeeklyNutrition []nutrition.LogWithFood `json:"weekly_nutrition"`

	TotalHabitsCompletedToday int     `json:"total_habits_completed_today"`
	TotalNutritionEntries     int     `json:"total_nutrition_entries"`
	TotalCaloriesConsumed     int     `json:"total_calories_consumed"`
	TotalProteinConsumed      float64 `json:"total_protein_consumed"`
	TotalFatConsumed          float64 `json:"total_fat_consumed"`
	TotalCarbsConsumed        float64 `json:"total_carbs_consumed"`
	WeeklyCalories            int     `json:"weekly_calories"`
	CaloriesYesterdayTotal    int     `json:"calories_yesterday_total"`

	WeeklyProgress   progress.Summary     `json:"weekly_progress"`
	ProgressWarnings progress.Diagnostics `json:"progress_warnings"`
}
