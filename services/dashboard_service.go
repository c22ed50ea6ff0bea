package services

import (
	"context"
	"fmt"

	"showUpAPI/internal/dashboard"
	"showUpAPI/internal/datekey"
	"showUpAPI/internal/habit"
	"showUpAPI/internal/nutrition"
)

// DashboardService composes the other services; it holds no SQL of its
// own. All weekly-progress math comes from the engine via HabitService.
type DashboardService struct {
	habits    *HabitService
	nutrition *NutritionService
	clock     datekey.Clock
}

func NewDashboardService(habits *HabitService, nutritionSvc *NutritionService, clock datekey.Clock) *DashboardService {
	return &DashboardService{habits: habits, nutrition: nutritionSvc, clock: clock}
}

// GetDashboard assembles today's and yesterday's habit state, today's
// nutrition, the trailing-week nutrition trend and the weekly progress
// aggregate.
func (s *DashboardService) GetDashboard(ctx context.Context, clerkID string) (*dashboard.Response, error) {
	today := s.clock.TodayKey()
	todayTime, err := datekey.Parse(today)
	if err != nil {
		return nil, fmt.Errorf("bad clock output: %w", err)
	}
	yesterday := datekey.FromTime(todayTime.AddDate(0, 0, -1))
	weekAgo := datekey.FromTime(todayTime.AddDate(0, 0, -6))
	tomorrow := datekey.FromTime(todayTime.AddDate(0, 0, 1))

	resp := &dashboard.Response{
		Today:     today,
		Yesterday: yesterday,
	}

	todayLogs, err := s.habits.GetLogs(ctx, clerkID, "", today)
	if err != nil {
		return nil, err
	}
	yesterdayLogs, err := s.habits.GetLogs(ctx, clerkID, "", yesterday)
	if err != nil {
		return nil, err
	}

	resp.TodayHabits = completedOnly(todayLogs)
	resp.YesterdayHabits = completedOnly(yesterdayLogs)
	resp.TotalHabitsCompletedToday = len(resp.TodayHabits)

	nutritionToday, err := s.nutrition.GetLogs(ctx, clerkID, "", today)
	if err != nil {
		return nil, err
	}
	resp.NutritionLogs = derefLogs(nutritionToday)
	resp.TotalNutritionEntries = len(resp.NutritionLogs)
	for _, entry := range resp.NutritionLogs {
		resp.TotalCaloriesConsumed += entry.Calories
		resp.TotalProteinConsumed += entry.Protein * entry.Quantity
		resp.TotalFatConsumed += entry.TotalFat * entry.Quantity
		resp.TotalCarbsConsumed += entry.TotalCarbohydrate * entry.Quantity
	}

	// Last 7 days including today, half-open at tomorrow.
	weekly, err := s.nutrition.GetLogsInRange(ctx, clerkID, weekAgo, tomorrow)
	if err != nil {
		return nil, err
	}
	resp.WeeklyNutrition = derefLogs(weekly)
	for _, entry := range resp.WeeklyNutrition {
		resp.WeeklyCalories += entry.Calories
		if entry.Date == yesterday {
			resp.CaloriesYesterdayTotal += entry.Calories
		}
	}

	summary, diag, err := s.habits.GetWeeklyProgress(ctx, clerkID)
	if err != nil {
		return nil, err
	}
	resp.WeeklyProgress = *summary
	resp.ProgressWarnings = diag

	return resp, nil
}

func completedOnly(logs []*habit.LogWithTitle) []habit.LogWithTitle {
	out := make([]habit.LogWithTitle, 0, len(logs))
	for _, entry := range logs {
		if entry.Completed {
			out = append(out, *entry)
		}
	}
	return out
}

func derefLogs(logs []*nutrition.LogWithFood) []nutrition.LogWithFood {
	out := make([]nutrition.LogWithFood, 0, len(logs))
	for _, entry := range logs {
		out = append(out, *entry)
	}
	return out
}
