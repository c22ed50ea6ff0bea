package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"showUpAPI/internal/datekey"
	"showUpAPI/internal/nutrition"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NutritionService struct {
	db *pgxpool.Pool
}

func NewNutritionService(db *pgxpool.Pool) *NutritionService {
	return &NutritionService{db: db}
}

func (s *NutritionService) CreateFood(ctx context.Context, clerkID string, req *nutrition.CreateFoodRequest) (*nutrition.Food, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	f := &nutrition.Food{
		ID:                uuid.New().String(),
		UserID:            userID.String(),
		Name:              req.Name,
		ServingSize:       req.ServingSize,
		Calories:          req.Calories,
		Protein:           req.Protein,
		TotalFat:          req.TotalFat,
		TotalCarbohydrate: req.TotalCarbohydrate,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}

	query := `
	INSERT INTO food (id, user_id, name, serving_size, calories, protein, total_fat, total_carbohydrate, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id, user_id, name, serving_size, calories, protein, total_fat, total_carbohydrate, created_at, updated_at
	`

	err = s.db.QueryRow(
		ctx,
		query,
		f.ID,
		f.UserID,
		f.Name,
		f.ServingSize,
		f.Calories,
		f.Protein,
		f.TotalFat,
		f.TotalCarbohydrate,
		f.CreatedAt,
		f.UpdatedAt,
	).Scan(
		&f.ID,
		&f.UserID,
		&f.Name,
		&f.ServingSize,
		&f.Calories,
		&f.Protein,
		&f.TotalFat,
		&f.TotalCarbohydrate,
		&f.CreatedAt,
		&f.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create food item: %w", err)
	}

	return f, nil
}

func (s *NutritionService) GetFood(ctx context.Context, clerkID string) ([]*nutrition.Food, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	SELECT id, user_id, name, serving_size, calories, protein, total_fat, total_carbohydrate, created_at, updated_at
	FROM food
	WHERE user_id = $1::text
	ORDER BY name
	`

	return s.scanFood(ctx, query, userID.String())
}

// GetPantry lists the shared food items every user can log against.
func (s *NutritionService) GetPantry(ctx context.Context) ([]*nutrition.Food, error) {
	query := `
	SELECT id, user_id, name, serving_size, calories, protein, total_fat, total_carbohydrate, created_at, updated_at
	FROM food
	WHERE user_id = $1
	ORDER BY name
	`

	return s.scanFood(ctx, query, nutrition.PantryOwner)
}

func (s *NutritionService) scanFood(ctx context.Context, query string, args ...any) ([]*nutrition.Food, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch food items: %w", err)
	}
	defer rows.Close()

	var items []*nutrition.Food
	for rows.Next() {
		f := &nutrition.Food{}
		if err := rows.Scan(&f.ID, &f.UserID, &f.Name, &f.ServingSize, &f.Calories, &f.Protein, &f.TotalFat, &f.TotalCarbohydrate, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan food item: %w", err)
		}
		items = append(items, f)
	}

	return items, nil
}

func (s *NutritionService) UpdateFood(ctx context.Context, clerkID string, req *nutrition.UpdateFoodRequest) (*nutrition.Food, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	UPDATE food
	SET name = COALESCE(NULLIF($1, ''), name),
	    serving_size = COALESCE(NULLIF($2, ''), serving_size),
	    calories = $3,
	    protein = $4,
	    total_fat = $5,
	    total_carbohydrate = $6,
	    updated_at = NOW()
	WHERE id = $7 AND user_id = $8::text
	RETURNING id, user_id, name, serving_size, calories, protein, total_fat, total_carbohydrate, created_at, updated_at
	`

	f := &nutrition.Food{}
	err = s.db.QueryRow(ctx, query, req.Name, req.ServingSize, req.Calories, req.Protein, req.TotalFat, req.TotalCarbohydrate, req.ID, userID.String()).Scan(
		&f.ID,
		&f.UserID,
		&f.Name,
		&f.ServingSize,
		&f.Calories,
		&f.Protein,
		&f.TotalFat,
		&f.TotalCarbohydrate,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update food item: %w", err)
	}

	return f, nil
}

func (s *NutritionService) DeleteFood(ctx context.Context, clerkID string, foodID string) error {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	result, err := s.db.Exec(ctx, `DELETE FROM food WHERE id = $1 AND user_id = $2::text`, foodID, userID.String())
	if err != nil {
		return fmt.Errorf("failed to delete food item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// LogFood records one consumption entry. Calories are derived from the
// food's base calories times quantity at insert time, matching what the
// dashboards sum later. The food must belong to the user or the pantry.
func (s *NutritionService) LogFood(ctx context.Context, clerkID string, req *nutrition.LogFoodRequest) (*nutrition.LogWithFood, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	date, err := datekey.Normalize(req.Date)
	if err != nil {
		return nil, err
	}

	var baseCalories int
	err = s.db.QueryRow(ctx,
		`SELECT calories FROM food WHERE id = $1 AND (user_id = $2::text OR user_id = $3)`,
		req.FoodID, userID.String(), nutrition.PantryOwner,
	).Scan(&baseCalories)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to check food ownership: %w", err)
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	mealType := req.MealType
	if mealType == "" {
		mealType = "unspecified"
	}
	calories := int(math.Round(float64(baseCalories) * quantity))

	query := `
	INSERT INTO nutrition_logs (id, food_id, user_id, date, quantity, meal_type, calories)
	VALUES ($1, $2, $3, $4::date, $5, $6, $7)
	RETURNING id
	`

	logID := uuid.New().String()
	if err := s.db.QueryRow(ctx, query, logID, req.FoodID, userID, date, quantity, mealType, calories).Scan(&logID); err != nil {
		return nil, fmt.Errorf("failed to log nutrition: %w", err)
	}

	entry, err := s.getLogByID(ctx, logID)
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *NutritionService) getLogByID(ctx context.Context, logID string) (*nutrition.LogWithFood, error) {
	query := `
	SELECT nl.id, nl.food_id, nl.user_id, nl.date, nl.quantity, nl.meal_type, nl.calories, nl.created_at,
	       f.name, f.serving_size, f.protein, f.total_fat, f.total_carbohydrate
	FROM nutrition_logs nl
	JOIN food f ON nl.food_id = f.id
	WHERE nl.id = $1
	`

	entry := &nutrition.LogWithFood{}
	var logDate time.Time
	err := s.db.QueryRow(ctx, query, logID).Scan(
		&entry.ID,
		&entry.FoodID,
		&entry.UserID,
		&logDate,
		&entry.Quantity,
		&entry.MealType,
		&entry.Calories,
		&entry.CreatedAt,
		&entry.Name,
		&entry.ServingSize,
		&entry.Protein,
		&entry.TotalFat,
		&entry.TotalCarbohydrate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nutrition log: %w", err)
	}
	entry.Date = datekey.FromTime(logDate)

	return entry, nil
}

// GetLogs lists the user's nutrition logs with food details, optionally
// filtered by food and/or date, newest first.
func (s *NutritionService) GetLogs(ctx context.Context, clerkID string, foodID string, date string) ([]*nutrition.LogWithFood, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	SELECT nl.id, nl.food_id, nl.user_id, nl.date, nl.quantity, nl.meal_type, nl.calories, nl.created_at,
	       f.name, f.serving_size, f.protein, f.total_fat, f.total_carbohydrate
	FROM nutrition_logs nl
	JOIN food f ON nl.food_id = f.id
	WHERE nl.user_id = $1
	`
	args := []any{userID}

	if foodID != "" {
		args = append(args, foodID)
		query += fmt.Sprintf(" AND nl.food_id = $%d", len(args))
	}
	if date != "" {
		normalized, err := datekey.Normalize(date)
		if err != nil {
			return nil, err
		}
		args = append(args, normalized)
		query += fmt.Sprintf(" AND nl.date = $%d::date", len(args))
	}

	query += " ORDER BY nl.date DESC, f.name"

	return s.scanLogs(ctx, query, args...)
}

// GetLogsInRange fetches logs for a half-open date-key range.
func (s *NutritionService) GetLogsInRange(ctx context.Context, clerkID string, start, end string) ([]*nutrition.LogWithFood, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	SELECT nl.id, nl.food_id, nl.user_id, nl.date, nl.quantity, nl.meal_type, nl.calories, nl.created_at,
	       f.name, f.serving_size, f.protein, f.total_fat, f.total_carbohydrate
	FROM nutrition_logs nl
	JOIN food f ON nl.food_id = f.id
	WHERE nl.user_id = $1 AND nl.date >= $2::date AND nl.date < $3::date
	ORDER BY nl.date DESC
	`

	return s.scanLogs(ctx, query, userID, start, end)
}

func (s *NutritionService) scanLogs(ctx context.Context, query string, args ...any) ([]*nutrition.LogWithFood, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nutrition logs: %w", err)
	}
	defer rows.Close()

	var logs []*nutrition.LogWithFood
	for rows.Next() {
		entry := &nutrition.LogWithFood{}
		var logDate time.Time
		if err := rows.Scan(
			&entry.ID,
			&entry.FoodID,
			&entry.UserID,
			&logDate,
			&entry.Quantity,
			&entry.MealType,
			&entry.Calories,
			&entry.CreatedAt,
			&entry.Name,
			&entry.ServingSize,
			&entry.Protein,
			&entry.TotalFat,
			&entry.TotalCarbohydrate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan nutrition log: %w", err)
		}
		entry.Date = datekey.FromTime(logDate)
		logs = append(logs, entry)
	}

	return logs, nil
}

func (s *NutritionService) DeleteLog(ctx context.Context, clerkID string, logID string) error {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	result, err := s.db.Exec(ctx, `DELETE FROM nutrition_logs WHERE id = $1 AND user_id = $2`, logID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete nutrition log: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
