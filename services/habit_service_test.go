package services

import (
	"context"
	"log"
	"os"
	"testing"

	"showUpAPI/internal/datekey"
	"showUpAPI/internal/habit"
	"showUpAPI/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// setupTestDB connects to the database named by TEST_DATABASE_URL (or
// DATABASE_URL). Tests that need it are skipped when neither is set.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if err := godotenv.Load("../.env"); err != nil {
		log.Println("Warning: .env file not found via godotenv")
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL or DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	return pool
}

func createTestUser(t *testing.T, svc *UserService) *user.User {
	t.Helper()

	clerkID := "user_test_" + uuid.New().String()
	created, err := svc.CreateUser(context.Background(), &user.CreateUserRequest{
		ClerkID:  clerkID,
		Email:    "test+" + clerkID + "@example.com",
		Username: "testuser",
	})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return created
}

func TestLogCompletionUpsert(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	userSvc := NewUserService(db)
	habitSvc := NewHabitService(db, datekey.Fixed("2025-06-12"))

	owner := createTestUser(t, userSvc)
	defer userSvc.DeleteUserByClerkID(ctx, owner.ClerkID)

	created, err := habitSvc.CreateHabit(ctx, owner.ClerkID, &habit.CreateHabitRequest{
		Title:     "Run",
		Frequency: "daily",
	})
	if err != nil {
		t.Fatalf("Failed to create habit: %v", err)
	}

	// Toggle on, then off, for the same day.
	first, err := habitSvc.LogCompletion(ctx, owner.ClerkID, &habit.LogHabitRequest{
		HabitID:   created.ID,
		Date:      "2025-06-12",
		Completed: true,
	})
	if err != nil {
		t.Fatalf("First LogCompletion failed: %v", err)
	}

	second, err := habitSvc.LogCompletion(ctx, owner.ClerkID, &habit.LogHabitRequest{
		HabitID:   created.ID,
		Date:      "2025-06-12",
		Completed: false,
	})
	if err != nil {
		t.Fatalf("Second LogCompletion failed: %v", err)
	}

	// Latest toggle wins and there is exactly one row for the day.
	if second.ID != first.ID {
		t.Errorf("upsert created a second row: %s vs %s", first.ID, second.ID)
	}
	if second.Completed {
		t.Error("Completed should be false after the second toggle")
	}

	var count int
	err = db.QueryRow(ctx,
		`SELECT COUNT(*) FROM habit_logs WHERE habit_id = $1 AND date = '2025-06-12'`,
		created.ID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count log rows: %v", err)
	}
	if count != 1 {
		t.Errorf("log rows = %d, want 1", count)
	}
}

func TestLogCompletionOwnershipCheck(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	userSvc := NewUserService(db)
	habitSvc := NewHabitService(db, datekey.Fixed("2025-06-12"))

	owner := createTestUser(t, userSvc)
	defer userSvc.DeleteUserByClerkID(ctx, owner.ClerkID)
	intruder := createTestUser(t, userSvc)
	defer userSvc.DeleteUserByClerkID(ctx, intruder.ClerkID)

	created, err := habitSvc.CreateHabit(ctx, owner.ClerkID, &habit.CreateHabitRequest{
		Title: "Read",
	})
	if err != nil {
		t.Fatalf("Failed to create habit: %v", err)
	}

	_, err = habitSvc.LogCompletion(ctx, intruder.ClerkID, &habit.LogHabitRequest{
		HabitID:   created.ID,
		Date:      "2025-06-12",
		Completed: true,
	})
	if err != ErrNotFound {
		t.Errorf("logging someone else's habit: err = %v, want ErrNotFound", err)
	}
}

func TestGetWeeklyProgressEndToEnd(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	userSvc := NewUserService(db)
	// Thursday; the week window is [2025-06-09, 2025-06-16).
	habitSvc := NewHabitService(db, datekey.Fixed("2025-06-12"))

	owner := createTestUser(t, userSvc)
	defer userSvc.DeleteUserByClerkID(ctx, owner.ClerkID)

	daily, err := habitSvc.CreateHabit(ctx, owner.ClerkID, &habit.CreateHabitRequest{
		Title:     "Run",
		Frequency: "daily",
	})
	if err != nil {
		t.Fatalf("Failed to create habit: %v", err)
	}

	for _, date := range []string{"2025-06-09", "2025-06-10", "2025-06-12"} {
		if _, err := habitSvc.LogCompletion(ctx, owner.ClerkID, &habit.LogHabitRequest{
			HabitID:   daily.ID,
			Date:      date,
			Completed: true,
		}); err != nil {
			t.Fatalf("LogCompletion(%s) failed: %v", date, err)
		}
	}

	summary, diag, err := habitSvc.GetWeeklyProgress(ctx, owner.ClerkID)
	if err != nil {
		t.Fatalf("GetWeeklyProgress failed: %v", err)
	}
	if diag.SkippedLogs != 0 {
		t.Errorf("SkippedLogs = %d, want 0", diag.SkippedLogs)
	}
	if summary.Window.Start != "2025-06-09" || summary.Window.End != "2025-06-16" {
		t.Errorf("Window = [%s, %s)", summary.Window.Start, summary.Window.End)
	}

	if len(summary.Habits) != 1 {
		t.Fatalf("len(Habits) = %d, want 1", len(summary.Habits))
	}
	hp := summary.Habits[0]
	if hp.WeeklyCompleted != 3 {
		t.Errorf("WeeklyCompleted = %d, want 3", hp.WeeklyCompleted)
	}
	if hp.RemainingThisWeek == nil || *hp.RemainingThisWeek != 4 {
		t.Errorf("RemainingThisWeek = %v, want 4", hp.RemainingThisWeek)
	}
}
