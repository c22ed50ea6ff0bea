package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"showUpAPI/internal/habit"
	"showUpAPI/middleware"
	"showUpAPI/services"
)

type HabitHandler struct {
	habitService *services.HabitService
}

func NewHabitHandler(habitService *services.HabitService) *HabitHandler {
	return &HabitHandler{
		habitService: habitService,
	}
}

func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req habit.CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	created, err := h.habitService.CreateHabit(ctx, clerkID, &req)
	if err != nil {
		log.Printf("CreateHabit: %v", err)
		respondServiceError(w, err, "Failed to create habit")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Habit added successfully",
		"habit":   created,
	})
}

func (h *HabitHandler) GetHabits(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	habits, err := h.habitService.GetHabits(ctx, clerkID)
	if err != nil {
		log.Printf("GetHabits: %v", err)
		respondServiceError(w, err, "Failed to fetch habits")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"habits": habits})
}

func (h *HabitHandler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req habit.UpdateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ID == "" {
		respondWithError(w, http.StatusBadRequest, "Habit ID required")
		return
	}

	updated, err := h.habitService.UpdateHabit(ctx, clerkID, &req)
	if err != nil {
		log.Printf("UpdateHabit: %v", err)
		respondServiceError(w, err, "Failed to update habit")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Habit updated successfully",
		"habit":   updated,
	})
}

func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	habitID := r.URL.Query().Get("id")
	if habitID == "" {
		respondWithError(w, http.StatusBadRequest, "Habit ID required")
		return
	}

	if err := h.habitService.DeleteHabit(ctx, clerkID, habitID); err != nil {
		log.Printf("DeleteHabit: %v", err)
		respondServiceError(w, err, "Failed to delete habit")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Habit deleted successfully"})
}

// LogHabit toggles completion for one habit on one day. Idempotent: the
// same (habit, date) pair always resolves to a single row.
func (h *HabitHandler) LogHabit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req habit.LogHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.HabitID == "" || req.Date == "" {
		respondWithError(w, http.StatusBadRequest, "habitId and date are required")
		return
	}

	entry, err := h.habitService.LogCompletion(ctx, clerkID, &req)
	if err != nil {
		log.Printf("LogHabit: %v", err)
		respondServiceError(w, err, "Failed to log habit")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Habit log saved successfully",
		"habitLog": entry,
	})
}

func (h *HabitHandler) GetHabitLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	habitID := r.URL.Query().Get("habitId")
	date := r.URL.Query().Get("date")

	logs, err := h.habitService.GetLogs(ctx, clerkID, habitID, date)
	if err != nil {
		log.Printf("GetHabitLogs: %v", err)
		respondServiceError(w, err, "Failed to fetch habit logs")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"habitLogs": logs})
}

// GetWeeklyProgress serves the engine aggregate. Every surface that shows
// targets or remaining counts reads this; none recompute locally.
func (h *HabitHandler) GetWeeklyProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	summary, diag, err := h.habitService.GetWeeklyProgress(ctx, clerkID)
	if err != nil {
		log.Printf("GetWeeklyProgress: %v", err)
		respondServiceError(w, err, "Unable to load progress")
		return
	}

	middleware.CountProgressWarning(diag.SkippedLogs + len(diag.UnrecognizedFrequencies))

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"progress":    summary,
		"diagnostics": diag,
	})
}
