package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"showUpAPI/internal/nutrition"
	"showUpAPI/middleware"
	"showUpAPI/services"
)

type NutritionHandler struct {
	nutritionService *services.NutritionService
}

func NewNutritionHandler(nutritionService *services.NutritionService) *NutritionHandler {
	return &NutritionHandler{
		nutritionService: nutritionService,
	}
}

func (h *NutritionHandler) CreateFood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req nutrition.CreateFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "Name is required")
		return
	}

	created, err := h.nutritionService.CreateFood(ctx, clerkID, &req)
	if err != nil {
		log.Printf("CreateFood: %v", err)
		respondServiceError(w, err, "Failed to create food item")
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Food item added successfully",
		"food":    created,
	})
}

func (h *NutritionHandler) GetFood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	items, err := h.nutritionService.GetFood(ctx, clerkID)
	if err != nil {
		log.Printf("GetFood: %v", err)
		respondServiceError(w, err, "Failed to fetch food items")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"food": items})
}

func (h *NutritionHandler) GetPantry(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.nutritionService.GetPantry(ctx)
	if err != nil {
		log.Printf("GetPantry: %v", err)
		respondServiceError(w, err, "Failed to fetch pantry items")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"food":  items,
		"total": len(items),
	})
}

func (h *NutritionHandler) UpdateFood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req nutrition.UpdateFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ID == "" {
		respondWithError(w, http.StatusBadRequest, "Item ID required")
		return
	}

	updated, err := h.nutritionService.UpdateFood(ctx, clerkID, &req)
	if err != nil {
		log.Printf("UpdateFood: %v", err)
		respondServiceError(w, err, "Failed to update food item")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Item updated successfully",
		"food":    updated,
	})
}

func (h *NutritionHandler) DeleteFood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	itemID := r.URL.Query().Get("id")
	if itemID == "" {
		respondWithError(w, http.StatusBadRequest, "Item ID required")
		return
	}

	if err := h.nutritionService.DeleteFood(ctx, clerkID, itemID); err != nil {
		log.Printf("DeleteFood: %v", err)
		respondServiceError(w, err, "Failed to delete food item")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

func (h *NutritionHandler) LogFood(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req nutrition.LogFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.FoodID == "" || req.Date == "" {
		respondWithError(w, http.StatusBadRequest, "foodId and date are required")
		return
	}

	entry, err := h.nutritionService.LogFood(ctx, clerkID, &req)
	if err != nil {
		log.Printf("LogFood: %v", err)
		respondServiceError(w, err, "Failed to log nutrition")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Nutrition logged successfully",
		"nutritionLog": entry,
	})
}

func (h *NutritionHandler) GetNutritionLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	foodID := r.URL.Query().Get("foodId")
	date := r.URL.Query().Get("date")

	logs, err := h.nutritionService.GetLogs(ctx, clerkID, foodID, date)
	if err != nil {
		log.Printf("GetNutritionLogs: %v", err)
		respondServiceError(w, err, "Failed to fetch nutrition logs")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"nutritionLogs": logs})
}

func (h *NutritionHandler) DeleteNutritionLog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	logID := r.URL.Query().Get("id")
	if logID == "" {
		respondWithError(w, http.StatusBadRequest, "Log ID required")
		return
	}

	if err := h.nutritionService.DeleteLog(ctx, clerkID, logID); err != nil {
		log.Printf("DeleteNutritionLog: %v", err)
		respondServiceError(w, err, "Failed to delete nutrition log")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Nutrition log deleted successfully"})
}
