package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"showUpAPI/middleware"
	"showUpAPI/services"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	resp, err := h.dashboardService.GetDashboard(ctx, clerkID)
	if err != nil {
		log.Printf("GetDashboard: %v", err)
		respondServiceError(w, err, "Failed to fetch dashboard data")
		return
	}

	middleware.CountProgressWarning(resp.ProgressWarnings.SkippedLogs + len(resp.ProgressWarnings.UnrecognizedFrequencies))

	respondWithJSON(w, http.StatusOK, resp)
}
