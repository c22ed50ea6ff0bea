package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"showUpAPI/middleware"
	"showUpAPI/services"
)

type CalendarHandler struct {
	calendarService *services.CalendarService
}

func NewCalendarHandler(calendarService *services.CalendarService) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
	}
}

func (h *CalendarHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	year, month, err := h.calendarService.CurrentMonth()
	if err != nil {
		log.Printf("GetCalendar: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to resolve current month")
		return
	}

	if v := r.URL.Query().Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid year")
			return
		}
		year = parsed
	}
	if v := r.URL.Query().Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid month")
			return
		}
		month = parsed
	}

	if month < 1 || month > 12 {
		respondWithError(w, http.StatusBadRequest, "Invalid year or month")
		return
	}

	resp, err := h.calendarService.GetMonth(ctx, clerkID, year, month)
	if err != nil {
		log.Printf("GetCalendar: %v", err)
		respondServiceError(w, err, "Failed to fetch calendar data")
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
