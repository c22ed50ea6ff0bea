package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"showUpAPI/internal/datekey"
	"showUpAPI/services"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondServiceError maps service failures onto status codes: ownership
// violations and missing records are 404, bad date input is 400,
// everything else is a 500 with a generic message.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	var invalidDate *datekey.InvalidDateError
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "Not found or access denied")
	case errors.As(err, &invalidDate):
		respondWithError(w, http.StatusBadRequest, invalidDate.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, fallback)
	}
}
