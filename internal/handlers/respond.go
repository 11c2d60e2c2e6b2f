package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/otcheredev/hms-backend/internal/services"
)

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, messageResponse{Message: message})
}

// respondServiceError maps service-level sentinel errors onto HTTP
// statuses. Anything unrecognized is a 500 with an information-free body.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondMessage(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrAccountInactive):
		respondMessage(w, http.StatusForbidden, "Account is deactivated")
	case errors.Is(err, services.ErrEmailTaken):
		respondMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrDuplicatePhone):
		respondMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidRole):
		respondMessage(w, http.StatusBadRequest, err.Error())
	default:
		respondMessage(w, http.StatusInternalServerError, "Server error")
	}
}
