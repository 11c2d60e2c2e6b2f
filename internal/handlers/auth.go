package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/otcheredev/hms-backend/internal/models"
	"github.com/otcheredev/hms-backend/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler exposes hospital registration and login
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register registers a new hospital and its first admin user
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msgs := validateRegister(&req); len(msgs) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]any{"errors": msgs})
		return
	}

	resp, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		if err == services.ErrEmailTaken {
			respondMessage(w, http.StatusConflict, "Hospital with this email already exists")
			return
		}
		log.Error().Err(err).Msg("Failed to register hospital")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// Login exchanges credentials for a token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

func validateRegister(req *models.RegisterRequest) []string {
	var msgs []string
	if strings.TrimSpace(req.Name) == "" {
		msgs = append(msgs, "Hospital name is required")
	}
	if !strings.Contains(req.Email, "@") {
		msgs = append(msgs, "Valid email is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		msgs = append(msgs, "Phone number is required")
	}
	if len(req.Password) < 6 {
		msgs = append(msgs, "Password must be at least 6 characters long")
	}
	return msgs
}
