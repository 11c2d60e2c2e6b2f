package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/otcheredev/hms-backend/internal/middleware"
	"github.com/otcheredev/hms-backend/internal/models"
	"github.com/otcheredev/hms-backend/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler exposes staff user endpoints
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create adds a staff member to the caller's hospital
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msgs := validateCreateUser(&req); len(msgs) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]any{"errors": msgs})
		return
	}

	user, err := h.userService.Create(r.Context(), principal, &req)
	if err != nil {
		if err == services.ErrEmailTaken {
			respondMessage(w, http.StatusConflict, "User with this email already exists")
			return
		}
		log.Error().Err(err).Msg("Failed to create user")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user": models.UserSummary{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Role:     user.Role,
			TenantID: user.TenantID,
		},
	})
}

// List returns all staff members of the caller's hospital
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	users, err := h.userService.List(r.Context(), principal)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		respondServiceError(w, err)
		return
	}

	if users == nil {
		users = []models.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

// Get returns one staff member by id
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.userService.Get(r.Context(), principal, id)
	if err != nil {
		if err != services.ErrNotFound {
			log.Error().Err(err).Msg("Failed to get user")
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Update modifies a staff member
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.Update(r.Context(), principal, id, &req)
	if err != nil {
		if err != services.ErrNotFound && err != services.ErrEmailTaken && err != services.ErrInvalidRole {
			log.Error().Err(err).Msg("Failed to update user")
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    user,
	})
}

// Deactivate soft-disables a staff member
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.userService.Deactivate(r.Context(), principal, id); err != nil {
		if err != services.ErrNotFound {
			log.Error().Err(err).Msg("Failed to deactivate user")
		}
		respondServiceError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "User deactivated successfully")
}

func validateCreateUser(req *models.CreateUserRequest) []string {
	var msgs []string
	if strings.TrimSpace(req.Name) == "" {
		msgs = append(msgs, "Name is required")
	}
	if !strings.Contains(req.Email, "@") {
		msgs = append(msgs, "Valid email is required")
	}
	if len(req.Password) < 6 {
		msgs = append(msgs, "Password must be at least 6 characters long")
	}
	if !req.Role.Valid() {
		msgs = append(msgs, "Role must be admin, doctor, or receptionist")
	}
	return msgs
}
