package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/otcheredev/hms-backend/internal/middleware"
	"github.com/otcheredev/hms-backend/internal/models"
	"github.com/otcheredev/hms-backend/internal/services"
	"github.com/rs/zerolog/log"
)

// HospitalHandler exposes hospital profile endpoints. Every operation acts
// on the caller's own hospital; there is no cross-hospital listing.
type HospitalHandler struct {
	hospitalService *services.HospitalService
}

// NewHospitalHandler creates a new hospital handler
func NewHospitalHandler(hospitalService *services.HospitalService) *HospitalHandler {
	return &HospitalHandler{hospitalService: hospitalService}
}

// Get returns the caller's hospital profile
func (h *HospitalHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	hospital, err := h.hospitalService.Get(r.Context(), principal)
	if err != nil {
		if err != services.ErrNotFound {
			log.Error().Err(err).Msg("Failed to get hospital")
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, hospital)
}

// Update modifies the caller's hospital profile
func (h *HospitalHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	var req models.UpdateHospitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	hospital, err := h.hospitalService.Update(r.Context(), principal, &req)
	if err != nil {
		if err == services.ErrEmailTaken {
			respondMessage(w, http.StatusConflict, "Hospital with this email already exists")
			return
		}
		if err != services.ErrNotFound {
			log.Error().Err(err).Msg("Failed to update hospital")
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":  "Hospital updated successfully",
		"hospital": hospital,
	})
}

// Deactivate soft-disables the caller's hospital
func (h *HospitalHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	if err := h.hospitalService.Deactivate(r.Context(), principal); err != nil {
		if err != services.ErrNotFound {
			log.Error().Err(err).Msg("Failed to deactivate hospital")
		}
		respondServiceError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Hospital deactivated successfully")
}

// ListAudit returns the caller's tenant audit trail
func (h *HospitalHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	logs, err := h.hospitalService.ListAudit(r.Context(), principal, limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list audit logs")
		respondServiceError(w, err)
		return
	}

	if logs == nil {
		logs = []models.AuditLog{}
	}
	respondJSON(w, http.StatusOK, logs)
}
