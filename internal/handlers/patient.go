package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/otcheredev/hms-backend/internal/middleware"
	"github.com/otcheredev/hms-backend/internal/models"
	"github.com/otcheredev/hms-backend/internal/services"
	"github.com/rs/zerolog/log"
)

// PatientHandler exposes patient endpoints
type PatientHandler struct {
	patientService *services.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patientService *services.PatientService) *PatientHandler {
	return &PatientHandler{patientService: patientService}
}

// Create registers a new patient
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	var req models.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msgs := validateCreatePatient(&req); len(msgs) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]any{"errors": msgs})
		return
	}

	patient, err := h.patientService.Create(r.Context(), principal, &req)
	if err != nil {
		if err != services.ErrDuplicatePhone {
			log.Error().Err(err).Msg("Failed to create patient")
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Patient registered successfully",
		"patient": patient,
	})
}

// List returns all patients of the caller's hospital
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	patients, err := h.patientService.List(r.Context(), principal)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list patients")
		respondServiceError(w, err)
		return
	}

	if patients == nil {
		patients = []models.Patient{}
	}
	respondJSON(w, http.StatusOK, patients)
}

// Search returns the caller's patients matching the query by name or phone
func (h *PatientHandler) Search(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		respondMessage(w, http.StatusBadRequest, "Search query is required")
		return
	}

	patients, err := h.patientService.Search(r.Context(), principal, query)
	if err != nil {
		log.Error().Err(err).Msg("Failed to search patients")
		respondServiceError(w, err)
		return
	}

	if patients == nil {
		patients = []models.Patient{}
	}
	respondJSON(w, http.StatusOK, patients)
}

// Get returns one patient by id
func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	patient, err := h.patientService.Get(r.Context(), principal, id)
	if err != nil {
		if err != services.ErrNotFound {
			log.Error().Err(err).Msg("Failed to get patient")
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, patient)
}

// Update modifies a patient
func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	var req models.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patient, err := h.patientService.Update(r.Context(), principal, id, &req)
	if err != nil {
		if err != services.ErrNotFound && err != services.ErrDuplicatePhone {
			log.Error().Err(err).Msg("Failed to update patient")
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Patient updated successfully",
		"patient": patient,
	})
}

func validateCreatePatient(req *models.CreatePatientRequest) []string {
	var msgs []string
	if strings.TrimSpace(req.Name) == "" {
		msgs = append(msgs, "Patient name is required")
	}
	if _, err := time.Parse("2006-01-02", req.DateOfBirth); err != nil {
		msgs = append(msgs, "Valid date of birth is required (YYYY-MM-DD)")
	}
	if !req.Gender.Valid() {
		msgs = append(msgs, "Gender must be male, female, or other")
	}
	if strings.TrimSpace(req.Phone) == "" {
		msgs = append(msgs, "Phone number is required")
	}
	return msgs
}
