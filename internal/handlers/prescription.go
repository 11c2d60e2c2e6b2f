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

// PrescriptionHandler exposes prescription endpoints
type PrescriptionHandler struct {
	prescriptionService *services.PrescriptionService
}

// NewPrescriptionHandler creates a new prescription handler
func NewPrescriptionHandler(prescriptionService *services.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptionService: prescriptionService}
}

// Create issues a new prescription
func (h *PrescriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	var req models.CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msgs := validateCreatePrescription(&req); len(msgs) > 0 {
		respondJSON(w, http.StatusBadRequest, map[string]any{"errors": msgs})
		return
	}

	prescription, err := h.prescriptionService.Create(r.Context(), principal, &req)
	if err != nil {
		if err != services.ErrNotFound {
			log.Error().Err(err).Msg("Failed to create prescription")
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":      "Prescription created successfully",
		"prescription": prescription,
	})
}

// List returns all prescriptions of the caller's hospital
func (h *PrescriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	prescriptions, err := h.prescriptionService.List(r.Context(), principal)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list prescriptions")
		respondServiceError(w, err)
		return
	}

	if prescriptions == nil {
		prescriptions = []models.Prescription{}
	}
	respondJSON(w, http.StatusOK, prescriptions)
}

// ListByPatient returns all prescriptions for one patient
func (h *PrescriptionHandler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	patientID, err := uuid.Parse(chi.URLParam(r, "patientId"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	prescriptions, err := h.prescriptionService.ListByPatient(r.Context(), principal, patientID)
	if err != nil {
		if err != services.ErrNotFound {
			log.Error().Err(err).Msg("Failed to list prescriptions by patient")
		}
		respondServiceError(w, err)
		return
	}

	if prescriptions == nil {
		prescriptions = []models.Prescription{}
	}
	respondJSON(w, http.StatusOK, prescriptions)
}

// Get returns one prescription by id
func (h *PrescriptionHandler) Get(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid prescription ID")
		return
	}

	prescription, err := h.prescriptionService.Get(r.Context(), principal, id)
	if err != nil {
		if err != services.ErrNotFound {
			log.Error().Err(err).Msg("Failed to get prescription")
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, prescription)
}

// Update modifies a prescription
func (h *PrescriptionHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid prescription ID")
		return
	}

	var req models.UpdatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prescription, err := h.prescriptionService.Update(r.Context(), principal, id, &req)
	if err != nil {
		if err != services.ErrNotFound {
			log.Error().Err(err).Msg("Failed to update prescription")
		}
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":      "Prescription updated successfully",
		"prescription": prescription,
	})
}

// Deactivate soft-disables a prescription
func (h *PrescriptionHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid prescription ID")
		return
	}

	if err := h.prescriptionService.Deactivate(r.Context(), principal, id); err != nil {
		if err != services.ErrNotFound {
			log.Error().Err(err).Msg("Failed to deactivate prescription")
		}
		respondServiceError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Prescription deactivated successfully")
}

func validateCreatePrescription(req *models.CreatePrescriptionRequest) []string {
	var msgs []string
	if req.PatientID == uuid.Nil {
		msgs = append(msgs, "Patient ID is required")
	}
	if strings.TrimSpace(req.Diagnosis) == "" {
		msgs = append(msgs, "Diagnosis is required")
	}
	if len(req.Medications) == 0 {
		msgs = append(msgs, "At least one medication is required")
	}
	for _, m := range req.Medications {
		if strings.TrimSpace(m.Name) == "" {
			msgs = append(msgs, "Medication name is required")
		}
		if strings.TrimSpace(m.Dosage) == "" {
			msgs = append(msgs, "Medication dosage is required")
		}
		if strings.TrimSpace(m.Frequency) == "" {
			msgs = append(msgs, "Medication frequency is required")
		}
	}
	return msgs
}
