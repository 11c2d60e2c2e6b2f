package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/otcheredev/hms-backend/internal/models"
	"github.com/otcheredev/hms-backend/internal/repository"
	"gorm.io/gorm"
)

// PrescriptionService handles prescription business logic. Every operation
// is scoped to the principal's tenant.
type PrescriptionService struct {
	prescriptions *repository.PrescriptionRepository
	patients      *repository.PatientRepository
	audit         *repository.AuditRepository
}

// NewPrescriptionService creates a new prescription service
func NewPrescriptionService(
	prescriptions *repository.PrescriptionRepository,
	patients *repository.PatientRepository,
	audit *repository.AuditRepository,
) *PrescriptionService {
	return &PrescriptionService{
		prescriptions: prescriptions,
		patients:      patients,
		audit:         audit,
	}
}

// Create issues a prescription by the principal (the doctor) for a patient
// of the same tenant. A patient id belonging to another tenant is reported
// as not found.
func (s *PrescriptionService) Create(ctx context.Context, principal models.Principal, req *models.CreatePrescriptionRequest) (*models.Prescription, error) {
	if _, err := s.patients.GetByID(ctx, principal.TenantID, req.PatientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	prescription := &models.Prescription{
		TenantID:     principal.TenantID,
		HospitalID:   principal.HospitalID,
		PatientID:    req.PatientID,
		DoctorID:     principal.UserID,
		Diagnosis:    req.Diagnosis,
		Medications:  req.Medications,
		Tests:        req.Tests,
		FollowUpDate: req.FollowUpDate,
		Notes:        req.Notes,
		IsActive:     true,
	}

	if err := s.prescriptions.Create(ctx, prescription); err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, principal.TenantID, principal.UserID, "prescription.create", "prescription", prescription.ID.String())

	return prescription, nil
}

// List returns every prescription of the principal's tenant.
func (s *PrescriptionService) List(ctx context.Context, principal models.Principal) ([]models.Prescription, error) {
	return s.prescriptions.ListByTenant(ctx, principal.TenantID)
}

// ListByPatient returns the prescriptions of one patient of the tenant.
// The patient is looked up first so a cross-tenant patient id yields
// NotFound rather than an empty list.
func (s *PrescriptionService) ListByPatient(ctx context.Context, principal models.Principal, patientID uuid.UUID) ([]models.Prescription, error) {
	if _, err := s.patients.GetByID(ctx, principal.TenantID, patientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.prescriptions.ListByPatient(ctx, principal.TenantID, patientID)
}

// Get returns one prescription of the principal's tenant.
func (s *PrescriptionService) Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*models.Prescription, error) {
	prescription, err := s.prescriptions.GetByID(ctx, principal.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return prescription, nil
}

// Update modifies a prescription of the principal's tenant; zero-valued
// request fields leave the stored values unchanged.
func (s *PrescriptionService) Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *models.UpdatePrescriptionRequest) (*models.Prescription, error) {
	prescription, err := s.prescriptions.GetByID(ctx, principal.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Diagnosis != "" {
		prescription.Diagnosis = req.Diagnosis
	}
	if req.Medications != nil {
		prescription.Medications = req.Medications
	}
	if req.Tests != nil {
		prescription.Tests = req.Tests
	}
	if req.FollowUpDate != nil {
		prescription.FollowUpDate = req.FollowUpDate
	}
	if req.Notes != "" {
		prescription.Notes = req.Notes
	}

	if err := s.prescriptions.Update(ctx, prescription); err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, principal.TenantID, principal.UserID, "prescription.update", "prescription", prescription.ID.String())

	return prescription, nil
}

// Deactivate soft-disables a prescription of the principal's tenant.
func (s *PrescriptionService) Deactivate(ctx context.Context, principal models.Principal, id uuid.UUID) error {
	prescription, err := s.prescriptions.GetByID(ctx, principal.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	prescription.IsActive = false
	if err := s.prescriptions.Update(ctx, prescription); err != nil {
		return err
	}

	recordAudit(ctx, s.audit, principal.TenantID, principal.UserID, "prescription.deactivate", "prescription", prescription.ID.String())

	return nil
}
