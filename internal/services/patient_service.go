package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/otcheredev/hms-backend/internal/cache"
	"github.com/otcheredev/hms-backend/internal/models"
	"github.com/otcheredev/hms-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PatientService handles patient business logic. Every operation is scoped
// to the principal's tenant.
type PatientService struct {
	patients *repository.PatientRepository
	audit    *repository.AuditRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewPatientService creates a new patient service
func NewPatientService(
	patients *repository.PatientRepository,
	audit *repository.AuditRepository,
	c cache.Cache,
	cacheTTL time.Duration,
) *PatientService {
	return &PatientService{
		patients: patients,
		audit:    audit,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// Create registers a patient under the principal's tenant. A duplicate
// phone number within the tenant surfaces as ErrDuplicatePhone from the
// composite unique index.
func (s *PatientService) Create(ctx context.Context, principal models.Principal, req *models.CreatePatientRequest) (*models.Patient, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("invalid date of birth: %w", err)
	}

	patient := &models.Patient{
		TenantID:         principal.TenantID,
		HospitalID:       principal.HospitalID,
		Name:             req.Name,
		DateOfBirth:      dob,
		Gender:           req.Gender,
		Phone:            req.Phone,
		Email:            req.Email,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		BloodType:        req.BloodType,
		Allergies:        req.Allergies,
		MedicalHistory:   req.MedicalHistory,
		CreatedBy:        principal.UserID,
	}

	if err := s.patients.Create(ctx, patient); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePhone
		}
		return nil, err
	}

	s.invalidateList(ctx, principal.TenantID)
	recordAudit(ctx, s.audit, principal.TenantID, principal.UserID, "patient.create", "patient", patient.ID.String())

	return patient, nil
}

// List returns every patient of the principal's tenant, served from cache
// when possible.
func (s *PatientService) List(ctx context.Context, principal models.Principal) ([]models.Patient, error) {
	key := cache.Key(principal.TenantID, "patients", "list")

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil {
			var patients []models.Patient
			if err := json.Unmarshal(raw, &patients); err == nil {
				return patients, nil
			}
		}
	}

	patients, err := s.patients.ListByTenant(ctx, principal.TenantID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(patients); err == nil {
			if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
				log.Warn().Err(err).Msg("Failed to cache patient list")
			}
		}
	}

	return patients, nil
}

// Search returns the tenant's patients whose name or phone matches query.
func (s *PatientService) Search(ctx context.Context, principal models.Principal, query string) ([]models.Patient, error) {
	return s.patients.Search(ctx, principal.TenantID, query)
}

// Get returns one patient of the principal's tenant. A patient owned by
// another tenant is reported as not found.
func (s *PatientService) Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*models.Patient, error) {
	patient, err := s.patients.GetByID(ctx, principal.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return patient, nil
}

// Update modifies a patient of the principal's tenant; zero-valued request
// fields leave the stored values unchanged.
func (s *PatientService) Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *models.UpdatePatientRequest) (*models.Patient, error) {
	patient, err := s.patients.GetByID(ctx, principal.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		patient.Name = req.Name
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("invalid date of birth: %w", err)
		}
		patient.DateOfBirth = dob
	}
	if req.Gender != "" {
		if !req.Gender.Valid() {
			return nil, fmt.Errorf("invalid gender: %s", req.Gender)
		}
		patient.Gender = req.Gender
	}
	if req.Phone != "" {
		patient.Phone = req.Phone
	}
	if req.Email != "" {
		patient.Email = req.Email
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.EmergencyContact != nil {
		patient.EmergencyContact = *req.EmergencyContact
	}
	if req.BloodType != "" {
		patient.BloodType = req.BloodType
	}
	if req.Allergies != nil {
		patient.Allergies = req.Allergies
	}
	if req.MedicalHistory != nil {
		patient.MedicalHistory = req.MedicalHistory
	}

	if err := s.patients.Update(ctx, patient); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePhone
		}
		return nil, err
	}

	s.invalidateList(ctx, principal.TenantID)
	recordAudit(ctx, s.audit, principal.TenantID, principal.UserID, "patient.update", "patient", patient.ID.String())

	return patient, nil
}

func (s *PatientService) invalidateList(ctx context.Context, tenantID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Clear(ctx, cache.TenantPattern(tenantID, "patients")); err != nil {
		log.Warn().Err(err).Str("tenant_id", tenantID).Msg("Failed to invalidate patient cache")
	}
}
