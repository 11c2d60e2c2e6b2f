package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/otcheredev/hms-backend/internal/database"
	"github.com/otcheredev/hms-backend/internal/models"
)

// PatientRepository handles patient database operations
type PatientRepository struct{}

// NewPatientRepository creates a new patient repository
func NewPatientRepository() *PatientRepository {
	return &PatientRepository{}
}

// Create creates a new patient record
func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if err := database.DB.WithContext(ctx).Create(patient).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

// GetByID retrieves a patient within the given tenant
func (r *PatientRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.Patient, error) {
	var patient models.Patient
	if err := database.DB.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Where("id = ?", id).
		First(&patient).Error; err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

// ListByTenant retrieves all patients of a tenant, newest first
func (r *PatientRepository) ListByTenant(ctx context.Context, tenantID string) ([]models.Patient, error) {
	var patients []models.Patient
	if err := database.DB.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Order("created_at DESC").
		Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// Search retrieves patients of a tenant whose name or phone matches the
// query, case-insensitively.
func (r *PatientRepository) Search(ctx context.Context, tenantID, query string) ([]models.Patient, error) {
	var patients []models.Patient
	pattern := "%" + query + "%"
	if err := database.DB.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Where("name ILIKE ? OR phone ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

// Update updates a patient record
func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	if err := database.DB.WithContext(ctx).Save(patient).Error; err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}
