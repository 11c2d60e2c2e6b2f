package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/otcheredev/hms-backend/internal/database"
	"github.com/otcheredev/hms-backend/internal/models"
)

// PrescriptionRepository handles prescription database operations
type PrescriptionRepository struct{}

// NewPrescriptionRepository creates a new prescription repository
func NewPrescriptionRepository() *PrescriptionRepository {
	return &PrescriptionRepository{}
}

// Create creates a new prescription
func (r *PrescriptionRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	if err := database.DB.WithContext(ctx).Create(prescription).Error; err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

// GetByID retrieves a prescription within the given tenant
func (r *PrescriptionRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.Prescription, error) {
	var prescription models.Prescription
	if err := database.DB.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Where("id = ?", id).
		First(&prescription).Error; err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &prescription, nil
}

// ListByTenant retrieves all prescriptions of a tenant, newest first
func (r *PrescriptionRepository) ListByTenant(ctx context.Context, tenantID string) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	if err := database.DB.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Order("created_at DESC").
		Find(&prescriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

// ListByPatient retrieves all prescriptions for one patient of a tenant
func (r *PrescriptionRepository) ListByPatient(ctx context.Context, tenantID string, patientID uuid.UUID) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	if err := database.DB.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&prescriptions).Error; err != nil {
		return nil, fmt.Errorf("failed to list prescriptions by patient: %w", err)
	}
	return prescriptions, nil
}

// Update updates a prescription
func (r *PrescriptionRepository) Update(ctx context.Context, prescription *models.Prescription) error {
	if err := database.DB.WithContext(ctx).Save(prescription).Error; err != nil {
		return fmt.Errorf("failed to update prescription: %w", err)
	}
	return nil
}
