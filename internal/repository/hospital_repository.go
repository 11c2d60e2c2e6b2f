package repository

import (
	"context"
	"fmt"

	"github.com/otcheredev/hms-backend/internal/database"
	"github.com/otcheredev/hms-backend/internal/models"
	"gorm.io/gorm"
)

// HospitalRepository handles hospital database operations
type HospitalRepository struct{}

// NewHospitalRepository creates a new hospital repository
func NewHospitalRepository() *HospitalRepository {
	return &HospitalRepository{}
}

// CreateWithAdmin creates a hospital and its first admin user in a single
// transaction, so a registration failure never leaves a hospital without an
// administrator.
func (r *HospitalRepository) CreateWithAdmin(ctx context.Context, hospital *models.Hospital, admin *models.User) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(hospital).Error; err != nil {
			return fmt.Errorf("failed to create hospital: %w", err)
		}
		admin.TenantID = hospital.TenantID
		admin.HospitalID = hospital.ID
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		return nil
	})
}

// GetByTenantID retrieves a hospital by its tenant identifier
func (r *HospitalRepository) GetByTenantID(ctx context.Context, tenantID string) (*models.Hospital, error) {
	var hospital models.Hospital
	if err := database.DB.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		First(&hospital).Error; err != nil {
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	return &hospital, nil
}

// Update updates a hospital profile
func (r *HospitalRepository) Update(ctx context.Context, hospital *models.Hospital) error {
	if err := database.DB.WithContext(ctx).Save(hospital).Error; err != nil {
		return fmt.Errorf("failed to update hospital: %w", err)
	}
	return nil
}

// Deactivate soft-disables a hospital; rows are never hard-deleted
func (r *HospitalRepository) Deactivate(ctx context.Context, tenantID string) error {
	result := database.DB.WithContext(ctx).
		Model(&models.Hospital{}).
		Scopes(TenantScope(tenantID)).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate hospital: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
