package repository

import (
	"context"
	"fmt"

	"github.com/otcheredev/hms-backend/internal/database"
	"github.com/otcheredev/hms-backend/internal/models"
)

// AuditRepository handles audit log database operations
type AuditRepository struct{}

// NewAuditRepository creates a new audit repository
func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

// Create creates a new audit log entry
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	if err := database.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

// ListByTenant retrieves audit logs for a tenant, newest first
func (r *AuditRepository) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	query := database.DB.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to get audit logs: %w", err)
	}

	return logs, nil
}
