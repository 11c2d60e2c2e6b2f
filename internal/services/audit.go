package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/otcheredev/hms-backend/internal/models"
	"github.com/otcheredev/hms-backend/internal/repository"
	"github.com/rs/zerolog/log"
)

// recordAudit writes an audit entry best-effort: a failing audit insert is
// logged but never fails the business operation that triggered it.
func recordAudit(ctx context.Context, repo *repository.AuditRepository, tenantID string, userID uuid.UUID, action, resourceType, resourceID string) {
	if repo == nil {
		return
	}
	entry := &models.AuditLog{
		TenantID:     tenantID,
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Status:       "success",
	}
	if err := repo.Create(ctx, entry); err != nil {
		log.Warn().Err(err).Str("action", action).Msg("Failed to write audit log")
	}
}
