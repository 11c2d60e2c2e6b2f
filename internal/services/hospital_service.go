package services

import (
	"context"
	"errors"
	"strings"

	"github.com/otcheredev/hms-backend/internal/models"
	"github.com/otcheredev/hms-backend/internal/repository"
	"gorm.io/gorm"
)

// HospitalService handles hospital profile business logic. A principal can
// only ever see and modify its own hospital.
type HospitalService struct {
	hospitals *repository.HospitalRepository
	audit     *repository.AuditRepository
}

// NewHospitalService creates a new hospital service
func NewHospitalService(hospitals *repository.HospitalRepository, audit *repository.AuditRepository) *HospitalService {
	return &HospitalService{hospitals: hospitals, audit: audit}
}

// Get returns the principal's own hospital profile.
func (s *HospitalService) Get(ctx context.Context, principal models.Principal) (*models.Hospital, error) {
	hospital, err := s.hospitals.GetByTenantID(ctx, principal.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return hospital, nil
}

// Update modifies the principal's own hospital profile.
func (s *HospitalService) Update(ctx context.Context, principal models.Principal, req *models.UpdateHospitalRequest) (*models.Hospital, error) {
	hospital, err := s.hospitals.GetByTenantID(ctx, principal.TenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		hospital.Name = req.Name
	}
	if req.Email != "" {
		hospital.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Phone != "" {
		hospital.Phone = req.Phone
	}
	if req.Address != nil {
		hospital.Address = *req.Address
	}

	if err := s.hospitals.Update(ctx, hospital); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	recordAudit(ctx, s.audit, principal.TenantID, principal.UserID, "hospital.update", "hospital", hospital.ID.String())

	return hospital, nil
}

// Deactivate soft-disables the principal's own hospital. Staff can no
// longer log in; outstanding tokens expire naturally.
func (s *HospitalService) Deactivate(ctx context.Context, principal models.Principal) error {
	if err := s.hospitals.Deactivate(ctx, principal.TenantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	recordAudit(ctx, s.audit, principal.TenantID, principal.UserID, "hospital.deactivate", "hospital", principal.HospitalID.String())

	return nil
}

// ListAudit returns the tenant's audit trail, newest first.
func (s *HospitalService) ListAudit(ctx context.Context, principal models.Principal, limit, offset int) ([]models.AuditLog, error) {
	return s.audit.ListByTenant(ctx, principal.TenantID, limit, offset)
}
