package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/otcheredev/hms-backend/internal/auth"
	"github.com/otcheredev/hms-backend/internal/models"
	"github.com/otcheredev/hms-backend/internal/repository"
	"gorm.io/gorm"
)

// UserService handles staff user business logic. Every operation is scoped
// to the principal's tenant.
type UserService struct {
	users *repository.UserRepository
	audit *repository.AuditRepository
}

// NewUserService creates a new user service
func NewUserService(users *repository.UserRepository, audit *repository.AuditRepository) *UserService {
	return &UserService{users: users, audit: audit}
}

// Create adds a staff member to the principal's hospital. Role changes take
// effect on the new user's first token; the creating admin's own token is
// unaffected.
func (s *UserService) Create(ctx context.Context, principal models.Principal, req *models.CreateUserRequest) (*models.User, error) {
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		TenantID:     principal.TenantID,
		HospitalID:   principal.HospitalID,
		Name:         req.Name,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	recordAudit(ctx, s.audit, principal.TenantID, principal.UserID, "user.create", "user", user.ID.String())

	return user, nil
}

// List returns every staff member of the principal's tenant.
func (s *UserService) List(ctx context.Context, principal models.Principal) ([]models.User, error) {
	return s.users.ListByTenant(ctx, principal.TenantID)
}

// Get returns one staff member of the principal's tenant.
func (s *UserService) Get(ctx context.Context, principal models.Principal, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, principal.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update modifies a staff member of the principal's tenant. Only an admin
// may change a user's role; for other callers the role field is ignored. A
// role change only takes effect when the affected user next logs in.
func (s *UserService) Update(ctx context.Context, principal models.Principal, id uuid.UUID, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.users.GetByID(ctx, principal.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	// Role changes are admin-only; a non-admin sending a role field must
	// not be able to promote anyone, least of all themselves.
	if req.Role != "" && principal.Role == models.RoleAdmin {
		if !req.Role.Valid() {
			return nil, ErrInvalidRole
		}
		user.Role = req.Role
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	recordAudit(ctx, s.audit, principal.TenantID, principal.UserID, "user.update", "user", user.ID.String())

	return user, nil
}

// Deactivate soft-disables a staff member. The user's outstanding tokens
// stay verifiable until they expire; deactivation bites at next login.
func (s *UserService) Deactivate(ctx context.Context, principal models.Principal, id uuid.UUID) error {
	user, err := s.users.GetByID(ctx, principal.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	user.IsActive = false
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	recordAudit(ctx, s.audit, principal.TenantID, principal.UserID, "user.deactivate", "user", user.ID.String())

	return nil
}
