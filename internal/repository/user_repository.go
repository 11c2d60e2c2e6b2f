package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/otcheredev/hms-backend/internal/database"
	"github.com/otcheredev/hms-backend/internal/models"
)

// UserRepository handles staff user database operations
type UserRepository struct{}

// NewUserRepository creates a new user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Create creates a new staff user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := database.DB.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by email. This is the only unscoped lookup in
// the repository layer: at login time the tenant is not yet known, and the
// global unique index on email guarantees a single match.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := database.DB.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user within the given tenant
func (r *UserRepository) GetByID(ctx context.Context, tenantID string, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := database.DB.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ListByTenant retrieves all users of a tenant
func (r *UserRepository) ListByTenant(ctx context.Context, tenantID string) ([]models.User, error) {
	var users []models.User
	if err := database.DB.WithContext(ctx).
		Scopes(TenantScope(tenantID)).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if err := database.DB.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
