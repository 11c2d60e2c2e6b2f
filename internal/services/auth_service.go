package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/otcheredev/hms-backend/internal/auth"
	"github.com/otcheredev/hms-backend/internal/models"
	"github.com/otcheredev/hms-backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AuthService handles hospital registration and login
type AuthService struct {
	hospitals *repository.HospitalRepository
	users     *repository.UserRepository
	audit     *repository.AuditRepository
	codec     *auth.Codec
}

// NewAuthService creates a new auth service
func NewAuthService(
	hospitals *repository.HospitalRepository,
	users *repository.UserRepository,
	audit *repository.AuditRepository,
	codec *auth.Codec,
) *AuthService {
	return &AuthService{
		hospitals: hospitals,
		users:     users,
		audit:     audit,
		codec:     codec,
	}
}

// Register creates a new hospital with a fresh tenant identifier and its
// first admin user, then issues a token for that admin. Hospital and admin
// are created in one transaction; a duplicate email surfaces as
// ErrEmailTaken from the store's unique index, never from a
// check-then-insert sequence.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	tenantID, err := auth.NewTenantID()
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	hospital := &models.Hospital{
		TenantID: tenantID,
		Name:     req.Name,
		Email:    email,
		Phone:    req.Phone,
		Address:  req.Address,
		IsActive: true,
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The hospital's contact email doubles as the admin login. TenantID
	// and HospitalID are stamped inside the transaction.
	admin := &models.User{
		Name:         req.Name + " Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}

	if err := s.hospitals.CreateWithAdmin(ctx, hospital, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := s.codec.Issue(admin)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, tenantID, admin.ID, "hospital.register", "hospital", hospital.ID.String())
	log.Info().Str("tenant_id", tenantID).Str("hospital_id", hospital.ID.String()).Msg("Hospital registered")

	return &models.AuthResponse{
		Message: "Hospital registered successfully",
		Token:   token,
		User: models.UserSummary{
			ID:       admin.ID,
			Name:     admin.Name,
			Email:    admin.Email,
			Role:     admin.Role,
			TenantID: admin.TenantID,
		},
		Hospital: models.HospitalSummary{
			ID:       hospital.ID,
			Name:     hospital.Name,
			TenantID: hospital.TenantID,
		},
	}, nil
}

// Login exchanges credentials for a token carrying the user's current role
// and tenant. Unknown email and wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Burn a bcrypt comparison so this path's timing matches
			// the wrong-password path.
			auth.BurnPasswordCheck(req.Password)
			log.Warn().Msg("Login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		log.Warn().Str("user_id", user.ID.String()).Msg("Login attempt for deactivated user")
		return nil, ErrAccountInactive
	}

	hospital, err := s.hospitals.GetByTenantID(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	if !hospital.IsActive {
		log.Warn().Str("tenant_id", user.TenantID).Msg("Login attempt for deactivated hospital")
		return nil, ErrAccountInactive
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		log.Warn().Str("user_id", user.ID.String()).Msg("Login attempt with wrong password")
		return nil, ErrInvalidCredentials
	}

	token, err := s.codec.Issue(user)
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Str("tenant_id", user.TenantID).Msg("User logged in")

	return &models.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User: models.UserSummary{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Role:     user.Role,
			TenantID: user.TenantID,
		},
		Hospital: models.HospitalSummary{
			ID:       hospital.ID,
			Name:     hospital.Name,
			TenantID: hospital.TenantID,
		},
	}, nil
}
