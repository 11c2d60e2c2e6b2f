package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role is the closed set of staff roles.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleReceptionist Role = "receptionist"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleReceptionist:
		return true
	}
	return false
}

// JWTClaims represents custom JWT claims
type JWTClaims struct {
	UserID     uuid.UUID `json:"user_id"`
	TenantID   string    `json:"tenant_id"`
	HospitalID uuid.UUID `json:"hospital_id"`
	Role       Role      `json:"role"`
	jwt.RegisteredClaims
}

// Principal is the authenticated identity resolved from a verified token.
// It is constructed only by the authentication middleware and is valid for
// the life of a single request.
type Principal struct {
	UserID     uuid.UUID
	TenantID   string
	HospitalID uuid.UUID
	Role       Role
}

// RegisterRequest registers a new hospital and its first admin user
type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Address  Address `json:"address"`
	Password string  `json:"password"`
}

// LoginRequest exchanges credentials for a token
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserSummary is the public view of a user returned by auth endpoints
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     Role      `json:"role"`
	TenantID string    `json:"tenant_id"`
}

// HospitalSummary is the public view of a hospital returned by auth endpoints
type HospitalSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	TenantID string    `json:"tenant_id"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Message  string          `json:"message"`
	Token    string          `json:"token"`
	User     UserSummary     `json:"user"`
	Hospital HospitalSummary `json:"hospital"`
}
