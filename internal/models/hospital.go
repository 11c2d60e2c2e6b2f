package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is a postal address embedded in a hospital record
type Address struct {
	Street  string `gorm:"type:varchar(255)" json:"street"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	State   string `gorm:"type:varchar(100)" json:"state"`
	ZipCode string `gorm:"type:varchar(20)" json:"zip_code"`
	Country string `gorm:"type:varchar(100)" json:"country"`
}

// Hospital represents a tenant. TenantID is the opaque scoping key stamped
// on every row the hospital owns; it is generated once at registration and
// never changes.
type Hospital struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"tenant_id"`
	Name     string    `gorm:"type:varchar(255);not null" json:"name"`
	Email    string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Phone    string    `gorm:"type:varchar(30);not null" json:"phone"`
	Address  Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	IsActive bool      `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Hospital) TableName() string {
	return "hospitals"
}

// BeforeCreate hook
func (h *Hospital) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// UpdateHospitalRequest updates the hospital profile
type UpdateHospitalRequest struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Address *Address `json:"address"`
}
