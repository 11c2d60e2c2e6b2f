package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender values accepted for a patient record
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether the gender is one of the accepted values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// EmergencyContact is a patient's emergency contact
type EmergencyContact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Relation string `json:"relation"`
}

// Patient represents a patient registered with a hospital. The phone number
// is unique per tenant, not globally.
type Patient struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID         string           `gorm:"type:varchar(64);not null;index;uniqueIndex:idx_patients_tenant_phone" json:"tenant_id"`
	HospitalID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"hospital_id"`
	Name             string           `gorm:"type:varchar(255);not null" json:"name"`
	DateOfBirth      time.Time        `gorm:"not null" json:"date_of_birth"`
	Gender           Gender           `gorm:"type:varchar(10);not null" json:"gender"`
	Phone            string           `gorm:"type:varchar(30);not null;uniqueIndex:idx_patients_tenant_phone" json:"phone"`
	Email            string           `gorm:"type:varchar(255)" json:"email,omitempty"`
	Address          string           `gorm:"type:text" json:"address,omitempty"`
	EmergencyContact EmergencyContact `gorm:"serializer:json;type:jsonb" json:"emergency_contact"`
	BloodType        string           `gorm:"type:varchar(5)" json:"blood_type,omitempty"`
	Allergies        []string         `gorm:"serializer:json;type:jsonb" json:"allergies"`
	MedicalHistory   []string         `gorm:"serializer:json;type:jsonb" json:"medical_history"`
	CreatedBy        uuid.UUID        `gorm:"type:uuid" json:"created_by"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Patient) TableName() string {
	return "patients"
}

// BeforeCreate hook
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CreatePatientRequest registers a new patient
type CreatePatientRequest struct {
	Name             string           `json:"name"`
	DateOfBirth      string           `json:"date_of_birth"`
	Gender           Gender           `json:"gender"`
	Phone            string           `json:"phone"`
	Email            string           `json:"email"`
	Address          string           `json:"address"`
	EmergencyContact EmergencyContact `json:"emergency_contact"`
	BloodType        string           `json:"blood_type"`
	Allergies        []string         `json:"allergies"`
	MedicalHistory   []string         `json:"medical_history"`
}

// UpdatePatientRequest updates an existing patient; zero-valued fields are
// left unchanged.
type UpdatePatientRequest struct {
	Name             string            `json:"name"`
	DateOfBirth      string            `json:"date_of_birth"`
	Gender           Gender            `json:"gender"`
	Phone            string            `json:"phone"`
	Email            string            `json:"email"`
	Address          string            `json:"address"`
	EmergencyContact *EmergencyContact `json:"emergency_contact"`
	BloodType        string            `json:"blood_type"`
	Allergies        []string          `json:"allergies"`
	MedicalHistory   []string          `json:"medical_history"`
}
