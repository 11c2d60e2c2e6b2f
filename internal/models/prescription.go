package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Medication is a single prescribed medication
type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// TestOrder is a diagnostic test ordered with a prescription
type TestOrder struct {
	Name         string `json:"name"`
	Instructions string `json:"instructions,omitempty"`
}

// Prescription represents a prescription issued by a doctor for a patient
// of the same hospital. Deactivation is soft; rows are never deleted.
type Prescription struct {
	ID           uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID     string       `gorm:"type:varchar(64);not null;index" json:"tenant_id"`
	HospitalID   uuid.UUID    `gorm:"type:uuid;not null;index" json:"hospital_id"`
	PatientID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Diagnosis    string       `gorm:"type:text;not null" json:"diagnosis"`
	Medications  []Medication `gorm:"serializer:json;type:jsonb" json:"medications"`
	Tests        []TestOrder  `gorm:"serializer:json;type:jsonb" json:"tests"`
	FollowUpDate *time.Time   `json:"follow_up_date,omitempty"`
	Notes        string       `gorm:"type:text" json:"notes,omitempty"`
	IsActive     bool         `json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Prescription) TableName() string {
	return "prescriptions"
}

// BeforeCreate hook
func (p *Prescription) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// CreatePrescriptionRequest creates a prescription for a patient
type CreatePrescriptionRequest struct {
	PatientID    uuid.UUID    `json:"patient_id"`
	Diagnosis    string       `json:"diagnosis"`
	Medications  []Medication `json:"medications"`
	Tests        []TestOrder  `json:"tests"`
	FollowUpDate *time.Time   `json:"follow_up_date"`
	Notes        string       `json:"notes"`
}

// UpdatePrescriptionRequest updates an existing prescription; zero-valued
// fields are left unchanged.
type UpdatePrescriptionRequest struct {
	Diagnosis    string       `json:"diagnosis"`
	Medications  []Medication `json:"medications"`
	Tests        []TestOrder  `json:"tests"`
	FollowUpDate *time.Time   `json:"follow_up_date"`
	Notes        string       `json:"notes"`
}
