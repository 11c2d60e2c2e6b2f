package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog represents an audit log entry
type AuditLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID     string    `gorm:"type:varchar(64);not null;index" json:"tenant_id"`
	UserID       uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Action       string    `gorm:"type:varchar(100);not null;index" json:"action"`
	ResourceType string    `gorm:"type:varchar(50);index" json:"resource_type"`
	ResourceID   string    `gorm:"type:varchar(64);index" json:"resource_id"`
	Status       string    `gorm:"type:varchar(20);index" json:"status"` // success, failure
	ErrorMessage string    `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"timestamp"`
}

// TableName overrides the table name
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate hook
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
