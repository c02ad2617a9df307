package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditAction enumerates the kinds of recorded mutations
type AuditAction string

const (
	AuditActionCreate  AuditAction = "CREATE"
	AuditActionUpdate  AuditAction = "UPDATE"
	AuditActionDelete  AuditAction = "DELETE"
	AuditActionArchive AuditAction = "ARCHIVE"
	AuditActionAIApply AuditAction = "AI_APPLY"
)

// AuditLog is an immutable record of one state-changing operation.
// Rows are append-only: nothing in the system updates or deletes them.
// Before/After are opaque per-entity snapshots, not a fixed schema.
type AuditLog struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	Action     AuditAction    `json:"action" gorm:"type:varchar(20);not null;index"`
	EntityType string         `json:"entity_type" gorm:"type:varchar(50);not null;index:idx_audit_entity"`
	EntityID   uuid.UUID      `json:"entity_id" gorm:"type:uuid;not null;index:idx_audit_entity"`
	Before     datatypes.JSON `json:"before,omitempty" gorm:"type:jsonb"`
	After      datatypes.JSON `json:"after,omitempty" gorm:"type:jsonb"`
	UserID     uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	User       *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	MeetingID  *uuid.UUID     `json:"meeting_id,omitempty" gorm:"type:uuid;index"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate assigns the primary key
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
