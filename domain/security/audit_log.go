package security

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
	"github.com/agentsx-dev/axai-pg/domain/tenant"
)

// AuditLog is an append-only record of a security-relevant action. Username
// is denormalized so the entry survives deletion of the user row, whose FK
// nulls out instead of cascading.
type AuditLog struct {
	dualid.DualID

	UserUUID *uuid.UUID   `gorm:"type:uuid;column:user_uuid;index:idx_audit_logs_user_uuid" json:"user_uuid,omitempty"`
	User     *tenant.User `gorm:"foreignKey:UserUUID;references:UUID" json:"user,omitempty"`
	Username string       `gorm:"type:text;not null;column:username" json:"username"`

	Action     string    `gorm:"type:text;not null;column:action;index:idx_audit_logs_action" json:"action"`
	ActionTime time.Time `gorm:"not null;default:now();column:action_time;index:idx_audit_logs_action_time" json:"action_time"`

	ResourceType *string        `gorm:"type:text;column:resource_type;index:idx_audit_logs_resource,priority:1" json:"resource_type,omitempty"`
	ResourceUUID *uuid.UUID     `gorm:"type:uuid;column:resource_uuid;index:idx_audit_logs_resource,priority:2" json:"resource_uuid,omitempty"`
	Details      datatypes.JSON `gorm:"type:jsonb;column:details" json:"details,omitempty"`
}

func (AuditLog) TableName() string { return "audit_logs" }
