package security

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
	"github.com/agentsx-dev/axai-pg/domain/tenant"
)

// Policy types accepted by security_policies.
const (
	PolicyAccessControl  = "ACCESS_CONTROL"
	PolicyDataProtection = "DATA_PROTECTION"
	PolicyAudit          = "AUDIT"
	PolicyRateLimit      = "RATE_LIMIT"
)

// SecurityPolicy is a named, typed policy document stored as JSONB.
type SecurityPolicy struct {
	dualid.DualID

	Name       string         `gorm:"type:text;not null;uniqueIndex:uq_security_policies_name;column:name;check:security_policies_name_not_empty,length(trim(name)) > 0" json:"name"`
	PolicyType string         `gorm:"type:varchar(30);not null;column:policy_type;check:security_policies_valid_policy_type,policy_type IN ('ACCESS_CONTROL','DATA_PROTECTION','AUDIT','RATE_LIMIT')" json:"policy_type"`
	PolicyData datatypes.JSON `gorm:"type:jsonb;not null;column:policy_data" json:"policy_data"`

	Description   *string      `gorm:"type:text;column:description" json:"description,omitempty"`
	IsActive      bool         `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedByUUID *uuid.UUID   `gorm:"type:uuid;column:created_by_uuid" json:"created_by_uuid,omitempty"`
	CreatedBy     *tenant.User `gorm:"foreignKey:CreatedByUUID;references:UUID" json:"created_by,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (SecurityPolicy) TableName() string { return "security_policies" }
