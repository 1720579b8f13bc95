package security

import (
	"time"

	"github.com/google/uuid"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
	"github.com/agentsx-dev/axai-pg/domain/tenant"
)

// Permission types accepted by role_permissions.
const (
	PermissionRead   = "READ"
	PermissionCreate = "CREATE"
	PermissionUpdate = "UPDATE"
	PermissionDelete = "DELETE"
)

// Role is a named permission bundle. Permissions holds a legacy
// comma-separated list kept for older callers; RolePermission rows are the
// authoritative grants.
type Role struct {
	dualid.DualID

	Name        string  `gorm:"type:text;not null;uniqueIndex:uq_roles_name;column:name;check:roles_name_not_empty,length(trim(name)) > 0" json:"name"`
	Description *string `gorm:"type:text;column:description" json:"description,omitempty"`
	Permissions *string `gorm:"type:text;column:permissions" json:"permissions,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (Role) TableName() string { return "roles" }

// UserRole assigns a Role to a User. RoleName mirrors the role's name at
// assignment time for older callers that query by name.
type UserRole struct {
	dualid.DualID

	UserUUID uuid.UUID    `gorm:"type:uuid;not null;column:user_uuid;uniqueIndex:uq_user_role,priority:1" json:"user_uuid"`
	User     *tenant.User `gorm:"foreignKey:UserUUID;references:UUID" json:"user,omitempty"`
	RoleUUID uuid.UUID    `gorm:"type:uuid;not null;column:role_uuid;uniqueIndex:uq_user_role,priority:2" json:"role_uuid"`
	Role     *Role        `gorm:"foreignKey:RoleUUID;references:UUID" json:"role,omitempty"`

	RoleName *string `gorm:"type:text;column:role_name" json:"role_name,omitempty"`

	AssignedAt     time.Time    `gorm:"not null;default:now();column:assigned_at" json:"assigned_at"`
	AssignedByUUID *uuid.UUID   `gorm:"type:uuid;column:assigned_by_uuid" json:"assigned_by_uuid,omitempty"`
	AssignedBy     *tenant.User `gorm:"foreignKey:AssignedByUUID;references:UUID" json:"assigned_by,omitempty"`
}

func (UserRole) TableName() string { return "user_roles" }

// RolePermission grants one permission type on one resource to a role,
// keyed by role name.
type RolePermission struct {
	dualid.DualID

	RoleName       string `gorm:"type:text;not null;column:role_name;uniqueIndex:uq_role_permission,priority:1" json:"role_name"`
	ResourceName   string `gorm:"type:text;not null;column:resource_name;uniqueIndex:uq_role_permission,priority:2" json:"resource_name"`
	PermissionType string `gorm:"type:varchar(20);not null;column:permission_type;uniqueIndex:uq_role_permission,priority:3;check:role_permissions_valid_permission_type,permission_type IN ('READ','CREATE','UPDATE','DELETE')" json:"permission_type"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
}

func (RolePermission) TableName() string { return "role_permissions" }
