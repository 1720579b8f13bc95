package tenant

import (
	"time"

	"github.com/google/uuid"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
)

// User belongs to at most one Organization. Deleting the organization
// removes its users (cascade added by the schema builder).
type User struct {
	dualid.DualID

	Username     string `gorm:"type:varchar(100);not null;uniqueIndex:idx_users_username;column:username;check:users_username_not_empty,length(trim(username)) > 0" json:"username"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email;column:email" json:"email"`
	PasswordHash string `gorm:"type:text;not null;column:password_hash" json:"-"`
	FullName     string `gorm:"type:text;column:full_name" json:"full_name,omitempty"`

	OrgUUID      *uuid.UUID    `gorm:"type:uuid;column:org_uuid;index:idx_users_org_uuid" json:"org_uuid,omitempty"`
	Organization *Organization `gorm:"foreignKey:OrgUUID;references:UUID" json:"organization,omitempty"`

	IsActive        bool `gorm:"not null;default:true;column:is_active" json:"is_active"`
	IsAdmin         bool `gorm:"not null;default:false;column:is_admin" json:"is_admin"`
	IsEmailVerified bool `gorm:"not null;default:false;column:is_email_verified" json:"is_email_verified"`

	LastLoginAt *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }
