package security

import (
	"time"

	"github.com/google/uuid"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
	"github.com/agentsx-dev/axai-pg/domain/tenant"
)

// RateLimit counts actions of one type by one user inside a fixed window.
// The (user, action, window) triple is unique so concurrent increments
// resolve to a single row.
type RateLimit struct {
	dualid.DualID

	UserUUID    uuid.UUID    `gorm:"type:uuid;not null;column:user_uuid;uniqueIndex:uq_rate_limits_user_action_window,priority:1" json:"user_uuid"`
	User        *tenant.User `gorm:"foreignKey:UserUUID;references:UUID" json:"user,omitempty"`
	ActionType  string       `gorm:"type:text;not null;column:action_type;uniqueIndex:uq_rate_limits_user_action_window,priority:2" json:"action_type"`
	WindowStart time.Time    `gorm:"not null;column:window_start;uniqueIndex:uq_rate_limits_user_action_window,priority:3" json:"window_start"`

	Count int `gorm:"not null;default:1;column:count;check:rate_limits_positive_count,count > 0" json:"count"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (RateLimit) TableName() string { return "rate_limits" }
