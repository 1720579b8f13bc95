package tenant

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
)

// Feedback captures user-submitted feedback with page context. Either
// UserUUID (authenticated) or UserEmail (anonymous) identifies the sender.
type Feedback struct {
	dualid.DualID

	Type        string `gorm:"type:text;not null;column:type;index:idx_feedback_type;check:feedback_type_not_empty,length(trim(type)) > 0" json:"type"`
	Description string `gorm:"type:text;not null;column:description;check:feedback_description_not_empty,length(trim(description)) > 0" json:"description"`

	PageContext datatypes.JSON `gorm:"type:jsonb;column:page_context" json:"page_context,omitempty"`

	UserUUID  *uuid.UUID `gorm:"type:uuid;column:user_uuid;index:idx_feedback_user_uuid" json:"user_uuid,omitempty"`
	User      *User      `gorm:"foreignKey:UserUUID;references:UUID" json:"user,omitempty"`
	UserEmail *string    `gorm:"type:text;column:user_email" json:"user_email,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at;index:idx_feedback_created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (Feedback) TableName() string { return "feedback" }
