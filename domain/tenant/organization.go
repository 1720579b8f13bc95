package tenant

import (
	"time"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
)

// Organization is the tenant boundary: every org-scoped row hangs off one of
// these via org_uuid.
type Organization struct {
	dualid.DualID

	Name string `gorm:"type:text;not null;column:name;uniqueIndex:idx_organizations_name;check:organizations_name_not_empty,length(trim(name)) > 0" json:"name"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (Organization) TableName() string { return "organizations" }
