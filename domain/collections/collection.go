package collections

import (
	"time"

	"github.com/google/uuid"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
	"github.com/agentsx-dev/axai-pg/domain/tenant"
)

// Collection graph synchronization states.
const (
	GraphStateUninitialized = "uninitialized"
	GraphStateInitializing  = "initializing"
	GraphStateSynchronized  = "synchronized"
	GraphStateOutOfSync     = "out_of_sync"
	GraphStateUpdating      = "updating"
	GraphStateError         = "error"
)

// Collection groups documents and carries the merged graph view. Collections
// form a tree through ParentUUID; deleting a parent cascades to descendants.
//
// EntityCount, RelationshipCount and DocumentCount are eventually-consistent
// caches over the merged-entity, merged-relationship and membership tables.
// Writers maintain them; RefreshCounts recomputes them. Concurrent writers
// can lose counter updates (last write wins at the field level).
type Collection struct {
	dualid.DualID

	Name        string  `gorm:"type:text;not null;column:name;check:collections_name_not_empty,length(trim(name)) > 0" json:"name"`
	Description *string `gorm:"type:text;column:description" json:"description,omitempty"`

	OwnerUUID uuid.UUID            `gorm:"type:uuid;not null;column:owner_uuid;index:idx_collections_owner_uuid" json:"owner_uuid"`
	Owner     *tenant.User         `gorm:"foreignKey:OwnerUUID;references:UUID" json:"owner,omitempty"`
	OrgUUID   *uuid.UUID           `gorm:"type:uuid;column:org_uuid;index:idx_collections_org_uuid" json:"org_uuid,omitempty"`
	Org       *tenant.Organization `gorm:"foreignKey:OrgUUID;references:UUID" json:"org,omitempty"`

	ParentUUID *uuid.UUID  `gorm:"type:uuid;column:parent_uuid;index:idx_collections_parent_uuid" json:"parent_uuid,omitempty"`
	Parent     *Collection `gorm:"foreignKey:ParentUUID;references:UUID" json:"parent,omitempty"`

	IsDeleted bool       `gorm:"not null;default:false;column:is_deleted;index:idx_collections_is_deleted" json:"is_deleted"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	IsGraphGenerated bool       `gorm:"not null;default:false;column:is_graph_generated;index:idx_collections_is_graph_generated" json:"is_graph_generated"`
	GraphGeneratedAt *time.Time `gorm:"column:graph_generated_at" json:"graph_generated_at,omitempty"`

	DefaultVisibilityProfileUUID *uuid.UUID `gorm:"type:uuid;column:default_visibility_profile_uuid;index:idx_collections_default_visibility_profile_uuid" json:"default_visibility_profile_uuid,omitempty"`

	EntityCount       int `gorm:"not null;default:0;column:entity_count" json:"entity_count"`
	RelationshipCount int `gorm:"not null;default:0;column:relationship_count" json:"relationship_count"`
	DocumentCount     int `gorm:"not null;default:0;column:document_count" json:"document_count"`

	GraphState        string     `gorm:"type:varchar(20);not null;default:'uninitialized';column:graph_state;check:collections_valid_graph_state,graph_state IN ('uninitialized','initializing','synchronized','out_of_sync','updating','error')" json:"graph_state"`
	EntitiesHash      *string    `gorm:"type:text;column:entities_hash" json:"entities_hash,omitempty"`
	LastSyncTimestamp *time.Time `gorm:"column:last_sync_timestamp" json:"last_sync_timestamp,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (Collection) TableName() string { return "collections" }
