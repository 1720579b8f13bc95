package collections

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
)

// Merged-entity lifecycle states.
const (
	LifecycleIndividual = "individual"
	LifecycleLinked     = "linked"
	LifecycleMerging    = "merging"
	LifecycleMerged     = "merged"
	LifecycleUnmerging  = "unmerging"
	LifecycleError      = "error"
)

// CollectionEntity is a merged view of one or more graph entities at
// collection scope. Provenance lives in the collection_entity_sources
// junction rows, not in an array column.
type CollectionEntity struct {
	dualid.DualID

	CollectionUUID uuid.UUID   `gorm:"type:uuid;not null;column:collection_uuid;index:idx_collection_entities_collection_uuid" json:"collection_uuid"`
	Collection     *Collection `gorm:"foreignKey:CollectionUUID;references:UUID" json:"collection,omitempty"`

	EntityID   string `gorm:"type:text;not null;column:entity_id;index:idx_collection_entities_entity_id;check:collection_entities_entity_id_not_empty,length(trim(entity_id)) > 0" json:"entity_id"`
	EntityType string `gorm:"type:text;not null;column:entity_type;index:idx_collection_entities_entity_type" json:"entity_type"`

	Name        string         `gorm:"type:text;not null;column:name;check:collection_entities_name_not_empty,length(trim(name)) > 0" json:"name"`
	DisplayName *string        `gorm:"type:text;column:display_name" json:"display_name,omitempty"`
	Description *string        `gorm:"type:text;column:description" json:"description,omitempty"`
	Properties  datatypes.JSON `gorm:"type:jsonb;column:properties" json:"properties,omitempty"`

	IsMerged            bool       `gorm:"not null;default:false;column:is_merged" json:"is_merged"`
	CreatedFromLinkUUID *uuid.UUID `gorm:"type:uuid;column:created_from_link_uuid" json:"created_from_link_uuid,omitempty"`
	LifecycleState      string     `gorm:"type:varchar(20);not null;default:'individual';column:lifecycle_state;check:collection_entities_valid_lifecycle,lifecycle_state IN ('individual','linked','merging','merged','unmerging','error')" json:"lifecycle_state"`

	// OperationLock holds the uuid of an in-flight operation touching this
	// entity; advisory only.
	OperationLock *uuid.UUID `gorm:"type:uuid;column:operation_lock" json:"operation_lock,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (CollectionEntity) TableName() string { return "collection_entities" }
