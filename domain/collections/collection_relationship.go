package collections

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
)

// CollectionRelationship is a collection-scoped relationship between merged
// entities, itself possibly merged from several source relationships (see
// collection_relationship_sources).
type CollectionRelationship struct {
	dualid.DualID

	CollectionUUID uuid.UUID   `gorm:"type:uuid;not null;column:collection_uuid;index:idx_collection_relationships_collection_uuid" json:"collection_uuid"`
	Collection     *Collection `gorm:"foreignKey:CollectionUUID;references:UUID" json:"collection,omitempty"`

	SourceEntityID   string `gorm:"type:text;not null;column:source_entity_id;index:idx_collection_relationships_source;check:collection_relationships_source_not_empty,length(trim(source_entity_id)) > 0" json:"source_entity_id"`
	TargetEntityID   string `gorm:"type:text;not null;column:target_entity_id;index:idx_collection_relationships_target;check:collection_relationships_target_not_empty,length(trim(target_entity_id)) > 0" json:"target_entity_id"`
	RelationshipType string `gorm:"type:text;not null;column:relationship_type" json:"relationship_type"`

	Description *string        `gorm:"type:text;column:description" json:"description,omitempty"`
	Properties  datatypes.JSON `gorm:"type:jsonb;column:properties" json:"properties,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (CollectionRelationship) TableName() string { return "collection_relationships" }
