package collections

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
)

// EntityLink records a same-as assertion between a file-level graph entity
// and a collection-level merged entity.
type EntityLink struct {
	dualid.DualID

	GraphEntityUUID      *uuid.UUID        `gorm:"type:uuid;column:graph_entity_uuid;index:idx_entity_links_graph_entity_uuid" json:"graph_entity_uuid,omitempty"`
	CollectionEntityUUID *uuid.UUID        `gorm:"type:uuid;column:collection_entity_uuid;index:idx_entity_links_collection_entity_uuid" json:"collection_entity_uuid,omitempty"`
	CollectionEntity     *CollectionEntity `gorm:"foreignKey:CollectionEntityUUID;references:UUID" json:"collection_entity,omitempty"`

	CollectionUUID uuid.UUID   `gorm:"type:uuid;not null;column:collection_uuid;index:idx_entity_links_collection_uuid" json:"collection_uuid"`
	Collection     *Collection `gorm:"foreignKey:CollectionUUID;references:UUID" json:"collection,omitempty"`

	EntityType      *string        `gorm:"type:text;column:entity_type" json:"entity_type,omitempty"`
	ConfidenceScore *float64       `gorm:"type:numeric(5,4);column:confidence_score;check:entity_links_valid_confidence,confidence_score IS NULL OR (confidence_score >= 0 AND confidence_score <= 1)" json:"confidence_score,omitempty"`
	LinkType        *string        `gorm:"type:text;column:link_type" json:"link_type,omitempty"`
	LinkedEntities  datatypes.JSON `gorm:"type:jsonb;column:linked_entities" json:"linked_entities,omitempty"`

	IsActive         bool       `gorm:"not null;default:true;column:is_active;index:idx_entity_links_is_active" json:"is_active"`
	MergedEntityUUID *uuid.UUID `gorm:"type:uuid;column:merged_entity_uuid" json:"merged_entity_uuid,omitempty"`
	CommonName       *string    `gorm:"type:text;column:common_name" json:"common_name,omitempty"`
	Description      *string    `gorm:"type:text;column:description" json:"description,omitempty"`
	CreatedByTool    *string    `gorm:"type:text;column:created_by_tool" json:"created_by_tool,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (EntityLink) TableName() string { return "entity_links" }
