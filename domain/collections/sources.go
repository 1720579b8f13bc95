package collections

import (
	"time"

	"github.com/google/uuid"
)

// CollectionEntitySource links a merged collection entity to one of the
// graph entities it was merged from. Composite primary key, append-only;
// replaces the earlier unindexed source_entity_ids array column.
type CollectionEntitySource struct {
	CollectionEntityUUID  uuid.UUID `gorm:"type:uuid;primaryKey;column:collection_entity_uuid;index:idx_collection_entity_sources_collection_entity" json:"collection_entity_uuid"`
	SourceGraphEntityUUID uuid.UUID `gorm:"type:uuid;primaryKey;column:source_graph_entity_uuid;index:idx_collection_entity_sources_source_entity" json:"source_graph_entity_uuid"`
	CreatedAt             time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
}

func (CollectionEntitySource) TableName() string { return "collection_entity_sources" }

// CollectionRelationshipSource is the same provenance junction for merged
// relationships.
type CollectionRelationshipSource struct {
	CollectionRelationshipUUID  uuid.UUID `gorm:"type:uuid;primaryKey;column:collection_relationship_uuid;index:idx_collection_relationship_sources_collection_rel" json:"collection_relationship_uuid"`
	SourceGraphRelationshipUUID uuid.UUID `gorm:"type:uuid;primaryKey;column:source_graph_relationship_uuid;index:idx_collection_relationship_sources_source_rel" json:"source_graph_relationship_uuid"`
	CreatedAt                   time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
}

func (CollectionRelationshipSource) TableName() string { return "collection_relationship_sources" }
