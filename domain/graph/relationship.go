package graph

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agentsx-dev/axai-pg/domain/collections"
	"github.com/agentsx-dev/axai-pg/domain/documents"
	"github.com/agentsx-dev/axai-pg/domain/dualid"
)

// GraphRelationship is a typed edge between two GraphEntity rows. Edges are
// removed together with either endpoint.
type GraphRelationship struct {
	dualid.DualID

	SourceEntityUUID uuid.UUID    `gorm:"type:uuid;not null;column:source_entity_uuid;index:idx_graph_relationships_source_entity" json:"source_entity_uuid"`
	SourceEntity     *GraphEntity `gorm:"foreignKey:SourceEntityUUID;references:UUID" json:"source_entity,omitempty"`
	TargetEntityUUID uuid.UUID    `gorm:"type:uuid;not null;column:target_entity_uuid;index:idx_graph_relationships_target_entity" json:"target_entity_uuid"`
	TargetEntity     *GraphEntity `gorm:"foreignKey:TargetEntityUUID;references:UUID" json:"target_entity,omitempty"`

	RelationshipID   *string `gorm:"type:text;column:relationship_id;index:idx_graph_relationships_relationship_id" json:"relationship_id,omitempty"`
	RelationshipType string  `gorm:"type:varchar(50);not null;column:relationship_type" json:"relationship_type"`

	SourceType           *SourceType             `gorm:"type:varchar(30);column:source_type;check:graph_relationships_valid_source_type,source_type IS NULL OR source_type IN ('file','collection_generated','document')" json:"source_type,omitempty"`
	SourceFileUUID       *uuid.UUID              `gorm:"type:uuid;column:source_file_uuid;index:idx_graph_relationships_source_file_uuid" json:"source_file_uuid,omitempty"`
	SourceFile           *documents.Document     `gorm:"foreignKey:SourceFileUUID;references:UUID" json:"source_file,omitempty"`
	SourceCollectionUUID *uuid.UUID              `gorm:"type:uuid;column:source_collection_uuid;index:idx_graph_relationships_source_collection_uuid" json:"source_collection_uuid,omitempty"`
	SourceCollection     *collections.Collection `gorm:"foreignKey:SourceCollectionUUID;references:UUID" json:"source_collection,omitempty"`

	DocumentUUID *uuid.UUID          `gorm:"type:uuid;column:document_uuid" json:"document_uuid,omitempty"`
	Document     *documents.Document `gorm:"foreignKey:DocumentUUID;references:UUID" json:"document,omitempty"`

	IsDirected bool `gorm:"not null;default:true;column:is_directed" json:"is_directed"`

	Weight          *float64 `gorm:"type:numeric(10,5);column:weight;check:graph_relationships_positive_weight,weight IS NULL OR weight > 0" json:"weight,omitempty"`
	ConfidenceScore *float64 `gorm:"type:numeric(5,4);column:confidence_score;check:graph_relationships_valid_confidence,confidence_score IS NULL OR (confidence_score >= 0 AND confidence_score <= 1)" json:"confidence_score,omitempty"`

	Properties datatypes.JSON `gorm:"type:jsonb;column:properties" json:"properties,omitempty"`

	CreatedByTool string `gorm:"type:varchar(100);not null;column:created_by_tool" json:"created_by_tool"`
	IsActive      bool   `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (GraphRelationship) TableName() string { return "graph_relationships" }
