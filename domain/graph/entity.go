package graph

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agentsx-dev/axai-pg/domain/collections"
	"github.com/agentsx-dev/axai-pg/domain/documents"
	"github.com/agentsx-dev/axai-pg/domain/dualid"
)

// SourceType records where a graph row came from.
type SourceType string

const (
	SourceFile                SourceType = "file"
	SourceCollectionGenerated SourceType = "collection_generated"
	SourceDocument            SourceType = "document"
)

// GraphEntity is a knowledge-graph node extracted from a document or merged
// at collection scope. SourceFileUUID cascades with its document, while the
// hard document_uuid link is severed (SET NULL) on document deletion, so
// extracted knowledge may outlive the originating file reference.
type GraphEntity struct {
	dualid.DualID

	EntityID   string `gorm:"type:text;not null;column:entity_id;index:idx_graph_entities_entity_id" json:"entity_id"`
	EntityType string `gorm:"type:varchar(50);not null;column:entity_type;index:idx_graph_entities_entity_type" json:"entity_type"`

	Name        string         `gorm:"type:varchar(255);not null;column:name" json:"name"`
	Description *string        `gorm:"type:text;column:description" json:"description,omitempty"`
	Properties  datatypes.JSON `gorm:"type:jsonb;column:properties" json:"properties,omitempty"`

	SourceType           *SourceType             `gorm:"type:varchar(30);column:source_type;check:graph_entities_valid_source_type,source_type IS NULL OR source_type IN ('file','collection_generated','document')" json:"source_type,omitempty"`
	SourceFileUUID       *uuid.UUID              `gorm:"type:uuid;column:source_file_uuid;index:idx_graph_entities_source_file_uuid" json:"source_file_uuid,omitempty"`
	SourceFile           *documents.Document     `gorm:"foreignKey:SourceFileUUID;references:UUID" json:"source_file,omitempty"`
	SourceCollectionUUID *uuid.UUID              `gorm:"type:uuid;column:source_collection_uuid;index:idx_graph_entities_source_collection_uuid" json:"source_collection_uuid,omitempty"`
	SourceCollection     *collections.Collection `gorm:"foreignKey:SourceCollectionUUID;references:UUID" json:"source_collection,omitempty"`

	DocumentUUID *uuid.UUID          `gorm:"type:uuid;column:document_uuid;index:idx_graph_entities_document_uuid" json:"document_uuid,omitempty"`
	Document     *documents.Document `gorm:"foreignKey:DocumentUUID;references:UUID" json:"document,omitempty"`

	CreatedByTool string `gorm:"type:varchar(100);not null;column:created_by_tool" json:"created_by_tool"`
	IsActive      bool   `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (GraphEntity) TableName() string { return "graph_entities" }
