package collections

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agentsx-dev/axai-pg/domain/documents"
	"github.com/agentsx-dev/axai-pg/domain/dualid"
)

// DocumentCollectionContext stores per-collection context for a document, so
// the same document can carry a different summary or metadata in each
// collection it belongs to.
type DocumentCollectionContext struct {
	dualid.DualID

	DocumentUUID   uuid.UUID           `gorm:"type:uuid;not null;column:document_uuid;index:idx_document_collection_contexts_document_uuid" json:"document_uuid"`
	Document       *documents.Document `gorm:"foreignKey:DocumentUUID;references:UUID" json:"document,omitempty"`
	CollectionUUID uuid.UUID           `gorm:"type:uuid;not null;column:collection_uuid;index:idx_document_collection_contexts_collection_uuid" json:"collection_uuid"`
	Collection     *Collection         `gorm:"foreignKey:CollectionUUID;references:UUID" json:"collection,omitempty"`

	ContextSummary  *string        `gorm:"type:text;column:context_summary" json:"context_summary,omitempty"`
	ContextMetadata datatypes.JSON `gorm:"type:jsonb;column:context_metadata" json:"context_metadata,omitempty"`

	VisibilityProfileUUID *uuid.UUID `gorm:"type:uuid;column:visibility_profile_uuid;index:idx_document_collection_contexts_visibility_profile_uuid" json:"visibility_profile_uuid,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (DocumentCollectionContext) TableName() string { return "document_collection_contexts" }
