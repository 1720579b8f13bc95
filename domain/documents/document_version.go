package documents

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
	"github.com/agentsx-dev/axai-pg/domain/tenant"
)

// DocumentVersion is an immutable snapshot of a document. Version numbers
// come from incrementing the parent document's counter; (document, version)
// is unique.
type DocumentVersion struct {
	dualid.DualID

	DocumentUUID uuid.UUID `gorm:"type:uuid;not null;column:document_uuid;uniqueIndex:uq_document_versions_document_version,priority:1;index:idx_document_versions_document_uuid" json:"document_uuid"`
	Document     *Document `gorm:"foreignKey:DocumentUUID;references:UUID" json:"document,omitempty"`

	Version int    `gorm:"not null;column:version;uniqueIndex:uq_document_versions_document_version,priority:2;check:document_versions_valid_version,version > 0" json:"version"`
	Content string `gorm:"type:text;not null;column:content" json:"content"`
	Title   string `gorm:"type:text;not null;column:title" json:"title"`
	Status  string `gorm:"type:varchar(20);not null;column:status" json:"status"`

	CreatedByUUID *uuid.UUID   `gorm:"type:uuid;column:created_by_uuid" json:"created_by_uuid,omitempty"`
	CreatedBy     *tenant.User `gorm:"foreignKey:CreatedByUUID;references:UUID" json:"created_by,omitempty"`

	ChangeDescription *string        `gorm:"type:text;column:change_description" json:"change_description,omitempty"`
	Metadata          datatypes.JSON `gorm:"type:jsonb;column:doc_metadata" json:"doc_metadata,omitempty"`

	FilePath    string `gorm:"type:text;not null;column:file_path" json:"file_path"`
	ContentType string `gorm:"type:text;not null;column:content_type" json:"content_type"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
}

func (DocumentVersion) TableName() string { return "document_versions" }
