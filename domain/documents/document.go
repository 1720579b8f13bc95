package documents

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
	"github.com/agentsx-dev/axai-pg/domain/tenant"
)

// Document statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
	StatusDeleted   = "deleted"
)

// Processing states shared by the extraction/summarization/graph pipelines.
const (
	ProcessingPending      = "pending"
	ProcessingInProgress   = "processing"
	ProcessingComplete     = "complete"
	ProcessingError        = "error"
	ProcessingFailed       = "failed"
	ProcessingNotRequested = "not_requested"
)

// Document is the unified document/file row: content, storage metadata,
// processing state and graph bookkeeping. Owned by exactly one user,
// optionally scoped to an organization.
//
// HasSummary, HasGraph and HasVersions are denormalized caches over the
// summaries, graph_entities and document_versions tables. No trigger keeps
// them consistent; every writer that creates or removes a dependent row must
// update them in the same transaction.
type Document struct {
	dualid.DualID

	Title    string  `gorm:"type:text;not null;column:title;check:documents_title_not_empty,length(trim(title)) > 0" json:"title"`
	Filename string  `gorm:"type:text;not null;column:filename;index:idx_documents_filename" json:"filename"`
	Content  *string `gorm:"type:text;column:content" json:"content,omitempty"`

	OwnerUUID uuid.UUID            `gorm:"type:uuid;not null;column:owner_uuid;index:idx_documents_owner_uuid" json:"owner_uuid"`
	Owner     *tenant.User         `gorm:"foreignKey:OwnerUUID;references:UUID" json:"owner,omitempty"`
	OrgUUID   *uuid.UUID           `gorm:"type:uuid;column:org_uuid;index:idx_documents_org_uuid;index:idx_documents_org_status,priority:1" json:"org_uuid,omitempty"`
	Org       *tenant.Organization `gorm:"foreignKey:OrgUUID;references:UUID" json:"org,omitempty"`

	FilePath     string  `gorm:"type:text;not null;column:file_path" json:"file_path"`
	Size         int64   `gorm:"not null;column:size" json:"size"`
	ContentType  string  `gorm:"type:text;not null;column:content_type" json:"content_type"`
	DocumentType string  `gorm:"type:varchar(50);not null;column:document_type;index:idx_documents_type" json:"document_type"`
	FileFormat   *string `gorm:"type:varchar(50);column:file_format" json:"file_format,omitempty"`

	Status           string     `gorm:"type:varchar(20);not null;default:'draft';column:status;index:idx_documents_status;index:idx_documents_org_status,priority:2;check:documents_valid_status,status IN ('draft','published','archived','deleted')" json:"status"`
	ProcessingStatus string     `gorm:"type:varchar(50);default:'pending';column:processing_status;check:documents_valid_processing_status,processing_status IN ('pending','processing','complete','error')" json:"processing_status"`
	IsDeleted        bool       `gorm:"not null;default:false;column:is_deleted;index:idx_documents_is_deleted" json:"is_deleted"`
	DeletedAt        *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	Version     int     `gorm:"not null;default:1;column:version;check:documents_valid_version,version > 0" json:"version"`
	VersionID   *string `gorm:"type:text;column:version_id;index:idx_documents_version_id" json:"version_id,omitempty"`
	Description *string `gorm:"type:text;column:description" json:"description,omitempty"`

	WordCount   *int    `gorm:"column:word_count" json:"word_count,omitempty"`
	ContentHash *string `gorm:"type:varchar(64);column:content_hash" json:"content_hash,omitempty"`

	Source        *string `gorm:"type:varchar(100);column:source" json:"source,omitempty"`
	ExternalRefID *string `gorm:"type:varchar(100);column:external_ref_id" json:"external_ref_id,omitempty"`

	Tags       datatypes.JSON `gorm:"type:jsonb;column:tags" json:"tags,omitempty"`
	KeyTerms   datatypes.JSON `gorm:"type:jsonb;column:key_terms" json:"key_terms,omitempty"`
	LinkedDocs datatypes.JSON `gorm:"type:jsonb;column:linked_docs" json:"linked_docs,omitempty"`
	Summary    *string        `gorm:"type:text;column:summary" json:"summary,omitempty"`

	// Visibility profile lives in the collections area; only the key is held
	// here to keep the package dependency one-way.
	DefaultVisibilityProfileUUID *uuid.UUID `gorm:"type:uuid;column:default_visibility_profile_uuid" json:"default_visibility_profile_uuid,omitempty"`
	EntitiesLastUpdated          *time.Time `gorm:"column:entities_last_updated" json:"entities_last_updated,omitempty"`
	RelationshipsLastUpdated     *time.Time `gorm:"column:relationships_last_updated" json:"relationships_last_updated,omitempty"`

	HasSummary  bool `gorm:"not null;default:false;column:has_summary" json:"has_summary"`
	HasGraph    bool `gorm:"not null;default:false;column:has_graph" json:"has_graph"`
	HasVersions bool `gorm:"not null;default:false;column:has_versions" json:"has_versions"`

	SummarizeOnUpload     bool `gorm:"not null;default:true;column:summarize_on_upload" json:"summarize_on_upload"`
	GenerateGraphOnUpload bool `gorm:"not null;default:true;column:generate_graph_on_upload" json:"generate_graph_on_upload"`

	ExtractionStartedAt   *time.Time `gorm:"column:extraction_started_at" json:"extraction_started_at,omitempty"`
	ExtractionCompletedAt *time.Time `gorm:"column:extraction_completed_at" json:"extraction_completed_at,omitempty"`
	ExtractionError       *string    `gorm:"type:text;column:extraction_error" json:"extraction_error,omitempty"`

	SummarizationStatus      *string    `gorm:"type:varchar(20);default:'pending';column:summarization_status" json:"summarization_status,omitempty"`
	SummarizationStartedAt   *time.Time `gorm:"column:summarization_started_at" json:"summarization_started_at,omitempty"`
	SummarizationCompletedAt *time.Time `gorm:"column:summarization_completed_at" json:"summarization_completed_at,omitempty"`
	SummarizationError       *string    `gorm:"type:text;column:summarization_error" json:"summarization_error,omitempty"`

	GraphGenerationStatus      *string    `gorm:"type:varchar(20);default:'pending';column:graph_generation_status" json:"graph_generation_status,omitempty"`
	GraphGenerationStartedAt   *time.Time `gorm:"column:graph_generation_started_at" json:"graph_generation_started_at,omitempty"`
	GraphGenerationCompletedAt *time.Time `gorm:"column:graph_generation_completed_at" json:"graph_generation_completed_at,omitempty"`
	GraphGenerationError       *string    `gorm:"type:text;column:graph_generation_error" json:"graph_generation_error,omitempty"`

	// Chunking: parents carry IsChunked/ChunkCount, children carry
	// ParentDocumentUUID/ChunkIndex/TotalChunks.
	ParentDocumentUUID *uuid.UUID `gorm:"type:uuid;column:parent_document_uuid;index:idx_documents_parent_document_uuid" json:"parent_document_uuid,omitempty"`
	ParentDocument     *Document  `gorm:"foreignKey:ParentDocumentUUID;references:UUID" json:"parent_document,omitempty"`
	IsChunked          bool       `gorm:"not null;default:false;column:is_chunked" json:"is_chunked"`
	ChunkCount         *int       `gorm:"column:chunk_count" json:"chunk_count,omitempty"`
	ChunkIndex         *int       `gorm:"column:chunk_index" json:"chunk_index,omitempty"`
	TotalChunks        *int       `gorm:"column:total_chunks" json:"total_chunks,omitempty"`
	CharacterCount     *int       `gorm:"column:character_count" json:"character_count,omitempty"`
	ChunkingStatus     *string    `gorm:"type:varchar(20);column:chunking_status" json:"chunking_status,omitempty"`
	ChunkingError      *string    `gorm:"type:varchar(500);column:chunking_error" json:"chunking_error,omitempty"`

	Metadata datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }
