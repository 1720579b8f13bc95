package documents

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
)

// Summary is an AI-generated summary of one document. A document may carry
// several (different types or generations); Document.HasSummary is the
// caller-maintained cache over this table.
type Summary struct {
	dualid.DualID

	DocumentUUID uuid.UUID `gorm:"type:uuid;not null;column:document_uuid;index:idx_summaries_document_uuid" json:"document_uuid"`
	Document     *Document `gorm:"foreignKey:DocumentUUID;references:UUID" json:"document,omitempty"`

	Content     string  `gorm:"type:text;not null;column:content;check:summaries_content_not_empty,length(trim(content)) > 0" json:"content"`
	SummaryType string  `gorm:"type:varchar(50);not null;default:'general';column:summary_type;index:idx_summaries_summary_type" json:"summary_type"`
	WordCount   *int    `gorm:"column:word_count" json:"word_count,omitempty"`
	Language    *string `gorm:"type:varchar(10);column:language" json:"language,omitempty"`

	GeneratedByTool string         `gorm:"type:varchar(100);not null;column:generated_by_tool" json:"generated_by_tool"`
	ModelName       *string        `gorm:"type:varchar(100);column:model_name" json:"model_name,omitempty"`
	Metadata        datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (Summary) TableName() string { return "summaries" }
