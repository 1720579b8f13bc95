package documents

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
)

// Topic is a document tag with a one-or-more-level parent hierarchy. The
// parent link is a plain back-reference; children are looked up through the
// index, never held as live objects.
type Topic struct {
	dualid.DualID

	Name        string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_topics_name;column:name" json:"name"`
	Description *string        `gorm:"type:text;column:description" json:"description,omitempty"`
	Keywords    datatypes.JSON `gorm:"type:jsonb;column:keywords" json:"keywords,omitempty"`

	ParentTopicUUID *uuid.UUID `gorm:"type:uuid;column:parent_topic_uuid;index:idx_topics_parent_topic_uuid;check:topics_no_self_reference,parent_topic_uuid != uuid" json:"parent_topic_uuid,omitempty"`
	ParentTopic     *Topic     `gorm:"foreignKey:ParentTopicUUID;references:UUID" json:"parent_topic,omitempty"`

	ExtractionMethod *string  `gorm:"type:varchar(50);column:extraction_method" json:"extraction_method,omitempty"`
	GlobalImportance *float64 `gorm:"type:numeric(5,4);column:global_importance;check:topics_valid_importance,global_importance IS NULL OR (global_importance >= 0 AND global_importance <= 1)" json:"global_importance,omitempty"`
	CreatedByTool    *string  `gorm:"type:varchar(100);column:created_by_tool" json:"created_by_tool,omitempty"`
	IsActive         bool     `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (Topic) TableName() string { return "topics" }

// DocumentTopic joins documents to topics with a relevance score in [0,1].
type DocumentTopic struct {
	dualid.DualID

	DocumentUUID uuid.UUID `gorm:"type:uuid;not null;column:document_uuid;index:idx_document_topics_document_uuid;uniqueIndex:uq_document_topics_document_topic,priority:1" json:"document_uuid"`
	Document     *Document `gorm:"foreignKey:DocumentUUID;references:UUID" json:"document,omitempty"`
	TopicUUID    uuid.UUID `gorm:"type:uuid;not null;column:topic_uuid;index:idx_document_topics_topic_uuid;uniqueIndex:uq_document_topics_document_topic,priority:2" json:"topic_uuid"`
	Topic        *Topic    `gorm:"foreignKey:TopicUUID;references:UUID" json:"topic,omitempty"`

	RelevanceScore  float64        `gorm:"type:numeric(5,4);not null;column:relevance_score;check:document_topics_valid_relevance,relevance_score >= 0 AND relevance_score <= 1" json:"relevance_score"`
	Context         datatypes.JSON `gorm:"type:jsonb;column:context" json:"context,omitempty"`
	ExtractedByTool string         `gorm:"type:varchar(100);not null;column:extracted_by_tool" json:"extracted_by_tool"`

	ExtractedAt time.Time `gorm:"not null;default:now();column:extracted_at" json:"extracted_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (DocumentTopic) TableName() string { return "document_topics" }
