package usage

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agentsx-dev/axai-pg/domain/documents"
	"github.com/agentsx-dev/axai-pg/domain/dualid"
	"github.com/agentsx-dev/axai-pg/domain/tenant"
)

// Operation types accepted by llm_usage.
const (
	OperationSummary         = "summary"
	OperationGraphExtraction = "graph_extraction"
	OperationTextCleaning    = "text_cleaning"
	OperationEmailAnalysis   = "email_analysis"
	OperationOther           = "other"
)

// LLMUsage records one model invocation against a document: token counts,
// wall time and estimated cost. Rows cascade with their document but keep
// user and org columns nullable so usage history survives account removal.
type LLMUsage struct {
	dualid.DualID

	DocumentUUID uuid.UUID           `gorm:"type:uuid;not null;column:document_uuid;index:idx_llm_usage_document_uuid" json:"document_uuid"`
	Document     *documents.Document `gorm:"foreignKey:DocumentUUID;references:UUID" json:"document,omitempty"`

	UserUUID *uuid.UUID           `gorm:"type:uuid;column:user_uuid;index:idx_llm_usage_user_created,priority:1" json:"user_uuid,omitempty"`
	User     *tenant.User         `gorm:"foreignKey:UserUUID;references:UUID" json:"user,omitempty"`
	OrgUUID  *uuid.UUID           `gorm:"type:uuid;column:org_uuid;index:idx_llm_usage_org_created,priority:1" json:"org_uuid,omitempty"`
	Org      *tenant.Organization `gorm:"foreignKey:OrgUUID;references:UUID" json:"org,omitempty"`

	OperationType string  `gorm:"type:varchar(30);not null;column:operation_type;check:llm_usage_valid_operation_type,operation_type IN ('summary','graph_extraction','text_cleaning','email_analysis','other')" json:"operation_type"`
	ToolName      *string `gorm:"type:varchar(100);column:tool_name" json:"tool_name,omitempty"`
	ModelName     string  `gorm:"type:varchar(100);not null;column:model_name;index:idx_llm_usage_model_name" json:"model_name"`
	ModelProvider *string `gorm:"type:varchar(100);column:model_provider" json:"model_provider,omitempty"`

	InputTokens  int `gorm:"not null;default:0;column:input_tokens;check:llm_usage_non_negative_input,input_tokens >= 0" json:"input_tokens"`
	OutputTokens int `gorm:"not null;default:0;column:output_tokens;check:llm_usage_non_negative_output,output_tokens >= 0" json:"output_tokens"`
	TotalTokens  int `gorm:"not null;default:0;column:total_tokens;check:llm_usage_non_negative_total,total_tokens >= 0" json:"total_tokens"`

	ProcessingTimeSeconds *float64 `gorm:"type:numeric(10,3);column:processing_time_seconds" json:"processing_time_seconds,omitempty"`
	EstimatedCostUSD      *float64 `gorm:"type:numeric(10,6);column:estimated_cost_usd" json:"estimated_cost_usd,omitempty"`

	JobID    *string        `gorm:"type:varchar(255);column:job_id" json:"job_id,omitempty"`
	Metadata datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at;index:idx_llm_usage_user_created,priority:2;index:idx_llm_usage_org_created,priority:2" json:"created_at"`
}

func (LLMUsage) TableName() string { return "llm_usage" }
