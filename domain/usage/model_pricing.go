package usage

import (
	"time"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
)

// LLMModelPricing holds per-1k-token rates for one model. EffectiveUntil is
// nil for the current rate; cost estimation picks the row whose window
// covers the usage timestamp.
type LLMModelPricing struct {
	dualid.DualID

	ModelName          string  `gorm:"type:varchar(100);not null;uniqueIndex:uq_llm_model_pricing_model_name;column:model_name" json:"model_name"`
	InputCostPer1K     float64 `gorm:"type:numeric(10,6);not null;column:input_cost_per_1k;check:llm_model_pricing_non_negative_input,input_cost_per_1k >= 0" json:"input_cost_per_1k"`
	OutputCostPer1K    float64 `gorm:"type:numeric(10,6);not null;column:output_cost_per_1k;check:llm_model_pricing_non_negative_output,output_cost_per_1k >= 0" json:"output_cost_per_1k"`

	EffectiveFrom  time.Time  `gorm:"not null;default:now();column:effective_from" json:"effective_from"`
	EffectiveUntil *time.Time `gorm:"column:effective_until" json:"effective_until,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (LLMModelPricing) TableName() string { return "llm_model_pricing" }
