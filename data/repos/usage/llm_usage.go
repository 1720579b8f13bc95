package usage

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/pkg/dbctx"
	"github.com/agentsx-dev/axai-pg/pkg/dberr"
	"github.com/agentsx-dev/axai-pg/platform/logger"
)

// UsageTotals aggregates token counts and estimated cost over a set of
// usage rows.
type UsageTotals struct {
	Invocations      int64   `json:"invocations"`
	InputTokens      int64   `json:"input_tokens"`
	OutputTokens     int64   `json:"output_tokens"`
	TotalTokens      int64   `json:"total_tokens"`
	EstimatedCostUSD float64 `json:"estimated_cost_usd"`
}

type LLMUsageRepo interface {
	// Record persists one usage row. TotalTokens is filled from the input
	// and output counts when left zero, and EstimatedCostUSD is computed
	// from the current pricing row for the model when unset.
	Record(dbc dbctx.Context, row *types.LLMUsage) (*types.LLMUsage, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.LLMUsage, error)
	GetByDocumentID(dbc dbctx.Context, documentUUID uuid.UUID) ([]*types.LLMUsage, error)
	GetByUserID(dbc dbctx.Context, userUUID uuid.UUID, limit int) ([]*types.LLMUsage, error)
	GetByJobID(dbc dbctx.Context, jobID string) ([]*types.LLMUsage, error)
	TotalsByUser(dbc dbctx.Context, userUUID uuid.UUID, since time.Time) (*UsageTotals, error)
	TotalsByOrg(dbc dbctx.Context, orgUUID uuid.UUID, since time.Time) (*UsageTotals, error)
}

type llmUsageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLLMUsageRepo(db *gorm.DB, baseLog *logger.Logger) LLMUsageRepo {
	return &llmUsageRepo{db: db, log: baseLog.With("repo", "LLMUsageRepo")}
}

func (r *llmUsageRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *llmUsageRepo) Record(dbc dbctx.Context, row *types.LLMUsage) (*types.LLMUsage, error) {
	if row.DocumentUUID == uuid.Nil {
		return nil, dberr.Validation(errors.New("usage row requires a document"))
	}
	if row.ModelName == "" {
		return nil, dberr.Validation(errors.New("usage row requires a model name"))
	}
	if row.InputTokens < 0 || row.OutputTokens < 0 {
		return nil, dberr.Validation(errors.New("token counts must be non-negative"))
	}
	if row.TotalTokens == 0 {
		row.TotalTokens = row.InputTokens + row.OutputTokens
	}
	if row.EstimatedCostUSD == nil {
		var pricing types.LLMModelPricing
		err := r.conn(dbc).
			Where("model_name = ? AND effective_from <= now() AND (effective_until IS NULL OR effective_until > now())", row.ModelName).
			First(&pricing).Error
		switch {
		case err == nil:
			cost := float64(row.InputTokens)/1000*pricing.InputCostPer1K +
				float64(row.OutputTokens)/1000*pricing.OutputCostPer1K
			row.EstimatedCostUSD = &cost
		case err == gorm.ErrRecordNotFound:
			// No pricing on file, cost stays unset.
		default:
			return nil, dberr.Translate(err)
		}
	}
	if err := r.conn(dbc).Create(row).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return row, nil
}

func (r *llmUsageRepo) GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.LLMUsage, error) {
	var result types.LLMUsage
	if err := r.conn(dbc).Where("uuid = ?", id).First(&result).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &result, nil
}

func (r *llmUsageRepo) GetByDocumentID(dbc dbctx.Context, documentUUID uuid.UUID) ([]*types.LLMUsage, error) {
	var results []*types.LLMUsage
	if err := r.conn(dbc).
		Where("document_uuid = ?", documentUUID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *llmUsageRepo) GetByUserID(dbc dbctx.Context, userUUID uuid.UUID, limit int) ([]*types.LLMUsage, error) {
	if limit <= 0 {
		limit = 100
	}
	var results []*types.LLMUsage
	if err := r.conn(dbc).
		Where("user_uuid = ?", userUUID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *llmUsageRepo) GetByJobID(dbc dbctx.Context, jobID string) ([]*types.LLMUsage, error) {
	var results []*types.LLMUsage
	if err := r.conn(dbc).
		Where("job_id = ?", jobID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *llmUsageRepo) totals(dbc dbctx.Context, column string, id uuid.UUID, since time.Time) (*UsageTotals, error) {
	var t UsageTotals
	if err := r.conn(dbc).Model(&types.LLMUsage{}).
		Select(`COUNT(*) AS invocations,
			COALESCE(SUM(input_tokens), 0) AS input_tokens,
			COALESCE(SUM(output_tokens), 0) AS output_tokens,
			COALESCE(SUM(total_tokens), 0) AS total_tokens,
			COALESCE(SUM(estimated_cost_usd), 0) AS estimated_cost_usd`).
		Where(column+" = ? AND created_at >= ?", id, since).
		Scan(&t).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &t, nil
}

func (r *llmUsageRepo) TotalsByUser(dbc dbctx.Context, userUUID uuid.UUID, since time.Time) (*UsageTotals, error) {
	return r.totals(dbc, "user_uuid", userUUID, since)
}

func (r *llmUsageRepo) TotalsByOrg(dbc dbctx.Context, orgUUID uuid.UUID, since time.Time) (*UsageTotals, error) {
	return r.totals(dbc, "org_uuid", orgUUID, since)
}
