package usage

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/pkg/dbctx"
	"github.com/agentsx-dev/axai-pg/pkg/dberr"
	"github.com/agentsx-dev/axai-pg/platform/logger"
)

type LLMModelPricingRepo interface {
	GetCurrent(dbc dbctx.Context, modelName string, at time.Time) (*types.LLMModelPricing, error)
	// SetRates replaces the rates for a model, inserting the row on first
	// use and resetting effective_from to now on update.
	SetRates(dbc dbctx.Context, modelName string, inputCostPer1K, outputCostPer1K float64) (*types.LLMModelPricing, error)
	List(dbc dbctx.Context) ([]*types.LLMModelPricing, error)
}

type llmModelPricingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLLMModelPricingRepo(db *gorm.DB, baseLog *logger.Logger) LLMModelPricingRepo {
	return &llmModelPricingRepo{db: db, log: baseLog.With("repo", "LLMModelPricingRepo")}
}

func (r *llmModelPricingRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *llmModelPricingRepo) GetCurrent(dbc dbctx.Context, modelName string, at time.Time) (*types.LLMModelPricing, error) {
	var result types.LLMModelPricing
	if err := r.conn(dbc).
		Where("model_name = ? AND effective_from <= ? AND (effective_until IS NULL OR effective_until > ?)", modelName, at, at).
		First(&result).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &result, nil
}

func (r *llmModelPricingRepo) SetRates(dbc dbctx.Context, modelName string, inputCostPer1K, outputCostPer1K float64) (*types.LLMModelPricing, error) {
	if modelName == "" {
		return nil, dberr.Validation(errors.New("pricing requires a model name"))
	}
	if inputCostPer1K < 0 || outputCostPer1K < 0 {
		return nil, dberr.Validation(errors.New("rates must be non-negative"))
	}
	row := &types.LLMModelPricing{
		ModelName:       modelName,
		InputCostPer1K:  inputCostPer1K,
		OutputCostPer1K: outputCostPer1K,
		EffectiveFrom:   time.Now().UTC(),
	}
	if err := r.conn(dbc).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "model_name"}},
		DoUpdates: clause.Assignments(map[string]any{
			"input_cost_per_1k":  inputCostPer1K,
			"output_cost_per_1k": outputCostPer1K,
			"effective_from":     gorm.Expr("now()"),
			"effective_until":    nil,
			"updated_at":         gorm.Expr("now()"),
		}),
	}).Create(row).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	var current types.LLMModelPricing
	if err := r.conn(dbc).Where("model_name = ?", modelName).First(&current).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &current, nil
}

func (r *llmModelPricingRepo) List(dbc dbctx.Context) ([]*types.LLMModelPricing, error) {
	var results []*types.LLMModelPricing
	if err := r.conn(dbc).Order("model_name ASC").Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}
