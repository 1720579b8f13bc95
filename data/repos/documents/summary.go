package documents

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agentsx-dev/axai-pg/data/cache"
	"github.com/agentsx-dev/axai-pg/data/repos/base"
	types "github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/pkg/dbctx"
	"github.com/agentsx-dev/axai-pg/pkg/dberr"
	"github.com/agentsx-dev/axai-pg/platform/logger"
)

type SummaryRepo interface {
	Create(dbc dbctx.Context, rows []*types.Summary) ([]*types.Summary, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.Summary, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.Summary, error)
	Update(dbc dbctx.Context, id uuid.UUID, fields map[string]any) (*types.Summary, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	GetByDocumentID(dbc dbctx.Context, documentUUID uuid.UUID) ([]*types.Summary, error)
	GetLatestByDocumentID(dbc dbctx.Context, documentUUID uuid.UUID, summaryType string) (*types.Summary, error)
}

type summaryRepo struct {
	*base.Repo[types.Summary]
	db  *gorm.DB
	log *logger.Logger
}

func NewSummaryRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) SummaryRepo {
	return &summaryRepo{
		Repo: base.New[types.Summary](db, baseLog, c, "summary", false),
		db:   db,
		log:  baseLog.With("repo", "SummaryRepo"),
	}
}

func (r *summaryRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *summaryRepo) GetByDocumentID(dbc dbctx.Context, documentUUID uuid.UUID) ([]*types.Summary, error) {
	var results []*types.Summary
	if err := r.conn(dbc).
		Where("document_uuid = ?", documentUUID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *summaryRepo) GetLatestByDocumentID(dbc dbctx.Context, documentUUID uuid.UUID, summaryType string) (*types.Summary, error) {
	q := r.conn(dbc).Where("document_uuid = ?", documentUUID)
	if summaryType != "" {
		q = q.Where("summary_type = ?", summaryType)
	}
	var out types.Summary
	if err := q.Order("created_at DESC").First(&out).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &out, nil
}
