package collections

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

type DocumentContextRepo interface {
	Create(dbc dbctx.Context, rows []*types.DocumentCollectionContext) ([]*types.DocumentCollectionContext, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.DocumentCollectionContext, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.DocumentCollectionContext, error)
	Update(dbc dbctx.Context, id uuid.UUID, fields map[string]any) (*types.DocumentCollectionContext, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error

	GetForDocument(dbc dbctx.Context, documentUUID, collectionUUID uuid.UUID) (*types.DocumentCollectionContext, error)
	GetByCollectionID(dbc dbctx.Context, collectionUUID uuid.UUID) ([]*types.DocumentCollectionContext, error)
}

type documentContextRepo struct {
	*base.Repo[types.DocumentCollectionContext]
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentContextRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) DocumentContextRepo {
	return &documentContextRepo{
		Repo: base.New[types.DocumentCollectionContext](db, baseLog, c, "document_collection_context", false),
		db:   db,
		log:  baseLog.With("repo", "DocumentContextRepo"),
	}
}

func (r *documentContextRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *documentContextRepo) GetForDocument(dbc dbctx.Context, documentUUID, collectionUUID uuid.UUID) (*types.DocumentCollectionContext, error) {
	var out types.DocumentCollectionContext
	if err := r.conn(dbc).
		Where("document_uuid = ? AND collection_uuid = ?", documentUUID, collectionUUID).
		First(&out).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &out, nil
}

func (r *documentContextRepo) GetByCollectionID(dbc dbctx.Context, collectionUUID uuid.UUID) ([]*types.DocumentCollectionContext, error) {
	var results []*types.DocumentCollectionContext
	if err := r.conn(dbc).
		Where("collection_uuid = ?", collectionUUID).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}
