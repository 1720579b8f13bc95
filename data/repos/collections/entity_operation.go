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

type EntityOperationRepo interface {
	Create(dbc dbctx.Context, rows []*types.EntityOperation) ([]*types.EntityOperation, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.EntityOperation, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.EntityOperation, error)

	GetByCollectionID(dbc dbctx.Context, collectionUUID uuid.UUID, limit int) ([]*types.EntityOperation, error)
	GetByType(dbc dbctx.Context, collectionUUID uuid.UUID, opType types.OperationType) ([]*types.EntityOperation, error)
	SetStatus(dbc dbctx.Context, id uuid.UUID, status string) error
}

type entityOperationRepo struct {
	*base.Repo[types.EntityOperation]
	db  *gorm.DB
	log *logger.Logger
}

func NewEntityOperationRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) EntityOperationRepo {
	return &entityOperationRepo{
		Repo: base.New[types.EntityOperation](db, baseLog, c, "entity_operation", false),
		db:   db,
		log:  baseLog.With("repo", "EntityOperationRepo"),
	}
}

func (r *entityOperationRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *entityOperationRepo) GetByCollectionID(dbc dbctx.Context, collectionUUID uuid.UUID, limit int) ([]*types.EntityOperation, error) {
	if limit <= 0 {
		limit = 100
	}
	var results []*types.EntityOperation
	if err := r.conn(dbc).
		Where("collection_uuid = ?", collectionUUID).
		Order("performed_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *entityOperationRepo) GetByType(dbc dbctx.Context, collectionUUID uuid.UUID, opType types.OperationType) ([]*types.EntityOperation, error) {
	var results []*types.EntityOperation
	if err := r.conn(dbc).
		Where("collection_uuid = ? AND operation_type = ?", collectionUUID, opType).
		Order("performed_at DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *entityOperationRepo) SetStatus(dbc dbctx.Context, id uuid.UUID, status string) error {
	_, err := r.Repo.Update(dbc, id, map[string]any{"status": status})
	return err
}
