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

type EntityLinkRepo interface {
	Create(dbc dbctx.Context, rows []*types.EntityLink) ([]*types.EntityLink, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.EntityLink, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.EntityLink, error)
	Update(dbc dbctx.Context, id uuid.UUID, fields map[string]any) (*types.EntityLink, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error

	GetByCollectionID(dbc dbctx.Context, collectionUUID uuid.UUID, activeOnly bool) ([]*types.EntityLink, error)
	GetByGraphEntityID(dbc dbctx.Context, graphEntityUUID uuid.UUID) ([]*types.EntityLink, error)
	Deactivate(dbc dbctx.Context, id uuid.UUID) error
}

type entityLinkRepo struct {
	*base.Repo[types.EntityLink]
	db  *gorm.DB
	log *logger.Logger
}

func NewEntityLinkRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) EntityLinkRepo {
	return &entityLinkRepo{
		Repo: base.New[types.EntityLink](db, baseLog, c, "entity_link", false),
		db:   db,
		log:  baseLog.With("repo", "EntityLinkRepo"),
	}
}

func (r *entityLinkRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *entityLinkRepo) GetByCollectionID(dbc dbctx.Context, collectionUUID uuid.UUID, activeOnly bool) ([]*types.EntityLink, error) {
	q := r.conn(dbc).Where("collection_uuid = ?", collectionUUID)
	if activeOnly {
		q = q.Where("is_active = true")
	}
	var results []*types.EntityLink
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *entityLinkRepo) GetByGraphEntityID(dbc dbctx.Context, graphEntityUUID uuid.UUID) ([]*types.EntityLink, error) {
	var results []*types.EntityLink
	if err := r.conn(dbc).
		Where("graph_entity_uuid = ?", graphEntityUUID).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *entityLinkRepo) Deactivate(dbc dbctx.Context, id uuid.UUID) error {
	_, err := r.Repo.Update(dbc, id, map[string]any{"is_active": false})
	return err
}
