package graph

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

type GraphEntityRepo interface {
	Create(dbc dbctx.Context, rows []*types.GraphEntity) ([]*types.GraphEntity, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.GraphEntity, error)
	GetByShortID(dbc dbctx.Context, shortID string) (*types.GraphEntity, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.GraphEntity, error)
	Update(dbc dbctx.Context, id uuid.UUID, fields map[string]any) (*types.GraphEntity, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error

	GetBySourceFileID(dbc dbctx.Context, fileUUID uuid.UUID, activeOnly bool) ([]*types.GraphEntity, error)
	GetBySourceCollectionID(dbc dbctx.Context, collectionUUID uuid.UUID, activeOnly bool) ([]*types.GraphEntity, error)
	GetByEntityID(dbc dbctx.Context, entityID string) ([]*types.GraphEntity, error)
	GetByType(dbc dbctx.Context, fileUUID uuid.UUID, entityType string) ([]*types.GraphEntity, error)
	Deactivate(dbc dbctx.Context, id uuid.UUID) error
	DeactivateForFile(dbc dbctx.Context, fileUUID uuid.UUID) (int64, error)
}

type graphEntityRepo struct {
	*base.Repo[types.GraphEntity]
	db  *gorm.DB
	log *logger.Logger
}

func NewGraphEntityRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) GraphEntityRepo {
	return &graphEntityRepo{
		Repo: base.New[types.GraphEntity](db, baseLog, c, "graph_entity", false),
		db:   db,
		log:  baseLog.With("repo", "GraphEntityRepo"),
	}
}

func (r *graphEntityRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *graphEntityRepo) GetBySourceFileID(dbc dbctx.Context, fileUUID uuid.UUID, activeOnly bool) ([]*types.GraphEntity, error) {
	q := r.conn(dbc).Where("source_file_uuid = ?", fileUUID)
	if activeOnly {
		q = q.Where("is_active = true")
	}
	var results []*types.GraphEntity
	if err := q.Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *graphEntityRepo) GetBySourceCollectionID(dbc dbctx.Context, collectionUUID uuid.UUID, activeOnly bool) ([]*types.GraphEntity, error) {
	q := r.conn(dbc).Where("source_collection_uuid = ?", collectionUUID)
	if activeOnly {
		q = q.Where("is_active = true")
	}
	var results []*types.GraphEntity
	if err := q.Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *graphEntityRepo) GetByEntityID(dbc dbctx.Context, entityID string) ([]*types.GraphEntity, error) {
	var results []*types.GraphEntity
	if err := r.conn(dbc).
		Where("entity_id = ?", entityID).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *graphEntityRepo) GetByType(dbc dbctx.Context, fileUUID uuid.UUID, entityType string) ([]*types.GraphEntity, error) {
	var results []*types.GraphEntity
	if err := r.conn(dbc).
		Where("source_file_uuid = ? AND entity_type = ? AND is_active = true", fileUUID, entityType).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *graphEntityRepo) Deactivate(dbc dbctx.Context, id uuid.UUID) error {
	_, err := r.Repo.Update(dbc, id, map[string]any{"is_active": false})
	return err
}

// DeactivateForFile retires a file's whole extraction, typically before a
// re-extraction writes the replacement set.
func (r *graphEntityRepo) DeactivateForFile(dbc dbctx.Context, fileUUID uuid.UUID) (int64, error) {
	res := r.conn(dbc).Model(&types.GraphEntity{}).
		Where("source_file_uuid = ? AND is_active = true", fileUUID).
		Update("is_active", false)
	if res.Error != nil {
		return 0, dberr.Translate(res.Error)
	}
	return res.RowsAffected, nil
}
