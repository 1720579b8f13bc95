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

type GraphRelationshipRepo interface {
	Create(dbc dbctx.Context, rows []*types.GraphRelationship) ([]*types.GraphRelationship, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.GraphRelationship, error)
	GetByShortID(dbc dbctx.Context, shortID string) (*types.GraphRelationship, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.GraphRelationship, error)
	Update(dbc dbctx.Context, id uuid.UUID, fields map[string]any) (*types.GraphRelationship, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error

	GetBySourceFileID(dbc dbctx.Context, fileUUID uuid.UUID, activeOnly bool) ([]*types.GraphRelationship, error)
	GetBySourceCollectionID(dbc dbctx.Context, collectionUUID uuid.UUID, activeOnly bool) ([]*types.GraphRelationship, error)
	GetForEntity(dbc dbctx.Context, entityUUID uuid.UUID) ([]*types.GraphRelationship, error)
	GetBetween(dbc dbctx.Context, sourceUUID, targetUUID uuid.UUID) ([]*types.GraphRelationship, error)
	Deactivate(dbc dbctx.Context, id uuid.UUID) error
	DeactivateForFile(dbc dbctx.Context, fileUUID uuid.UUID) (int64, error)
}

type graphRelationshipRepo struct {
	*base.Repo[types.GraphRelationship]
	db  *gorm.DB
	log *logger.Logger
}

func NewGraphRelationshipRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) GraphRelationshipRepo {
	return &graphRelationshipRepo{
		Repo: base.New[types.GraphRelationship](db, baseLog, c, "graph_relationship", false),
		db:   db,
		log:  baseLog.With("repo", "GraphRelationshipRepo"),
	}
}

func (r *graphRelationshipRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *graphRelationshipRepo) GetBySourceFileID(dbc dbctx.Context, fileUUID uuid.UUID, activeOnly bool) ([]*types.GraphRelationship, error) {
	q := r.conn(dbc).Where("source_file_uuid = ?", fileUUID)
	if activeOnly {
		q = q.Where("is_active = true")
	}
	var results []*types.GraphRelationship
	if err := q.Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *graphRelationshipRepo) GetBySourceCollectionID(dbc dbctx.Context, collectionUUID uuid.UUID, activeOnly bool) ([]*types.GraphRelationship, error) {
	q := r.conn(dbc).Where("source_collection_uuid = ?", collectionUUID)
	if activeOnly {
		q = q.Where("is_active = true")
	}
	var results []*types.GraphRelationship
	if err := q.Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

// GetForEntity returns relationships touching the entity on either end.
func (r *graphRelationshipRepo) GetForEntity(dbc dbctx.Context, entityUUID uuid.UUID) ([]*types.GraphRelationship, error) {
	var results []*types.GraphRelationship
	if err := r.conn(dbc).
		Where("source_entity_uuid = ? OR target_entity_uuid = ?", entityUUID, entityUUID).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *graphRelationshipRepo) GetBetween(dbc dbctx.Context, sourceUUID, targetUUID uuid.UUID) ([]*types.GraphRelationship, error) {
	var results []*types.GraphRelationship
	if err := r.conn(dbc).
		Where("source_entity_uuid = ? AND target_entity_uuid = ?", sourceUUID, targetUUID).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *graphRelationshipRepo) Deactivate(dbc dbctx.Context, id uuid.UUID) error {
	_, err := r.Repo.Update(dbc, id, map[string]any{"is_active": false})
	return err
}

func (r *graphRelationshipRepo) DeactivateForFile(dbc dbctx.Context, fileUUID uuid.UUID) (int64, error) {
	res := r.conn(dbc).Model(&types.GraphRelationship{}).
		Where("source_file_uuid = ? AND is_active = true", fileUUID).
		Update("is_active", false)
	if res.Error != nil {
		return 0, dberr.Translate(res.Error)
	}
	return res.RowsAffected, nil
}
