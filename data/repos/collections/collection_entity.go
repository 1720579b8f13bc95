package collections

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agentsx-dev/axai-pg/data/cache"
	"github.com/agentsx-dev/axai-pg/data/repos/base"
	types "github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/pkg/dbctx"
	"github.com/agentsx-dev/axai-pg/pkg/dberr"
	"github.com/agentsx-dev/axai-pg/platform/logger"
)

type CollectionEntityRepo interface {
	Create(dbc dbctx.Context, rows []*types.CollectionEntity) ([]*types.CollectionEntity, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.CollectionEntity, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.CollectionEntity, error)
	Update(dbc dbctx.Context, id uuid.UUID, fields map[string]any) (*types.CollectionEntity, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error

	GetByCollectionID(dbc dbctx.Context, collectionUUID uuid.UUID) ([]*types.CollectionEntity, error)
	GetByEntityID(dbc dbctx.Context, collectionUUID uuid.UUID, entityID string) (*types.CollectionEntity, error)
	SetLifecycleState(dbc dbctx.Context, id uuid.UUID, state string, lock *uuid.UUID) error

	AddSource(dbc dbctx.Context, collectionEntityUUID, graphEntityUUID uuid.UUID) error
	GetSources(dbc dbctx.Context, collectionEntityUUID uuid.UUID) ([]*types.GraphEntity, error)
	RemoveSource(dbc dbctx.Context, collectionEntityUUID, graphEntityUUID uuid.UUID) error
}

type collectionEntityRepo struct {
	*base.Repo[types.CollectionEntity]
	db  *gorm.DB
	log *logger.Logger
}

func NewCollectionEntityRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) CollectionEntityRepo {
	return &collectionEntityRepo{
		Repo: base.New[types.CollectionEntity](db, baseLog, c, "collection_entity", false),
		db:   db,
		log:  baseLog.With("repo", "CollectionEntityRepo"),
	}
}

func (r *collectionEntityRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

// Create inserts merged entities and bumps the owning collections'
// entity_count in the same transaction.
func (r *collectionEntityRepo) Create(dbc dbctx.Context, rows []*types.CollectionEntity) ([]*types.CollectionEntity, error) {
	if len(rows) == 0 {
		return rows, nil
	}
	run := func(tx *gorm.DB) error {
		if err := tx.WithContext(dbc.Ctx).Create(rows).Error; err != nil {
			return err
		}
		perCollection := map[uuid.UUID]int{}
		for _, row := range rows {
			perCollection[row.CollectionUUID]++
		}
		for collectionUUID, n := range perCollection {
			if err := tx.WithContext(dbc.Ctx).Model(&types.Collection{}).
				Where("uuid = ?", collectionUUID).
				Update("entity_count", gorm.Expr("entity_count + ?", n)).Error; err != nil {
				return err
			}
		}
		return nil
	}
	var err error
	if dbc.Tx != nil {
		err = run(dbc.Tx)
	} else {
		err = r.db.Transaction(run)
	}
	if err != nil {
		return nil, dberr.Translate(err)
	}
	return rows, nil
}

// Delete removes the merged entity and decrements the collection's
// entity_count with it.
func (r *collectionEntityRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	run := func(tx *gorm.DB) error {
		var row types.CollectionEntity
		if err := tx.WithContext(dbc.Ctx).Where("uuid = ?", id).First(&row).Error; err != nil {
			return err
		}
		if err := tx.WithContext(dbc.Ctx).Where("uuid = ?", id).Delete(&types.CollectionEntity{}).Error; err != nil {
			return err
		}
		return tx.WithContext(dbc.Ctx).Model(&types.Collection{}).
			Where("uuid = ? AND entity_count > 0", row.CollectionUUID).
			Update("entity_count", gorm.Expr("entity_count - 1")).Error
	}
	r.Invalidate(id)
	var err error
	if dbc.Tx != nil {
		err = run(dbc.Tx)
	} else {
		err = r.db.Transaction(run)
	}
	return dberr.Translate(err)
}

func (r *collectionEntityRepo) GetByCollectionID(dbc dbctx.Context, collectionUUID uuid.UUID) ([]*types.CollectionEntity, error) {
	var results []*types.CollectionEntity
	if err := r.conn(dbc).
		Where("collection_uuid = ?", collectionUUID).
		Order("name").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *collectionEntityRepo) GetByEntityID(dbc dbctx.Context, collectionUUID uuid.UUID, entityID string) (*types.CollectionEntity, error) {
	var out types.CollectionEntity
	if err := r.conn(dbc).
		Where("collection_uuid = ? AND entity_id = ?", collectionUUID, entityID).
		First(&out).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &out, nil
}

// SetLifecycleState moves the entity through the merge lifecycle. The
// operation lock marks an in-flight merge/unmerge; nil clears it.
func (r *collectionEntityRepo) SetLifecycleState(dbc dbctx.Context, id uuid.UUID, state string, lock *uuid.UUID) error {
	fields := map[string]any{
		"lifecycle_state": state,
		"operation_lock":  lock,
	}
	if state == types.LifecycleMerged {
		fields["is_merged"] = true
	}
	_, err := r.Repo.Update(dbc, id, fields)
	return err
}

// AddSource records provenance: the document-scope entity this merged
// entity was built from. Duplicate sources are ignored.
func (r *collectionEntityRepo) AddSource(dbc dbctx.Context, collectionEntityUUID, graphEntityUUID uuid.UUID) error {
	res := r.conn(dbc).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&types.CollectionEntitySource{
			CollectionEntityUUID:  collectionEntityUUID,
			SourceGraphEntityUUID: graphEntityUUID,
		})
	return dberr.Translate(res.Error)
}

// GetSources resolves the provenance junction back to the document-scope
// entities the merged entity was built from.
func (r *collectionEntityRepo) GetSources(dbc dbctx.Context, collectionEntityUUID uuid.UUID) ([]*types.GraphEntity, error) {
	var results []*types.GraphEntity
	if err := r.conn(dbc).
		Joins("JOIN collection_entity_sources ON collection_entity_sources.source_graph_entity_uuid = graph_entities.uuid").
		Where("collection_entity_sources.collection_entity_uuid = ?", collectionEntityUUID).
		Order("collection_entity_sources.created_at").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *collectionEntityRepo) RemoveSource(dbc dbctx.Context, collectionEntityUUID, graphEntityUUID uuid.UUID) error {
	res := r.conn(dbc).
		Where("collection_entity_uuid = ? AND source_graph_entity_uuid = ?", collectionEntityUUID, graphEntityUUID).
		Delete(&types.CollectionEntitySource{})
	if res.Error != nil {
		return dberr.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return dberr.NotFound(gorm.ErrRecordNotFound)
	}
	return nil
}
