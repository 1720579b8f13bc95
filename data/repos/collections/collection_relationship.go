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

type CollectionRelationshipRepo interface {
	Create(dbc dbctx.Context, rows []*types.CollectionRelationship) ([]*types.CollectionRelationship, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.CollectionRelationship, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.CollectionRelationship, error)
	Update(dbc dbctx.Context, id uuid.UUID, fields map[string]any) (*types.CollectionRelationship, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error

	GetByCollectionID(dbc dbctx.Context, collectionUUID uuid.UUID) ([]*types.CollectionRelationship, error)
	GetByEntityID(dbc dbctx.Context, collectionUUID uuid.UUID, entityID string) ([]*types.CollectionRelationship, error)

	AddSource(dbc dbctx.Context, collectionRelationshipUUID, graphRelationshipUUID uuid.UUID) error
	GetSources(dbc dbctx.Context, collectionRelationshipUUID uuid.UUID) ([]*types.GraphRelationship, error)
	RemoveSource(dbc dbctx.Context, collectionRelationshipUUID, graphRelationshipUUID uuid.UUID) error
}

type collectionRelationshipRepo struct {
	*base.Repo[types.CollectionRelationship]
	db  *gorm.DB
	log *logger.Logger
}

func NewCollectionRelationshipRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) CollectionRelationshipRepo {
	return &collectionRelationshipRepo{
		Repo: base.New[types.CollectionRelationship](db, baseLog, c, "collection_relationship", false),
		db:   db,
		log:  baseLog.With("repo", "CollectionRelationshipRepo"),
	}
}

func (r *collectionRelationshipRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

// Create inserts merged edges and bumps the owning collections'
// relationship_count in the same transaction.
func (r *collectionRelationshipRepo) Create(dbc dbctx.Context, rows []*types.CollectionRelationship) ([]*types.CollectionRelationship, error) {
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
				Update("relationship_count", gorm.Expr("relationship_count + ?", n)).Error; err != nil {
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

// Delete removes the merged edge and decrements the collection's
// relationship_count with it.
func (r *collectionRelationshipRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	run := func(tx *gorm.DB) error {
		var row types.CollectionRelationship
		if err := tx.WithContext(dbc.Ctx).Where("uuid = ?", id).First(&row).Error; err != nil {
			return err
		}
		if err := tx.WithContext(dbc.Ctx).Where("uuid = ?", id).Delete(&types.CollectionRelationship{}).Error; err != nil {
			return err
		}
		return tx.WithContext(dbc.Ctx).Model(&types.Collection{}).
			Where("uuid = ? AND relationship_count > 0", row.CollectionUUID).
			Update("relationship_count", gorm.Expr("relationship_count - 1")).Error
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

func (r *collectionRelationshipRepo) GetByCollectionID(dbc dbctx.Context, collectionUUID uuid.UUID) ([]*types.CollectionRelationship, error) {
	var results []*types.CollectionRelationship
	if err := r.conn(dbc).
		Where("collection_uuid = ?", collectionUUID).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

// GetByEntityID returns edges touching the entity from either end.
func (r *collectionRelationshipRepo) GetByEntityID(dbc dbctx.Context, collectionUUID uuid.UUID, entityID string) ([]*types.CollectionRelationship, error) {
	var results []*types.CollectionRelationship
	if err := r.conn(dbc).
		Where("collection_uuid = ?", collectionUUID).
		Where("source_entity_id = ? OR target_entity_id = ?", entityID, entityID).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *collectionRelationshipRepo) AddSource(dbc dbctx.Context, collectionRelationshipUUID, graphRelationshipUUID uuid.UUID) error {
	res := r.conn(dbc).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&types.CollectionRelationshipSource{
			CollectionRelationshipUUID:  collectionRelationshipUUID,
			SourceGraphRelationshipUUID: graphRelationshipUUID,
		})
	return dberr.Translate(res.Error)
}

// GetSources resolves the provenance junction back to the document-scope
// relationships the merged edge was built from.
func (r *collectionRelationshipRepo) GetSources(dbc dbctx.Context, collectionRelationshipUUID uuid.UUID) ([]*types.GraphRelationship, error) {
	var results []*types.GraphRelationship
	if err := r.conn(dbc).
		Joins("JOIN collection_relationship_sources ON collection_relationship_sources.source_graph_relationship_uuid = graph_relationships.uuid").
		Where("collection_relationship_sources.collection_relationship_uuid = ?", collectionRelationshipUUID).
		Order("collection_relationship_sources.created_at").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *collectionRelationshipRepo) RemoveSource(dbc dbctx.Context, collectionRelationshipUUID, graphRelationshipUUID uuid.UUID) error {
	res := r.conn(dbc).
		Where("collection_relationship_uuid = ? AND source_graph_relationship_uuid = ?", collectionRelationshipUUID, graphRelationshipUUID).
		Delete(&types.CollectionRelationshipSource{})
	if res.Error != nil {
		return dberr.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return dberr.NotFound(gorm.ErrRecordNotFound)
	}
	return nil
}
