package collections

import (
	"fmt"
	"time"

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

type CollectionRepo interface {
	Create(dbc dbctx.Context, rows []*types.Collection) ([]*types.Collection, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.Collection, error)
	GetByShortID(dbc dbctx.Context, shortID string) (*types.Collection, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.Collection, error)
	Update(dbc dbctx.Context, id uuid.UUID, fields map[string]any) (*types.Collection, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	HardDelete(dbc dbctx.Context, id uuid.UUID) error

	GetByOrgID(dbc dbctx.Context, orgUUID uuid.UUID, includeDeleted bool) ([]*types.Collection, error)
	GetByOwnerID(dbc dbctx.Context, ownerUUID uuid.UUID, includeDeleted bool) ([]*types.Collection, error)
	GetChildren(dbc dbctx.Context, parentUUID uuid.UUID) ([]*types.Collection, error)

	AddDocument(dbc dbctx.Context, collectionUUID, documentUUID uuid.UUID) error
	RemoveDocument(dbc dbctx.Context, collectionUUID, documentUUID uuid.UUID) error
	GetDocuments(dbc dbctx.Context, collectionUUID uuid.UUID) ([]*types.Document, error)
	GetCollectionsForDocument(dbc dbctx.Context, documentUUID uuid.UUID) ([]*types.Collection, error)

	SetGraphState(dbc dbctx.Context, id uuid.UUID, state string) error
	RefreshCounts(dbc dbctx.Context, id uuid.UUID) (*types.Collection, error)
	DeleteSubtree(dbc dbctx.Context, id uuid.UUID) (int64, error)
}

type collectionRepo struct {
	*base.Repo[types.Collection]
	db  *gorm.DB
	log *logger.Logger
}

func NewCollectionRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) CollectionRepo {
	return &collectionRepo{
		Repo: base.New[types.Collection](db, baseLog, c, "collection", true),
		db:   db,
		log:  baseLog.With("repo", "CollectionRepo"),
	}
}

func (r *collectionRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *collectionRepo) GetByOrgID(dbc dbctx.Context, orgUUID uuid.UUID, includeDeleted bool) ([]*types.Collection, error) {
	q := r.conn(dbc).Where("org_uuid = ?", orgUUID)
	if !includeDeleted {
		q = q.Where("is_deleted = false")
	}
	var results []*types.Collection
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *collectionRepo) GetByOwnerID(dbc dbctx.Context, ownerUUID uuid.UUID, includeDeleted bool) ([]*types.Collection, error) {
	q := r.conn(dbc).Where("owner_uuid = ?", ownerUUID)
	if !includeDeleted {
		q = q.Where("is_deleted = false")
	}
	var results []*types.Collection
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *collectionRepo) GetChildren(dbc dbctx.Context, parentUUID uuid.UUID) ([]*types.Collection, error) {
	var results []*types.Collection
	if err := r.conn(dbc).
		Where("parent_uuid = ? AND is_deleted = false", parentUUID).
		Order("name").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

// AddDocument inserts the membership row and bumps the denormalized
// document counter in one transaction. Re-adding an existing member is a
// no-op rather than a conflict.
func (r *collectionRepo) AddDocument(dbc dbctx.Context, collectionUUID, documentUUID uuid.UUID) error {
	run := func(tx *gorm.DB) error {
		res := tx.WithContext(dbc.Ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&types.DocumentCollection{
				FileUUID:       documentUUID,
				CollectionUUID: collectionUUID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.WithContext(dbc.Ctx).Model(&types.Collection{}).
			Where("uuid = ?", collectionUUID).
			Update("document_count", gorm.Expr("document_count + 1")).Error
	}
	r.Invalidate(collectionUUID)
	var err error
	if dbc.Tx != nil {
		err = run(dbc.Tx)
	} else {
		err = r.db.Transaction(run)
	}
	return dberr.Translate(err)
}

func (r *collectionRepo) RemoveDocument(dbc dbctx.Context, collectionUUID, documentUUID uuid.UUID) error {
	run := func(tx *gorm.DB) error {
		res := tx.WithContext(dbc.Ctx).
			Where("collection_id = ? AND file_id = ?", collectionUUID, documentUUID).
			Delete(&types.DocumentCollection{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return dberr.NotFound(fmt.Errorf("document %s is not in collection %s", documentUUID, collectionUUID))
		}
		return tx.WithContext(dbc.Ctx).Model(&types.Collection{}).
			Where("uuid = ? AND document_count > 0", collectionUUID).
			Update("document_count", gorm.Expr("document_count - 1")).Error
	}
	r.Invalidate(collectionUUID)
	var err error
	if dbc.Tx != nil {
		err = run(dbc.Tx)
	} else {
		err = r.db.Transaction(run)
	}
	return dberr.Translate(err)
}

func (r *collectionRepo) GetDocuments(dbc dbctx.Context, collectionUUID uuid.UUID) ([]*types.Document, error) {
	var results []*types.Document
	if err := r.conn(dbc).
		Joins("JOIN file_collection_association ON file_collection_association.file_id = documents.uuid").
		Where("file_collection_association.collection_id = ?", collectionUUID).
		Order("file_collection_association.added_at").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *collectionRepo) GetCollectionsForDocument(dbc dbctx.Context, documentUUID uuid.UUID) ([]*types.Collection, error) {
	var results []*types.Collection
	if err := r.conn(dbc).
		Joins("JOIN file_collection_association ON file_collection_association.collection_id = collections.uuid").
		Where("file_collection_association.file_id = ?", documentUUID).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *collectionRepo) SetGraphState(dbc dbctx.Context, id uuid.UUID, state string) error {
	fields := map[string]any{"graph_state": state}
	if state == types.GraphStateSynchronized {
		now := time.Now().UTC()
		fields["last_sync_timestamp"] = now
		fields["is_graph_generated"] = true
		fields["graph_generated_at"] = now
	}
	_, err := r.Repo.Update(dbc, id, fields)
	return err
}

// RefreshCounts recomputes the denormalized counters from the authoritative
// tables. The counters are eventually consistent; this is the repair path.
func (r *collectionRepo) RefreshCounts(dbc dbctx.Context, id uuid.UUID) (*types.Collection, error) {
	var updated *types.Collection
	run := func(tx *gorm.DB) error {
		var docCount, entityCount, relCount int64
		if err := tx.WithContext(dbc.Ctx).Model(&types.DocumentCollection{}).
			Where("collection_id = ?", id).Count(&docCount).Error; err != nil {
			return err
		}
		if err := tx.WithContext(dbc.Ctx).Model(&types.CollectionEntity{}).
			Where("collection_uuid = ?", id).Count(&entityCount).Error; err != nil {
			return err
		}
		if err := tx.WithContext(dbc.Ctx).Model(&types.CollectionRelationship{}).
			Where("collection_uuid = ?", id).Count(&relCount).Error; err != nil {
			return err
		}
		res := tx.WithContext(dbc.Ctx).Model(&types.Collection{}).
			Where("uuid = ?", id).
			Updates(map[string]any{
				"document_count":     docCount,
				"entity_count":       entityCount,
				"relationship_count": relCount,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return dberr.NotFound(fmt.Errorf("collection %s not found", id))
		}
		var after types.Collection
		if err := tx.WithContext(dbc.Ctx).Where("uuid = ?", id).First(&after).Error; err != nil {
			return err
		}
		updated = &after
		return nil
	}
	r.Invalidate(id)
	var err error
	if dbc.Tx != nil {
		err = run(dbc.Tx)
	} else {
		err = r.db.Transaction(run)
	}
	if err != nil {
		return nil, dberr.Translate(err)
	}
	return updated, nil
}

// DeleteSubtree soft-deletes a collection and every descendant in one
// transaction, walking the parent chain with a recursive CTE. Returns the
// number of collections marked deleted. Cached descendant rows age out on
// the cache TTL rather than being invalidated individually.
func (r *collectionRepo) DeleteSubtree(dbc dbctx.Context, id uuid.UUID) (int64, error) {
	var affected int64
	run := func(tx *gorm.DB) error {
		res := tx.WithContext(dbc.Ctx).Exec(`
			WITH RECURSIVE subtree AS (
				SELECT uuid FROM collections WHERE uuid = ?
				UNION ALL
				SELECT c.uuid FROM collections c
				JOIN subtree s ON c.parent_uuid = s.uuid
			)
			UPDATE collections
			SET is_deleted = true, deleted_at = now()
			WHERE uuid IN (SELECT uuid FROM subtree) AND is_deleted = false
		`, id)
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			return dberr.NotFound(fmt.Errorf("collection %s not found or already deleted", id))
		}
		return nil
	}
	r.Invalidate(id)
	var err error
	if dbc.Tx != nil {
		err = run(dbc.Tx)
	} else {
		err = r.db.Transaction(run)
	}
	if err != nil {
		return 0, dberr.Translate(err)
	}
	return affected, nil
}
