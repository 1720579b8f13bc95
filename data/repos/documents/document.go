package documents

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agentsx-dev/axai-pg/data/cache"
	"github.com/agentsx-dev/axai-pg/data/repos/base"
	types "github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/pkg/dbctx"
	"github.com/agentsx-dev/axai-pg/pkg/dberr"
	"github.com/agentsx-dev/axai-pg/platform/logger"
)

type DocumentRepo interface {
	Create(dbc dbctx.Context, rows []*types.Document) ([]*types.Document, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.Document, error)
	GetByShortID(dbc dbctx.Context, shortID string) (*types.Document, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.Document, error)
	Update(dbc dbctx.Context, id uuid.UUID, fields map[string]any) (*types.Document, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	HardDelete(dbc dbctx.Context, id uuid.UUID) error

	GetByOrgID(dbc dbctx.Context, orgUUID uuid.UUID, includeDeleted bool) ([]*types.Document, error)
	GetByOwnerID(dbc dbctx.Context, ownerUUID uuid.UUID, includeDeleted bool) ([]*types.Document, error)
	GetByStatus(dbc dbctx.Context, orgUUID uuid.UUID, status string) ([]*types.Document, error)
	GetByTopicID(dbc dbctx.Context, topicUUID uuid.UUID) ([]*types.Document, error)
	GetChunks(dbc dbctx.Context, parentUUID uuid.UUID) ([]*types.Document, error)
	Search(dbc dbctx.Context, orgUUID uuid.UUID, query string, limit int) ([]*types.Document, error)
	RelatedDocuments(dbc dbctx.Context, id uuid.UUID, maxDepth int) ([]*types.Document, error)

	CreateWithSummary(dbc dbctx.Context, doc *types.Document, summary *types.Summary) (*types.Document, error)
	UpdateWithVersion(dbc dbctx.Context, id uuid.UUID, fields map[string]any, changeDescription string, createdBy *uuid.UUID) (*types.Document, error)
	MarkGraphGenerated(dbc dbctx.Context, id uuid.UUID) error
	Restore(dbc dbctx.Context, id uuid.UUID) error
}

type documentRepo struct {
	*base.Repo[types.Document]
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) DocumentRepo {
	return &documentRepo{
		Repo: base.New[types.Document](db, baseLog, c, "document", true),
		db:   db,
		log:  baseLog.With("repo", "DocumentRepo"),
	}
}

func (r *documentRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *documentRepo) GetByOrgID(dbc dbctx.Context, orgUUID uuid.UUID, includeDeleted bool) ([]*types.Document, error) {
	q := r.conn(dbc).Where("org_uuid = ?", orgUUID)
	if !includeDeleted {
		q = q.Where("is_deleted = false")
	}
	var results []*types.Document
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *documentRepo) GetByOwnerID(dbc dbctx.Context, ownerUUID uuid.UUID, includeDeleted bool) ([]*types.Document, error) {
	q := r.conn(dbc).Where("owner_uuid = ?", ownerUUID)
	if !includeDeleted {
		q = q.Where("is_deleted = false")
	}
	var results []*types.Document
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *documentRepo) GetByStatus(dbc dbctx.Context, orgUUID uuid.UUID, status string) ([]*types.Document, error) {
	var results []*types.Document
	if err := r.conn(dbc).
		Where("org_uuid = ? AND status = ? AND is_deleted = false", orgUUID, status).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *documentRepo) GetByTopicID(dbc dbctx.Context, topicUUID uuid.UUID) ([]*types.Document, error) {
	var results []*types.Document
	if err := r.conn(dbc).
		Joins("JOIN document_topics ON document_topics.document_uuid = documents.uuid").
		Where("document_topics.topic_uuid = ? AND documents.is_deleted = false", topicUUID).
		Order("document_topics.relevance_score DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *documentRepo) GetChunks(dbc dbctx.Context, parentUUID uuid.UUID) ([]*types.Document, error) {
	var results []*types.Document
	if err := r.conn(dbc).
		Where("parent_document_uuid = ?", parentUUID).
		Order("chunk_index").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

// Search matches the query against title, description and content with a
// case-insensitive substring; results stay inside the organization.
func (r *documentRepo) Search(dbc dbctx.Context, orgUUID uuid.UUID, query string, limit int) ([]*types.Document, error) {
	if limit <= 0 {
		limit = 50
	}
	pattern := "%" + query + "%"
	var results []*types.Document
	if err := r.conn(dbc).
		Where("org_uuid = ? AND is_deleted = false", orgUUID).
		Where("title ILIKE ? OR description ILIKE ? OR content ILIKE ?", pattern, pattern, pattern).
		Limit(limit).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

// CreateWithSummary inserts the document and its summary in one transaction
// and records the summary on the denormalized flag. Either both rows land or
// neither does.
func (r *documentRepo) CreateWithSummary(dbc dbctx.Context, doc *types.Document, summary *types.Summary) (*types.Document, error) {
	run := func(tx *gorm.DB) error {
		if err := tx.WithContext(dbc.Ctx).Create(doc).Error; err != nil {
			return err
		}
		if summary != nil {
			summary.DocumentUUID = doc.UUID
			if err := tx.WithContext(dbc.Ctx).Create(summary).Error; err != nil {
				return err
			}
			return tx.WithContext(dbc.Ctx).Model(doc).Update("has_summary", true).Error
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
	return doc, nil
}

// UpdateWithVersion snapshots the current row into document_versions, bumps
// the version counter and applies fields, all in one transaction.
func (r *documentRepo) UpdateWithVersion(dbc dbctx.Context, id uuid.UUID, fields map[string]any, changeDescription string, createdBy *uuid.UUID) (*types.Document, error) {
	var updated *types.Document
	run := func(tx *gorm.DB) error {
		var current types.Document
		if err := tx.WithContext(dbc.Ctx).Where("uuid = ?", id).First(&current).Error; err != nil {
			return err
		}

		content := ""
		if current.Content != nil {
			content = *current.Content
		}
		snapshot := &types.DocumentVersion{
			DocumentUUID:  current.UUID,
			Version:       current.Version,
			Content:       content,
			Title:         current.Title,
			Status:        current.Status,
			CreatedByUUID: createdBy,
			FilePath:      current.FilePath,
			ContentType:   current.ContentType,
		}
		if changeDescription != "" {
			snapshot.ChangeDescription = &changeDescription
		}
		if err := tx.WithContext(dbc.Ctx).Create(snapshot).Error; err != nil {
			return err
		}

		clean := make(map[string]any, len(fields)+2)
		for k, v := range fields {
			switch k {
			case "uuid", "id", "version":
				continue
			}
			clean[k] = v
		}
		clean["version"] = current.Version + 1
		clean["has_versions"] = true
		res := tx.WithContext(dbc.Ctx).Model(&types.Document{}).Where("uuid = ?", id).Updates(clean)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return dberr.NotFound(fmt.Errorf("document %s not found", id))
		}

		var after types.Document
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

func (r *documentRepo) MarkGraphGenerated(dbc dbctx.Context, id uuid.UUID) error {
	_, err := r.Repo.Update(dbc, id, map[string]any{
		"has_graph":             true,
		"entities_last_updated": time.Now().UTC(),
	})
	return err
}

// RelatedDocuments walks the entity graph outward from the document,
// following active relationships up to maxDepth hops, and returns the
// documents reached ordered by proximity.
func (r *documentRepo) RelatedDocuments(dbc dbctx.Context, id uuid.UUID, maxDepth int) ([]*types.Document, error) {
	if maxDepth <= 0 {
		maxDepth = 2
	}
	var results []*types.Document
	err := r.conn(dbc).Raw(`
		WITH RECURSIVE related_docs AS (
			SELECT ge2.source_file_uuid AS doc_uuid, 1 AS depth
			FROM graph_entities ge
			JOIN graph_relationships gr ON gr.source_entity_uuid = ge.uuid AND gr.is_active
			JOIN graph_entities ge2 ON ge2.uuid = gr.target_entity_uuid AND ge2.is_active
			WHERE ge.source_file_uuid = @doc AND ge.is_active
				AND ge2.source_file_uuid IS NOT NULL AND ge2.source_file_uuid <> @doc
			UNION
			SELECT ge2.source_file_uuid, rd.depth + 1
			FROM related_docs rd
			JOIN graph_entities ge ON ge.source_file_uuid = rd.doc_uuid AND ge.is_active
			JOIN graph_relationships gr ON gr.source_entity_uuid = ge.uuid AND gr.is_active
			JOIN graph_entities ge2 ON ge2.uuid = gr.target_entity_uuid AND ge2.is_active
			WHERE ge2.source_file_uuid IS NOT NULL AND ge2.source_file_uuid <> @doc
				AND rd.depth < @max_depth
		)
		SELECT documents.* FROM documents
		JOIN (
			SELECT doc_uuid, MIN(depth) AS depth
			FROM related_docs
			GROUP BY doc_uuid
		) rd ON rd.doc_uuid = documents.uuid
		WHERE documents.is_deleted = false
		ORDER BY rd.depth, documents.title
	`, map[string]any{"doc": id, "max_depth": maxDepth}).Scan(&results).Error
	if err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

// Restore undoes a soft delete. The row keeps its version history and
// counters; only the deletion markers are cleared.
func (r *documentRepo) Restore(dbc dbctx.Context, id uuid.UUID) error {
	r.Invalidate(id)
	res := r.conn(dbc).Model(&types.Document{}).Where("uuid = ?", id).Updates(map[string]any{
		"is_deleted": false,
		"deleted_at": nil,
	})
	if res.Error != nil {
		return dberr.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return dberr.NotFound(fmt.Errorf("document %s not found", id))
	}
	return nil
}
