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

type DocumentVersionRepo interface {
	Create(dbc dbctx.Context, rows []*types.DocumentVersion) ([]*types.DocumentVersion, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.DocumentVersion, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.DocumentVersion, error)
	GetByDocumentID(dbc dbctx.Context, documentUUID uuid.UUID) ([]*types.DocumentVersion, error)
	GetVersion(dbc dbctx.Context, documentUUID uuid.UUID, version int) (*types.DocumentVersion, error)
	GetLatest(dbc dbctx.Context, documentUUID uuid.UUID) (*types.DocumentVersion, error)
}

type documentVersionRepo struct {
	*base.Repo[types.DocumentVersion]
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentVersionRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) DocumentVersionRepo {
	return &documentVersionRepo{
		Repo: base.New[types.DocumentVersion](db, baseLog, c, "document_version", false),
		db:   db,
		log:  baseLog.With("repo", "DocumentVersionRepo"),
	}
}

func (r *documentVersionRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *documentVersionRepo) GetByDocumentID(dbc dbctx.Context, documentUUID uuid.UUID) ([]*types.DocumentVersion, error) {
	var results []*types.DocumentVersion
	if err := r.conn(dbc).
		Where("document_uuid = ?", documentUUID).
		Order("version DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *documentVersionRepo) GetVersion(dbc dbctx.Context, documentUUID uuid.UUID, version int) (*types.DocumentVersion, error) {
	var out types.DocumentVersion
	if err := r.conn(dbc).
		Where("document_uuid = ? AND version = ?", documentUUID, version).
		First(&out).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &out, nil
}

func (r *documentVersionRepo) GetLatest(dbc dbctx.Context, documentUUID uuid.UUID) (*types.DocumentVersion, error) {
	var out types.DocumentVersion
	if err := r.conn(dbc).
		Where("document_uuid = ?", documentUUID).
		Order("version DESC").
		First(&out).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &out, nil
}
