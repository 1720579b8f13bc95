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

type VisibilityProfileRepo interface {
	Create(dbc dbctx.Context, rows []*types.VisibilityProfile) ([]*types.VisibilityProfile, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.VisibilityProfile, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.VisibilityProfile, error)
	Update(dbc dbctx.Context, id uuid.UUID, fields map[string]any) (*types.VisibilityProfile, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error

	GetByFileID(dbc dbctx.Context, fileUUID uuid.UUID) ([]*types.VisibilityProfile, error)
	GetByCollectionID(dbc dbctx.Context, collectionUUID uuid.UUID) ([]*types.VisibilityProfile, error)
	GetGlobal(dbc dbctx.Context, ownerUUID uuid.UUID) ([]*types.VisibilityProfile, error)
}

type visibilityProfileRepo struct {
	*base.Repo[types.VisibilityProfile]
	db  *gorm.DB
	log *logger.Logger
}

func NewVisibilityProfileRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) VisibilityProfileRepo {
	return &visibilityProfileRepo{
		Repo: base.New[types.VisibilityProfile](db, baseLog, c, "visibility_profile", false),
		db:   db,
		log:  baseLog.With("repo", "VisibilityProfileRepo"),
	}
}

func (r *visibilityProfileRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

// Create rejects rows whose scope columns disagree with the profile type
// before the database check constraint would.
func (r *visibilityProfileRepo) Create(dbc dbctx.Context, rows []*types.VisibilityProfile) ([]*types.VisibilityProfile, error) {
	for _, row := range rows {
		if err := row.ValidateScope(); err != nil {
			return nil, dberr.Validation(err)
		}
	}
	return r.Repo.Create(dbc, rows)
}

func (r *visibilityProfileRepo) GetByFileID(dbc dbctx.Context, fileUUID uuid.UUID) ([]*types.VisibilityProfile, error) {
	var results []*types.VisibilityProfile
	if err := r.conn(dbc).
		Where("file_uuid = ? AND is_active = true", fileUUID).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *visibilityProfileRepo) GetByCollectionID(dbc dbctx.Context, collectionUUID uuid.UUID) ([]*types.VisibilityProfile, error) {
	var results []*types.VisibilityProfile
	if err := r.conn(dbc).
		Where("collection_uuid = ? AND is_active = true", collectionUUID).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *visibilityProfileRepo) GetGlobal(dbc dbctx.Context, ownerUUID uuid.UUID) ([]*types.VisibilityProfile, error) {
	var results []*types.VisibilityProfile
	if err := r.conn(dbc).
		Where("owner_uuid = ? AND profile_type = ? AND is_active = true", ownerUUID, types.ProfileTypeGlobal).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}
