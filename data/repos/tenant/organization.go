package tenant

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

type OrganizationRepo interface {
	Create(dbc dbctx.Context, rows []*types.Organization) ([]*types.Organization, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.Organization, error)
	GetByShortID(dbc dbctx.Context, shortID string) (*types.Organization, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.Organization, error)
	Update(dbc dbctx.Context, id uuid.UUID, fields map[string]any) (*types.Organization, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	GetByName(dbc dbctx.Context, name string) (*types.Organization, error)
}

type organizationRepo struct {
	*base.Repo[types.Organization]
	db  *gorm.DB
	log *logger.Logger
}

func NewOrganizationRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) OrganizationRepo {
	return &organizationRepo{
		Repo: base.New[types.Organization](db, baseLog, c, "organization", false),
		db:   db,
		log:  baseLog.With("repo", "OrganizationRepo"),
	}
}

func (r *organizationRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *organizationRepo) GetByName(dbc dbctx.Context, name string) (*types.Organization, error) {
	var out types.Organization
	if err := r.conn(dbc).Where("name = ?", name).First(&out).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &out, nil
}
