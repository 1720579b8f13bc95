package security

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

type SecurityPolicyRepo interface {
	Create(dbc dbctx.Context, rows []*types.SecurityPolicy) ([]*types.SecurityPolicy, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.SecurityPolicy, error)
	GetByShortID(dbc dbctx.Context, shortID string) (*types.SecurityPolicy, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.SecurityPolicy, error)
	Update(dbc dbctx.Context, id uuid.UUID, fields map[string]any) (*types.SecurityPolicy, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error

	GetByName(dbc dbctx.Context, name string) (*types.SecurityPolicy, error)
	GetByType(dbc dbctx.Context, policyType string, activeOnly bool) ([]*types.SecurityPolicy, error)
}

type securityPolicyRepo struct {
	*base.Repo[types.SecurityPolicy]
	db  *gorm.DB
	log *logger.Logger
}

func NewSecurityPolicyRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) SecurityPolicyRepo {
	return &securityPolicyRepo{
		Repo: base.New[types.SecurityPolicy](db, baseLog, c, "security_policy", false),
		db:   db,
		log:  baseLog.With("repo", "SecurityPolicyRepo"),
	}
}

func (r *securityPolicyRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *securityPolicyRepo) GetByName(dbc dbctx.Context, name string) (*types.SecurityPolicy, error) {
	var result types.SecurityPolicy
	if err := r.conn(dbc).Where("name = ?", name).First(&result).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &result, nil
}

func (r *securityPolicyRepo) GetByType(dbc dbctx.Context, policyType string, activeOnly bool) ([]*types.SecurityPolicy, error) {
	q := r.conn(dbc).Where("policy_type = ?", policyType)
	if activeOnly {
		q = q.Where("is_active = true")
	}
	var results []*types.SecurityPolicy
	if err := q.Order("name ASC").Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}
