package security

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

type RoleRepo interface {
	Create(dbc dbctx.Context, rows []*types.Role) ([]*types.Role, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.Role, error)
	GetByShortID(dbc dbctx.Context, shortID string) (*types.Role, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.Role, error)
	Update(dbc dbctx.Context, id uuid.UUID, fields map[string]any) (*types.Role, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error

	GetByName(dbc dbctx.Context, name string) (*types.Role, error)
	List(dbc dbctx.Context) ([]*types.Role, error)
}

type roleRepo struct {
	*base.Repo[types.Role]
	db  *gorm.DB
	log *logger.Logger
}

func NewRoleRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) RoleRepo {
	return &roleRepo{
		Repo: base.New[types.Role](db, baseLog, c, "role", false),
		db:   db,
		log:  baseLog.With("repo", "RoleRepo"),
	}
}

func (r *roleRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *roleRepo) GetByName(dbc dbctx.Context, name string) (*types.Role, error) {
	var result types.Role
	if err := r.conn(dbc).Where("name = ?", name).First(&result).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &result, nil
}

func (r *roleRepo) List(dbc dbctx.Context) ([]*types.Role, error) {
	var results []*types.Role
	if err := r.conn(dbc).Order("name ASC").Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

type UserRoleRepo interface {
	Assign(dbc dbctx.Context, userUUID, roleUUID uuid.UUID, assignedBy *uuid.UUID) (*types.UserRole, error)
	Revoke(dbc dbctx.Context, userUUID, roleUUID uuid.UUID) error
	GetByUserID(dbc dbctx.Context, userUUID uuid.UUID) ([]*types.UserRole, error)
	HasRole(dbc dbctx.Context, userUUID uuid.UUID, roleName string) (bool, error)
}

type userRoleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRoleRepo(db *gorm.DB, baseLog *logger.Logger) UserRoleRepo {
	return &userRoleRepo{db: db, log: baseLog.With("repo", "UserRoleRepo")}
}

func (r *userRoleRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

// Assign grants a role to a user. Re-assigning an existing pair is a no-op
// and returns the current row.
func (r *userRoleRepo) Assign(dbc dbctx.Context, userUUID, roleUUID uuid.UUID, assignedBy *uuid.UUID) (*types.UserRole, error) {
	var role types.Role
	if err := r.conn(dbc).Where("uuid = ?", roleUUID).First(&role).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	row := &types.UserRole{
		UserUUID:       userUUID,
		RoleUUID:       roleUUID,
		RoleName:       &role.Name,
		AssignedAt:     time.Now().UTC(),
		AssignedByUUID: assignedBy,
	}
	res := r.conn(dbc).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_uuid"}, {Name: "role_uuid"}},
		DoNothing: true,
	}).Create(row)
	if res.Error != nil {
		return nil, dberr.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		var existing types.UserRole
		if err := r.conn(dbc).
			Where("user_uuid = ? AND role_uuid = ?", userUUID, roleUUID).
			First(&existing).Error; err != nil {
			return nil, dberr.Translate(err)
		}
		return &existing, nil
	}
	return row, nil
}

func (r *userRoleRepo) Revoke(dbc dbctx.Context, userUUID, roleUUID uuid.UUID) error {
	res := r.conn(dbc).
		Where("user_uuid = ? AND role_uuid = ?", userUUID, roleUUID).
		Delete(&types.UserRole{})
	if res.Error != nil {
		return dberr.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return dberr.NotFound(fmt.Errorf("user %s has no role %s", userUUID, roleUUID))
	}
	return nil
}

func (r *userRoleRepo) GetByUserID(dbc dbctx.Context, userUUID uuid.UUID) ([]*types.UserRole, error) {
	var results []*types.UserRole
	if err := r.conn(dbc).
		Where("user_uuid = ?", userUUID).
		Order("assigned_at ASC").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *userRoleRepo) HasRole(dbc dbctx.Context, userUUID uuid.UUID, roleName string) (bool, error) {
	var count int64
	if err := r.conn(dbc).Model(&types.UserRole{}).
		Joins("JOIN roles ON roles.uuid = user_roles.role_uuid").
		Where("user_roles.user_uuid = ? AND roles.name = ?", userUUID, roleName).
		Count(&count).Error; err != nil {
		return false, dberr.Translate(err)
	}
	return count > 0, nil
}
