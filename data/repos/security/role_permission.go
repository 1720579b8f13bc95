package security

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/pkg/dbctx"
	"github.com/agentsx-dev/axai-pg/pkg/dberr"
	"github.com/agentsx-dev/axai-pg/platform/logger"
)

var validPermissions = map[string]bool{
	types.PermissionRead:   true,
	types.PermissionCreate: true,
	types.PermissionUpdate: true,
	types.PermissionDelete: true,
}

type RolePermissionRepo interface {
	Grant(dbc dbctx.Context, roleName, resourceName, permissionType string) (*types.RolePermission, error)
	Revoke(dbc dbctx.Context, roleName, resourceName, permissionType string) error
	HasPermission(dbc dbctx.Context, roleName, resourceName, permissionType string) (bool, error)
	GetByRoleName(dbc dbctx.Context, roleName string) ([]*types.RolePermission, error)
}

type rolePermissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRolePermissionRepo(db *gorm.DB, baseLog *logger.Logger) RolePermissionRepo {
	return &rolePermissionRepo{db: db, log: baseLog.With("repo", "RolePermissionRepo")}
}

func (r *rolePermissionRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

// Grant adds a permission to a role. Granting an existing triple is a no-op.
func (r *rolePermissionRepo) Grant(dbc dbctx.Context, roleName, resourceName, permissionType string) (*types.RolePermission, error) {
	if !validPermissions[permissionType] {
		return nil, dberr.Validation(fmt.Errorf("unknown permission type %q", permissionType))
	}
	row := &types.RolePermission{
		RoleName:       roleName,
		ResourceName:   resourceName,
		PermissionType: permissionType,
	}
	res := r.conn(dbc).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role_name"}, {Name: "resource_name"}, {Name: "permission_type"}},
		DoNothing: true,
	}).Create(row)
	if res.Error != nil {
		return nil, dberr.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		var existing types.RolePermission
		if err := r.conn(dbc).
			Where("role_name = ? AND resource_name = ? AND permission_type = ?", roleName, resourceName, permissionType).
			First(&existing).Error; err != nil {
			return nil, dberr.Translate(err)
		}
		return &existing, nil
	}
	return row, nil
}

func (r *rolePermissionRepo) Revoke(dbc dbctx.Context, roleName, resourceName, permissionType string) error {
	res := r.conn(dbc).
		Where("role_name = ? AND resource_name = ? AND permission_type = ?", roleName, resourceName, permissionType).
		Delete(&types.RolePermission{})
	if res.Error != nil {
		return dberr.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return dberr.NotFound(fmt.Errorf("role %q has no %s grant on %q", roleName, permissionType, resourceName))
	}
	return nil
}

func (r *rolePermissionRepo) HasPermission(dbc dbctx.Context, roleName, resourceName, permissionType string) (bool, error) {
	var count int64
	if err := r.conn(dbc).Model(&types.RolePermission{}).
		Where("role_name = ? AND resource_name = ? AND permission_type = ?", roleName, resourceName, permissionType).
		Count(&count).Error; err != nil {
		return false, dberr.Translate(err)
	}
	return count > 0, nil
}

func (r *rolePermissionRepo) GetByRoleName(dbc dbctx.Context, roleName string) ([]*types.RolePermission, error) {
	var results []*types.RolePermission
	if err := r.conn(dbc).
		Where("role_name = ?", roleName).
		Order("resource_name ASC, permission_type ASC").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}
