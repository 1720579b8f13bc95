package security

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/pkg/dbctx"
	"github.com/agentsx-dev/axai-pg/pkg/dberr"
	"github.com/agentsx-dev/axai-pg/platform/logger"
)

// AuditLogRepo is append-only: entries are recorded and queried, never
// updated or deleted through this surface.
type AuditLogRepo interface {
	Record(dbc dbctx.Context, entry *types.AuditLog) (*types.AuditLog, error)
	GetByUserID(dbc dbctx.Context, userUUID uuid.UUID, limit int) ([]*types.AuditLog, error)
	GetByAction(dbc dbctx.Context, action string, limit int) ([]*types.AuditLog, error)
	GetByResource(dbc dbctx.Context, resourceType string, resourceUUID uuid.UUID) ([]*types.AuditLog, error)
	GetSince(dbc dbctx.Context, since time.Time, limit int) ([]*types.AuditLog, error)
}

type auditLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	return &auditLogRepo{db: db, log: baseLog.With("repo", "AuditLogRepo")}
}

func (r *auditLogRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *auditLogRepo) Record(dbc dbctx.Context, entry *types.AuditLog) (*types.AuditLog, error) {
	if entry.Action == "" {
		return nil, dberr.Validation(errors.New("audit entry requires an action"))
	}
	if entry.Username == "" {
		return nil, dberr.Validation(errors.New("audit entry requires a username"))
	}
	if entry.ActionTime.IsZero() {
		entry.ActionTime = time.Now().UTC()
	}
	if err := r.conn(dbc).Create(entry).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return entry, nil
}

func (r *auditLogRepo) GetByUserID(dbc dbctx.Context, userUUID uuid.UUID, limit int) ([]*types.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var results []*types.AuditLog
	if err := r.conn(dbc).
		Where("user_uuid = ?", userUUID).
		Order("action_time DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *auditLogRepo) GetByAction(dbc dbctx.Context, action string, limit int) ([]*types.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var results []*types.AuditLog
	if err := r.conn(dbc).
		Where("action = ?", action).
		Order("action_time DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *auditLogRepo) GetByResource(dbc dbctx.Context, resourceType string, resourceUUID uuid.UUID) ([]*types.AuditLog, error) {
	var results []*types.AuditLog
	if err := r.conn(dbc).
		Where("resource_type = ? AND resource_uuid = ?", resourceType, resourceUUID).
		Order("action_time DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *auditLogRepo) GetSince(dbc dbctx.Context, since time.Time, limit int) ([]*types.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var results []*types.AuditLog
	if err := r.conn(dbc).
		Where("action_time >= ?", since).
		Order("action_time DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}
