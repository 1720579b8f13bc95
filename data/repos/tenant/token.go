package tenant

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/domain/tenant"
	"github.com/agentsx-dev/axai-pg/pkg/dbctx"
	"github.com/agentsx-dev/axai-pg/pkg/dberr"
	"github.com/agentsx-dev/axai-pg/platform/logger"
)

// TokenRepo is keyed by the JWT jti rather than the dual-identifier pair,
// so lookups always match the identifier embedded in the credential.
type TokenRepo interface {
	Create(dbc dbctx.Context, rows []*types.Token) ([]*types.Token, error)
	CreateFromJWT(dbc dbctx.Context, raw string, userUUID uuid.UUID, tokenType string) (*types.Token, error)
	GetByTokenID(dbc dbctx.Context, tokenID string) (*types.Token, error)
	GetActiveByUser(dbc dbctx.Context, userUUID uuid.UUID) ([]*types.Token, error)
	Revoke(dbc dbctx.Context, tokenID string) error
	RevokeAllForUser(dbc dbctx.Context, userUUID uuid.UUID) (int64, error)
	DeleteExpired(dbc dbctx.Context, cutoff time.Time) (int64, error)
}

type tokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTokenRepo(db *gorm.DB, baseLog *logger.Logger) TokenRepo {
	return &tokenRepo{db: db, log: baseLog.With("repo", "TokenRepo")}
}

func (r *tokenRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *tokenRepo) Create(dbc dbctx.Context, rows []*types.Token) ([]*types.Token, error) {
	if len(rows) == 0 {
		return []*types.Token{}, nil
	}
	if err := r.conn(dbc).Create(&rows).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return rows, nil
}

func (r *tokenRepo) CreateFromJWT(dbc dbctx.Context, raw string, userUUID uuid.UUID, tokenType string) (*types.Token, error) {
	row, err := tenant.TokenFromJWT(raw, userUUID, tokenType)
	if err != nil {
		return nil, dberr.Validation(err)
	}
	if err := r.conn(dbc).Create(row).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return row, nil
}

func (r *tokenRepo) GetByTokenID(dbc dbctx.Context, tokenID string) (*types.Token, error) {
	var out types.Token
	if err := r.conn(dbc).Where("token_id = ?", tokenID).First(&out).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &out, nil
}

func (r *tokenRepo) GetActiveByUser(dbc dbctx.Context, userUUID uuid.UUID) ([]*types.Token, error) {
	var results []*types.Token
	if err := r.conn(dbc).
		Where("user_uuid = ?", userUUID).
		Where("revoked_at IS NULL").
		Where("expires_at IS NULL OR expires_at > ?", time.Now().UTC()).
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *tokenRepo) Revoke(dbc dbctx.Context, tokenID string) error {
	res := r.conn(dbc).Model(&types.Token{}).
		Where("token_id = ? AND revoked_at IS NULL", tokenID).
		Update("revoked_at", time.Now().UTC())
	if res.Error != nil {
		return dberr.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return dberr.NotFound(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *tokenRepo) RevokeAllForUser(dbc dbctx.Context, userUUID uuid.UUID) (int64, error) {
	res := r.conn(dbc).Model(&types.Token{}).
		Where("user_uuid = ? AND revoked_at IS NULL", userUUID).
		Update("revoked_at", time.Now().UTC())
	if res.Error != nil {
		return 0, dberr.Translate(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *tokenRepo) DeleteExpired(dbc dbctx.Context, cutoff time.Time) (int64, error) {
	res := r.conn(dbc).
		Where("expires_at IS NOT NULL AND expires_at < ?", cutoff).
		Delete(&types.Token{})
	if res.Error != nil {
		return 0, dberr.Translate(res.Error)
	}
	return res.RowsAffected, nil
}
