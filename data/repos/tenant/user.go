package tenant

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/agentsx-dev/axai-pg/data/cache"
	"github.com/agentsx-dev/axai-pg/data/repos/base"
	types "github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/pkg/dbctx"
	"github.com/agentsx-dev/axai-pg/pkg/dberr"
	"github.com/agentsx-dev/axai-pg/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, rows []*types.User) ([]*types.User, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.User, error)
	GetByShortID(dbc dbctx.Context, shortID string) (*types.User, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.User, error)
	Update(dbc dbctx.Context, id uuid.UUID, fields map[string]any) (*types.User, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	GetByUsername(dbc dbctx.Context, username string) (*types.User, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.User, error)
	GetByOrgID(dbc dbctx.Context, orgUUID uuid.UUID) ([]*types.User, error)
	SetPassword(dbc dbctx.Context, id uuid.UUID, plaintext string) error
	CheckPassword(dbc dbctx.Context, id uuid.UUID, plaintext string) (bool, error)
	RecordLogin(dbc dbctx.Context, id uuid.UUID) error
}

type userRepo struct {
	*base.Repo[types.User]
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) UserRepo {
	return &userRepo{
		Repo: base.New[types.User](db, baseLog, c, "user", false),
		db:   db,
		log:  baseLog.With("repo", "UserRepo"),
	}
}

func (r *userRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *userRepo) GetByUsername(dbc dbctx.Context, username string) (*types.User, error) {
	var out types.User
	if err := r.conn(dbc).Where("username = ?", username).First(&out).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &out, nil
}

func (r *userRepo) GetByEmail(dbc dbctx.Context, email string) (*types.User, error) {
	var out types.User
	if err := r.conn(dbc).Where("email = ?", email).First(&out).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &out, nil
}

func (r *userRepo) GetByOrgID(dbc dbctx.Context, orgUUID uuid.UUID) ([]*types.User, error) {
	var results []*types.User
	if err := r.conn(dbc).
		Where("org_uuid = ?", orgUUID).
		Order("username").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

// SetPassword stores a bcrypt hash; the plaintext never reaches the row.
func (r *userRepo) SetPassword(dbc dbctx.Context, id uuid.UUID, plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = r.Repo.Update(dbc, id, map[string]any{"password_hash": string(hash)})
	return err
}

func (r *userRepo) CheckPassword(dbc dbctx.Context, id uuid.UUID, plaintext string) (bool, error) {
	row, err := r.GetByUUID(dbc, id)
	if err != nil {
		return false, err
	}
	if row.PasswordHash == "" {
		return false, nil
	}
	err = bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(plaintext))
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *userRepo) RecordLogin(dbc dbctx.Context, id uuid.UUID) error {
	_, err := r.Repo.Update(dbc, id, map[string]any{"last_login_at": time.Now().UTC()})
	return err
}
