package security

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/pkg/dbctx"
	"github.com/agentsx-dev/axai-pg/pkg/dberr"
	"github.com/agentsx-dev/axai-pg/platform/logger"
)

type RateLimitRepo interface {
	// Increment bumps the counter for (user, action) inside the window
	// starting at windowStart, creating the row on first use, and returns
	// the count after the bump.
	Increment(dbc dbctx.Context, userUUID uuid.UUID, actionType string, windowStart time.Time) (int, error)
	GetWindow(dbc dbctx.Context, userUUID uuid.UUID, actionType string, windowStart time.Time) (*types.RateLimit, error)
	DeleteBefore(dbc dbctx.Context, cutoff time.Time) (int64, error)
}

type rateLimitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRateLimitRepo(db *gorm.DB, baseLog *logger.Logger) RateLimitRepo {
	return &rateLimitRepo{db: db, log: baseLog.With("repo", "RateLimitRepo")}
}

func (r *rateLimitRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *rateLimitRepo) Increment(dbc dbctx.Context, userUUID uuid.UUID, actionType string, windowStart time.Time) (int, error) {
	row := &types.RateLimit{
		UserUUID:    userUUID,
		ActionType:  actionType,
		WindowStart: windowStart,
		Count:       1,
	}
	if err := r.conn(dbc).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_uuid"}, {Name: "action_type"}, {Name: "window_start"}},
		DoUpdates: clause.Assignments(map[string]any{
			"count":      gorm.Expr("rate_limits.count + 1"),
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(row).Error; err != nil {
		return 0, dberr.Translate(err)
	}
	// The upsert path does not populate row.Count with the server value.
	current, err := r.GetWindow(dbc, userUUID, actionType, windowStart)
	if err != nil {
		return 0, err
	}
	return current.Count, nil
}

func (r *rateLimitRepo) GetWindow(dbc dbctx.Context, userUUID uuid.UUID, actionType string, windowStart time.Time) (*types.RateLimit, error) {
	var result types.RateLimit
	if err := r.conn(dbc).
		Where("user_uuid = ? AND action_type = ? AND window_start = ?", userUUID, actionType, windowStart).
		First(&result).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &result, nil
}

func (r *rateLimitRepo) DeleteBefore(dbc dbctx.Context, cutoff time.Time) (int64, error) {
	res := r.conn(dbc).
		Where("window_start < ?", cutoff).
		Delete(&types.RateLimit{})
	if res.Error != nil {
		return 0, dberr.Translate(res.Error)
	}
	return res.RowsAffected, nil
}
