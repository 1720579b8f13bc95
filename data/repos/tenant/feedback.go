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

type FeedbackRepo interface {
	Create(dbc dbctx.Context, rows []*types.Feedback) ([]*types.Feedback, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.Feedback, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.Feedback, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	GetByUserID(dbc dbctx.Context, userUUID uuid.UUID) ([]*types.Feedback, error)
	GetByType(dbc dbctx.Context, feedbackType string) ([]*types.Feedback, error)
}

type feedbackRepo struct {
	*base.Repo[types.Feedback]
	db  *gorm.DB
	log *logger.Logger
}

func NewFeedbackRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) FeedbackRepo {
	return &feedbackRepo{
		Repo: base.New[types.Feedback](db, baseLog, c, "feedback", false),
		db:   db,
		log:  baseLog.With("repo", "FeedbackRepo"),
	}
}

func (r *feedbackRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *feedbackRepo) GetByUserID(dbc dbctx.Context, userUUID uuid.UUID) ([]*types.Feedback, error) {
	var results []*types.Feedback
	if err := r.conn(dbc).
		Where("user_uuid = ?", userUUID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *feedbackRepo) GetByType(dbc dbctx.Context, feedbackType string) ([]*types.Feedback, error) {
	var results []*types.Feedback
	if err := r.conn(dbc).
		Where("type = ?", feedbackType).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}
