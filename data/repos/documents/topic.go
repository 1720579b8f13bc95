package documents

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agentsx-dev/axai-pg/data/cache"
	"github.com/agentsx-dev/axai-pg/data/repos/base"
	types "github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/pkg/dbctx"
	"github.com/agentsx-dev/axai-pg/pkg/dberr"
	"github.com/agentsx-dev/axai-pg/platform/logger"
)

type TopicRepo interface {
	Create(dbc dbctx.Context, rows []*types.Topic) ([]*types.Topic, error)
	GetByUUID(dbc dbctx.Context, id uuid.UUID) (*types.Topic, error)
	GetByAnyID(dbc dbctx.Context, id string) (*types.Topic, error)
	Update(dbc dbctx.Context, id uuid.UUID, fields map[string]any) (*types.Topic, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	GetByName(dbc dbctx.Context, name string) (*types.Topic, error)
	GetChildren(dbc dbctx.Context, parentUUID uuid.UUID) ([]*types.Topic, error)
	GetActive(dbc dbctx.Context) ([]*types.Topic, error)
}

type topicRepo struct {
	*base.Repo[types.Topic]
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) TopicRepo {
	return &topicRepo{
		Repo: base.New[types.Topic](db, baseLog, c, "topic", false),
		db:   db,
		log:  baseLog.With("repo", "TopicRepo"),
	}
}

func (r *topicRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *topicRepo) GetByName(dbc dbctx.Context, name string) (*types.Topic, error) {
	var out types.Topic
	if err := r.conn(dbc).Where("name = ?", name).First(&out).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return &out, nil
}

func (r *topicRepo) GetChildren(dbc dbctx.Context, parentUUID uuid.UUID) ([]*types.Topic, error) {
	var results []*types.Topic
	if err := r.conn(dbc).
		Where("parent_topic_uuid = ?", parentUUID).
		Order("name").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *topicRepo) GetActive(dbc dbctx.Context) ([]*types.Topic, error) {
	var results []*types.Topic
	if err := r.conn(dbc).
		Where("is_active = true").
		Order("name").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

type DocumentTopicRepo interface {
	Assign(dbc dbctx.Context, row *types.DocumentTopic) (*types.DocumentTopic, error)
	GetByDocumentID(dbc dbctx.Context, documentUUID uuid.UUID) ([]*types.DocumentTopic, error)
	GetByTopicID(dbc dbctx.Context, topicUUID uuid.UUID) ([]*types.DocumentTopic, error)
	UpdateRelevance(dbc dbctx.Context, documentUUID, topicUUID uuid.UUID, relevance float64) error
	Remove(dbc dbctx.Context, documentUUID, topicUUID uuid.UUID) error
}

type documentTopicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentTopicRepo(db *gorm.DB, baseLog *logger.Logger) DocumentTopicRepo {
	return &documentTopicRepo{db: db, log: baseLog.With("repo", "DocumentTopicRepo")}
}

func (r *documentTopicRepo) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(dbc.Ctx)
}

func (r *documentTopicRepo) Assign(dbc dbctx.Context, row *types.DocumentTopic) (*types.DocumentTopic, error) {
	if row.RelevanceScore < 0 || row.RelevanceScore > 1 {
		return nil, dberr.Validation(fmt.Errorf("relevance score %v outside [0,1]", row.RelevanceScore))
	}
	if err := r.conn(dbc).Create(row).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return row, nil
}

func (r *documentTopicRepo) GetByDocumentID(dbc dbctx.Context, documentUUID uuid.UUID) ([]*types.DocumentTopic, error) {
	var results []*types.DocumentTopic
	if err := r.conn(dbc).
		Where("document_uuid = ?", documentUUID).
		Order("relevance_score DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *documentTopicRepo) GetByTopicID(dbc dbctx.Context, topicUUID uuid.UUID) ([]*types.DocumentTopic, error) {
	var results []*types.DocumentTopic
	if err := r.conn(dbc).
		Where("topic_uuid = ?", topicUUID).
		Order("relevance_score DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Translate(err)
	}
	return results, nil
}

func (r *documentTopicRepo) UpdateRelevance(dbc dbctx.Context, documentUUID, topicUUID uuid.UUID, relevance float64) error {
	if relevance < 0 || relevance > 1 {
		return dberr.Validation(fmt.Errorf("relevance score %v outside [0,1]", relevance))
	}
	res := r.conn(dbc).Model(&types.DocumentTopic{}).
		Where("document_uuid = ? AND topic_uuid = ?", documentUUID, topicUUID).
		Update("relevance_score", relevance)
	if res.Error != nil {
		return dberr.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return dberr.NotFound(gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *documentTopicRepo) Remove(dbc dbctx.Context, documentUUID, topicUUID uuid.UUID) error {
	res := r.conn(dbc).
		Where("document_uuid = ? AND topic_uuid = ?", documentUUID, topicUUID).
		Delete(&types.DocumentTopic{})
	if res.Error != nil {
		return dberr.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return dberr.NotFound(gorm.ErrRecordNotFound)
	}
	return nil
}
