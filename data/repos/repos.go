package repos

import (
	"gorm.io/gorm"

	"github.com/agentsx-dev/axai-pg/data/cache"
	"github.com/agentsx-dev/axai-pg/data/repos/collections"
	"github.com/agentsx-dev/axai-pg/data/repos/documents"
	"github.com/agentsx-dev/axai-pg/data/repos/graph"
	"github.com/agentsx-dev/axai-pg/data/repos/security"
	"github.com/agentsx-dev/axai-pg/data/repos/tenant"
	"github.com/agentsx-dev/axai-pg/data/repos/usage"
	"github.com/agentsx-dev/axai-pg/platform/logger"
)

type OrganizationRepo = tenant.OrganizationRepo
type UserRepo = tenant.UserRepo
type TokenRepo = tenant.TokenRepo
type FeedbackRepo = tenant.FeedbackRepo

type DocumentRepo = documents.DocumentRepo
type DocumentVersionRepo = documents.DocumentVersionRepo
type SummaryRepo = documents.SummaryRepo
type TopicRepo = documents.TopicRepo
type DocumentTopicRepo = documents.DocumentTopicRepo

type CollectionRepo = collections.CollectionRepo
type CollectionEntityRepo = collections.CollectionEntityRepo
type CollectionRelationshipRepo = collections.CollectionRelationshipRepo
type EntityLinkRepo = collections.EntityLinkRepo
type EntityOperationRepo = collections.EntityOperationRepo
type DocumentContextRepo = collections.DocumentContextRepo
type VisibilityProfileRepo = collections.VisibilityProfileRepo

type GraphEntityRepo = graph.GraphEntityRepo
type GraphRelationshipRepo = graph.GraphRelationshipRepo

type RoleRepo = security.RoleRepo
type UserRoleRepo = security.UserRoleRepo
type RolePermissionRepo = security.RolePermissionRepo
type AuditLogRepo = security.AuditLogRepo
type RateLimitRepo = security.RateLimitRepo
type SecurityPolicyRepo = security.SecurityPolicyRepo

type LLMUsageRepo = usage.LLMUsageRepo
type LLMModelPricingRepo = usage.LLMModelPricingRepo

func NewOrganizationRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) OrganizationRepo {
	return tenant.NewOrganizationRepo(db, baseLog, c)
}
func NewUserRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) UserRepo {
	return tenant.NewUserRepo(db, baseLog, c)
}
func NewTokenRepo(db *gorm.DB, baseLog *logger.Logger) TokenRepo {
	return tenant.NewTokenRepo(db, baseLog)
}
func NewFeedbackRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) FeedbackRepo {
	return tenant.NewFeedbackRepo(db, baseLog, c)
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) DocumentRepo {
	return documents.NewDocumentRepo(db, baseLog, c)
}
func NewDocumentVersionRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) DocumentVersionRepo {
	return documents.NewDocumentVersionRepo(db, baseLog, c)
}
func NewSummaryRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) SummaryRepo {
	return documents.NewSummaryRepo(db, baseLog, c)
}
func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) TopicRepo {
	return documents.NewTopicRepo(db, baseLog, c)
}
func NewDocumentTopicRepo(db *gorm.DB, baseLog *logger.Logger) DocumentTopicRepo {
	return documents.NewDocumentTopicRepo(db, baseLog)
}

func NewCollectionRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) CollectionRepo {
	return collections.NewCollectionRepo(db, baseLog, c)
}
func NewCollectionEntityRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) CollectionEntityRepo {
	return collections.NewCollectionEntityRepo(db, baseLog, c)
}
func NewCollectionRelationshipRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) CollectionRelationshipRepo {
	return collections.NewCollectionRelationshipRepo(db, baseLog, c)
}
func NewEntityLinkRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) EntityLinkRepo {
	return collections.NewEntityLinkRepo(db, baseLog, c)
}
func NewEntityOperationRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) EntityOperationRepo {
	return collections.NewEntityOperationRepo(db, baseLog, c)
}
func NewDocumentContextRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) DocumentContextRepo {
	return collections.NewDocumentContextRepo(db, baseLog, c)
}
func NewVisibilityProfileRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) VisibilityProfileRepo {
	return collections.NewVisibilityProfileRepo(db, baseLog, c)
}

func NewGraphEntityRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) GraphEntityRepo {
	return graph.NewGraphEntityRepo(db, baseLog, c)
}
func NewGraphRelationshipRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) GraphRelationshipRepo {
	return graph.NewGraphRelationshipRepo(db, baseLog, c)
}

func NewRoleRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) RoleRepo {
	return security.NewRoleRepo(db, baseLog, c)
}
func NewUserRoleRepo(db *gorm.DB, baseLog *logger.Logger) UserRoleRepo {
	return security.NewUserRoleRepo(db, baseLog)
}
func NewRolePermissionRepo(db *gorm.DB, baseLog *logger.Logger) RolePermissionRepo {
	return security.NewRolePermissionRepo(db, baseLog)
}
func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	return security.NewAuditLogRepo(db, baseLog)
}
func NewRateLimitRepo(db *gorm.DB, baseLog *logger.Logger) RateLimitRepo {
	return security.NewRateLimitRepo(db, baseLog)
}
func NewSecurityPolicyRepo(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) SecurityPolicyRepo {
	return security.NewSecurityPolicyRepo(db, baseLog, c)
}

func NewLLMUsageRepo(db *gorm.DB, baseLog *logger.Logger) LLMUsageRepo {
	return usage.NewLLMUsageRepo(db, baseLog)
}
func NewLLMModelPricingRepo(db *gorm.DB, baseLog *logger.Logger) LLMModelPricingRepo {
	return usage.NewLLMModelPricingRepo(db, baseLog)
}

// Repos bundles every repository over one connection and one shared cache.
type Repos struct {
	Organizations OrganizationRepo
	Users         UserRepo
	Tokens        TokenRepo
	Feedback      FeedbackRepo

	Documents        DocumentRepo
	DocumentVersions DocumentVersionRepo
	Summaries        SummaryRepo
	Topics           TopicRepo
	DocumentTopics   DocumentTopicRepo

	Collections             CollectionRepo
	CollectionEntities      CollectionEntityRepo
	CollectionRelationships CollectionRelationshipRepo
	EntityLinks             EntityLinkRepo
	EntityOperations        EntityOperationRepo
	DocumentContexts        DocumentContextRepo
	VisibilityProfiles      VisibilityProfileRepo

	GraphEntities      GraphEntityRepo
	GraphRelationships GraphRelationshipRepo

	Roles            RoleRepo
	UserRoles        UserRoleRepo
	RolePermissions  RolePermissionRepo
	AuditLogs        AuditLogRepo
	RateLimits       RateLimitRepo
	SecurityPolicies SecurityPolicyRepo

	LLMUsage        LLMUsageRepo
	LLMModelPricing LLMModelPricingRepo
}

func New(db *gorm.DB, baseLog *logger.Logger, c *cache.Cache) *Repos {
	return &Repos{
		Organizations: NewOrganizationRepo(db, baseLog, c),
		Users:         NewUserRepo(db, baseLog, c),
		Tokens:        NewTokenRepo(db, baseLog),
		Feedback:      NewFeedbackRepo(db, baseLog, c),

		Documents:        NewDocumentRepo(db, baseLog, c),
		DocumentVersions: NewDocumentVersionRepo(db, baseLog, c),
		Summaries:        NewSummaryRepo(db, baseLog, c),
		Topics:           NewTopicRepo(db, baseLog, c),
		DocumentTopics:   NewDocumentTopicRepo(db, baseLog),

		Collections:             NewCollectionRepo(db, baseLog, c),
		CollectionEntities:      NewCollectionEntityRepo(db, baseLog, c),
		CollectionRelationships: NewCollectionRelationshipRepo(db, baseLog, c),
		EntityLinks:             NewEntityLinkRepo(db, baseLog, c),
		EntityOperations:        NewEntityOperationRepo(db, baseLog, c),
		DocumentContexts:        NewDocumentContextRepo(db, baseLog, c),
		VisibilityProfiles:      NewVisibilityProfileRepo(db, baseLog, c),

		GraphEntities:      NewGraphEntityRepo(db, baseLog, c),
		GraphRelationships: NewGraphRelationshipRepo(db, baseLog, c),

		Roles:            NewRoleRepo(db, baseLog, c),
		UserRoles:        NewUserRoleRepo(db, baseLog),
		RolePermissions:  NewRolePermissionRepo(db, baseLog),
		AuditLogs:        NewAuditLogRepo(db, baseLog),
		RateLimits:       NewRateLimitRepo(db, baseLog),
		SecurityPolicies: NewSecurityPolicyRepo(db, baseLog, c),

		LLMUsage:        NewLLMUsageRepo(db, baseLog),
		LLMModelPricing: NewLLMModelPricingRepo(db, baseLog),
	}
}
