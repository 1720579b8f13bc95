package domain

import (
	"github.com/agentsx-dev/axai-pg/domain/collections"
	"github.com/agentsx-dev/axai-pg/domain/documents"
	"github.com/agentsx-dev/axai-pg/domain/dualid"
	"github.com/agentsx-dev/axai-pg/domain/graph"
	"github.com/agentsx-dev/axai-pg/domain/security"
	"github.com/agentsx-dev/axai-pg/domain/tenant"
	"github.com/agentsx-dev/axai-pg/domain/usage"
)

const ShortIDLength = dualid.ShortIDLength

const (
	DocumentStatusDraft     = documents.StatusDraft
	DocumentStatusPublished = documents.StatusPublished
	DocumentStatusArchived  = documents.StatusArchived
	DocumentStatusDeleted   = documents.StatusDeleted

	ProcessingPending      = documents.ProcessingPending
	ProcessingInProgress   = documents.ProcessingInProgress
	ProcessingComplete     = documents.ProcessingComplete
	ProcessingError        = documents.ProcessingError
	ProcessingFailed       = documents.ProcessingFailed
	ProcessingNotRequested = documents.ProcessingNotRequested

	TokenTypeAccess  = tenant.TokenTypeAccess
	TokenTypeRefresh = tenant.TokenTypeRefresh

	GraphStateUninitialized = collections.GraphStateUninitialized
	GraphStateInitializing  = collections.GraphStateInitializing
	GraphStateSynchronized  = collections.GraphStateSynchronized
	GraphStateOutOfSync     = collections.GraphStateOutOfSync
	GraphStateUpdating      = collections.GraphStateUpdating
	GraphStateError         = collections.GraphStateError

	LifecycleIndividual = collections.LifecycleIndividual
	LifecycleLinked     = collections.LifecycleLinked
	LifecycleMerging    = collections.LifecycleMerging
	LifecycleMerged     = collections.LifecycleMerged
	LifecycleUnmerging  = collections.LifecycleUnmerging
	LifecycleError      = collections.LifecycleError

	ProfileTypeFile       = collections.ProfileTypeFile
	ProfileTypeCollection = collections.ProfileTypeCollection
	ProfileTypeGlobal     = collections.ProfileTypeGlobal

	PermissionRead   = security.PermissionRead
	PermissionCreate = security.PermissionCreate
	PermissionUpdate = security.PermissionUpdate
	PermissionDelete = security.PermissionDelete

	PolicyAccessControl  = security.PolicyAccessControl
	PolicyDataProtection = security.PolicyDataProtection
	PolicyAudit          = security.PolicyAudit
	PolicyRateLimit      = security.PolicyRateLimit

	OperationSummary         = usage.OperationSummary
	OperationGraphExtraction = usage.OperationGraphExtraction
	OperationTextCleaning    = usage.OperationTextCleaning
	OperationEmailAnalysis   = usage.OperationEmailAnalysis
	OperationOther           = usage.OperationOther
)

const (
	SourceFile                = graph.SourceFile
	SourceCollectionGenerated = graph.SourceCollectionGenerated
	SourceDocument            = graph.SourceDocument
)

const (
	OperationCreated         = collections.OperationCreated
	OperationMerged          = collections.OperationMerged
	OperationSplit           = collections.OperationSplit
	OperationDeleted         = collections.OperationDeleted
	OperationUpdated         = collections.OperationUpdated
	OperationUnmerged        = collections.OperationUnmerged
	OperationLink            = collections.OperationLink
	OperationUnlink          = collections.OperationUnlink
	OperationInitializeGraph = collections.OperationInitializeGraph
	OperationSyncGraph       = collections.OperationSyncGraph

	OperationStatusPending    = collections.OperationStatusPending
	OperationStatusInProgress = collections.OperationStatusInProgress
	OperationStatusCompleted  = collections.OperationStatusCompleted
	OperationStatusFailed     = collections.OperationStatusFailed
)

type DualID = dualid.DualID
type SourceType = graph.SourceType
type OperationType = collections.OperationType

type Organization = tenant.Organization
type User = tenant.User
type Token = tenant.Token
type Feedback = tenant.Feedback

type Document = documents.Document
type DocumentVersion = documents.DocumentVersion
type Summary = documents.Summary
type Topic = documents.Topic
type DocumentTopic = documents.DocumentTopic

type Collection = collections.Collection
type DocumentCollection = collections.DocumentCollection
type CollectionEntity = collections.CollectionEntity
type CollectionRelationship = collections.CollectionRelationship
type CollectionEntitySource = collections.CollectionEntitySource
type CollectionRelationshipSource = collections.CollectionRelationshipSource
type EntityLink = collections.EntityLink
type EntityOperation = collections.EntityOperation
type DocumentCollectionContext = collections.DocumentCollectionContext
type VisibilityProfile = collections.VisibilityProfile

type GraphEntity = graph.GraphEntity
type GraphRelationship = graph.GraphRelationship

type Role = security.Role
type UserRole = security.UserRole
type RolePermission = security.RolePermission
type AuditLog = security.AuditLog
type RateLimit = security.RateLimit
type SecurityPolicy = security.SecurityPolicy

type LLMUsage = usage.LLMUsage
type LLMModelPricing = usage.LLMModelPricing

// AllModels lists every model in FK dependency order, parents before
// children. Migration walks it forward and teardown walks it backward.
func AllModels() []any {
	return []any{
		&Organization{},
		&User{},
		&Token{},
		&Feedback{},
		&Document{},
		&DocumentVersion{},
		&Summary{},
		&Topic{},
		&DocumentTopic{},
		&Collection{},
		&DocumentCollection{},
		&CollectionEntity{},
		&CollectionRelationship{},
		&CollectionEntitySource{},
		&CollectionRelationshipSource{},
		&EntityLink{},
		&EntityOperation{},
		&DocumentCollectionContext{},
		&VisibilityProfile{},
		&GraphEntity{},
		&GraphRelationship{},
		&Role{},
		&UserRole{},
		&RolePermission{},
		&AuditLog{},
		&RateLimit{},
		&SecurityPolicy{},
		&LLMUsage{},
		&LLMModelPricing{},
	}
}
