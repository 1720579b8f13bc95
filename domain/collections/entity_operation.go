package collections

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agentsx-dev/axai-pg/domain/dualid"
	"github.com/agentsx-dev/axai-pg/domain/tenant"
)

// OperationType classifies entity-management operations.
type OperationType string

const (
	OperationCreated         OperationType = "created"
	OperationMerged          OperationType = "merged"
	OperationSplit           OperationType = "split"
	OperationDeleted         OperationType = "deleted"
	OperationUpdated         OperationType = "updated"
	OperationUnmerged        OperationType = "unmerged"
	OperationLink            OperationType = "link"
	OperationUnlink          OperationType = "unlink"
	OperationInitializeGraph OperationType = "initialize_graph"
	OperationSyncGraph       OperationType = "sync_graph"
)

// Entity operation statuses.
const (
	OperationStatusPending    = "pending"
	OperationStatusInProgress = "in_progress"
	OperationStatusCompleted  = "completed"
	OperationStatusFailed     = "failed"
)

// EntityOperation is the audit trail of merges, splits and edits performed
// on entities within a collection. EntityID is nil for collection-level
// operations such as graph initialization and sync.
type EntityOperation struct {
	dualid.DualID

	CollectionUUID uuid.UUID   `gorm:"type:uuid;not null;column:collection_uuid;index:idx_entity_operations_collection_uuid" json:"collection_uuid"`
	Collection     *Collection `gorm:"foreignKey:CollectionUUID;references:UUID" json:"collection,omitempty"`

	OperationType OperationType `gorm:"type:varchar(20);not null;column:operation_type;check:entity_operations_valid_type,operation_type IN ('created','merged','split','deleted','updated','unmerged','link','unlink','initialize_graph','sync_graph')" json:"operation_type"`
	EntityID      *string       `gorm:"type:text;column:entity_id;index:idx_entity_operations_entity_id" json:"entity_id,omitempty"`

	Description *string        `gorm:"type:text;column:description" json:"description,omitempty"`
	Details     datatypes.JSON `gorm:"type:jsonb;column:details" json:"details,omitempty"`

	PerformedByUUID *uuid.UUID   `gorm:"type:uuid;column:performed_by_uuid" json:"performed_by_uuid,omitempty"`
	PerformedBy     *tenant.User `gorm:"foreignKey:PerformedByUUID;references:UUID" json:"performed_by,omitempty"`

	EntityIDs     datatypes.JSON `gorm:"type:jsonb;column:entity_ids" json:"entity_ids,omitempty"`
	OperationData datatypes.JSON `gorm:"type:jsonb;column:operation_data" json:"operation_data,omitempty"`
	Status        string         `gorm:"type:varchar(20);default:'pending';column:status;index:idx_entity_operations_status;check:entity_operations_valid_status,status IN ('pending','in_progress','completed','failed')" json:"status"`

	PerformedAt time.Time `gorm:"not null;default:now();column:performed_at;index:idx_entity_operations_performed_at" json:"performed_at"`
}

func (EntityOperation) TableName() string { return "entity_operations" }
