package collections

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/agentsx-dev/axai-pg/domain/documents"
	"github.com/agentsx-dev/axai-pg/domain/dualid"
	"github.com/agentsx-dev/axai-pg/domain/tenant"
)

// Visibility profile scopes. FILE profiles reference a document, COLLECTION
// profiles a collection, GLOBAL profiles neither.
const (
	ProfileTypeFile       = "FILE"
	ProfileTypeCollection = "COLLECTION"
	ProfileTypeGlobal     = "GLOBAL"
)

// VisibilityProfile configures which entities and relationships are visible
// in a graph view. The profile_type discriminator determines which of the
// two scope keys is populated: exactly one for FILE/COLLECTION, neither for
// GLOBAL.
type VisibilityProfile struct {
	dualid.DualID

	Name        string  `gorm:"type:text;not null;column:name;check:visibility_profiles_name_not_empty,length(trim(name)) > 0" json:"name"`
	Description *string `gorm:"type:text;column:description" json:"description,omitempty"`

	OwnerUUID uuid.UUID    `gorm:"type:uuid;not null;column:owner_uuid;index:idx_visibility_profiles_owner_uuid" json:"owner_uuid"`
	Owner     *tenant.User `gorm:"foreignKey:OwnerUUID;references:UUID" json:"owner,omitempty"`

	FileUUID       *uuid.UUID          `gorm:"type:uuid;column:file_uuid;index:idx_visibility_profiles_file_uuid" json:"file_uuid,omitempty"`
	File           *documents.Document `gorm:"foreignKey:FileUUID;references:UUID" json:"file,omitempty"`
	CollectionUUID *uuid.UUID          `gorm:"type:uuid;column:collection_uuid;index:idx_visibility_profiles_collection_uuid" json:"collection_uuid,omitempty"`
	Collection     *Collection         `gorm:"foreignKey:CollectionUUID;references:UUID" json:"collection,omitempty"`
	VersionID      *string             `gorm:"type:text;column:version_id" json:"version_id,omitempty"`

	ProfileType string `gorm:"type:varchar(20);not null;column:profile_type;check:visibility_profiles_valid_profile_type,profile_type IN ('FILE','COLLECTION','GLOBAL');check:visibility_profiles_valid_scope,(profile_type = 'FILE' AND file_uuid IS NOT NULL AND collection_uuid IS NULL) OR (profile_type = 'COLLECTION' AND collection_uuid IS NOT NULL AND file_uuid IS NULL) OR (profile_type = 'GLOBAL' AND file_uuid IS NULL AND collection_uuid IS NULL)" json:"profile_type"`

	VisibleEntityTypes       datatypes.JSON `gorm:"type:jsonb;column:visible_entity_types" json:"visible_entity_types,omitempty"`
	VisibleRelationshipTypes datatypes.JSON `gorm:"type:jsonb;column:visible_relationship_types" json:"visible_relationship_types,omitempty"`
	HiddenEntities           datatypes.JSON `gorm:"type:jsonb;column:hidden_entities" json:"hidden_entities,omitempty"`
	HiddenRelationships      datatypes.JSON `gorm:"type:jsonb;column:hidden_relationships" json:"hidden_relationships,omitempty"`

	AllEntities          datatypes.JSON `gorm:"type:jsonb;column:all_entities" json:"all_entities,omitempty"`
	EnabledEntities      datatypes.JSON `gorm:"type:jsonb;column:enabled_entities" json:"enabled_entities,omitempty"`
	AllRelationships     datatypes.JSON `gorm:"type:jsonb;column:all_relationships" json:"all_relationships,omitempty"`
	EnabledRelationships datatypes.JSON `gorm:"type:jsonb;column:enabled_relationships" json:"enabled_relationships,omitempty"`

	AutoIncludeNew bool `gorm:"not null;default:true;column:auto_include_new" json:"auto_include_new"`
	IsActive       bool `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"not null;default:now();column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now();column:updated_at" json:"updated_at"`
}

func (VisibilityProfile) TableName() string { return "visibility_profiles" }

// ValidateScope checks the profile_type/scope-key agreement the table check
// constraint also enforces, so callers get a clean validation error before a
// write is attempted.
func (p *VisibilityProfile) ValidateScope() error {
	switch p.ProfileType {
	case ProfileTypeFile:
		if p.FileUUID == nil || p.CollectionUUID != nil {
			return fmt.Errorf("FILE profile requires file_uuid and no collection_uuid")
		}
	case ProfileTypeCollection:
		if p.CollectionUUID == nil || p.FileUUID != nil {
			return fmt.Errorf("COLLECTION profile requires collection_uuid and no file_uuid")
		}
	case ProfileTypeGlobal:
		if p.FileUUID != nil || p.CollectionUUID != nil {
			return fmt.Errorf("GLOBAL profile must not reference a file or collection")
		}
	default:
		return fmt.Errorf("unknown profile_type %q", p.ProfileType)
	}
	return nil
}
