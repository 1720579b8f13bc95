package collections

import (
	"time"

	"github.com/google/uuid"
)

// DocumentCollection is the membership junction between documents and
// collections. Composite primary key, append-only: membership changes are
// row inserts or deletes, never updates.
type DocumentCollection struct {
	FileUUID       uuid.UUID `gorm:"type:uuid;primaryKey;column:file_id" json:"file_id"`
	CollectionUUID uuid.UUID `gorm:"type:uuid;primaryKey;column:collection_id" json:"collection_id"`
	AddedAt        time.Time `gorm:"not null;default:now();column:added_at" json:"added_at"`
}

func (DocumentCollection) TableName() string { return "file_collection_association" }
