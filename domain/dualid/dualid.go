package dualid

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShortIDLength is the width of the display identifier.
const ShortIDLength = 8

// DualID is embedded by every identifier-bearing model. The uuid column is
// the primary key used for all foreign keys and joins; the id column is an
// 8-character display identifier derived from the uuid. Both values are
// generated together in BeforeCreate so a row never exists with only one of
// them populated, and neither is ever rewritten afterwards.
type DualID struct {
	UUID    uuid.UUID `gorm:"type:uuid;column:uuid;primaryKey" json:"uuid"`
	ShortID string    `gorm:"type:varchar(8);column:id;uniqueIndex;not null" json:"id"`
}

// BeforeCreate fills in any missing identifier. Models embedding DualID
// inherit this hook through promotion.
func (d *DualID) BeforeCreate(tx *gorm.DB) error {
	if d.UUID == uuid.Nil {
		d.UUID = uuid.New()
	}
	if d.ShortID == "" {
		d.ShortID = ShortFrom(d.UUID)
	}
	return nil
}

// Identifiers returns the canonical and display identifiers. The value
// receiver promotes it to both embedding structs and their pointers.
func (d DualID) Identifiers() (uuid.UUID, string) {
	return d.UUID, d.ShortID
}

// ShortFrom derives the display identifier: the last 8 characters of the
// uuid's canonical string form with dashes removed.
func ShortFrom(u uuid.UUID) string {
	s := strings.ReplaceAll(u.String(), "-", "")
	return s[len(s)-ShortIDLength:]
}

// New returns a freshly generated identifier pair.
func New() DualID {
	u := uuid.New()
	return DualID{UUID: u, ShortID: ShortFrom(u)}
}

// IsShortID reports whether s has the shape of a display identifier:
// exactly 8 lowercase hex characters.
func IsShortID(s string) bool {
	if len(s) != ShortIDLength {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}

// ParseUUID reports whether s parses as a canonical uuid.
func ParseUUID(s string) (uuid.UUID, bool) {
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return u, true
}
