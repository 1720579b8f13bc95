package dualid

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestShortFrom(t *testing.T) {
	u := uuid.MustParse("123e4567-e89b-12d3-a456-426614174000")
	got := ShortFrom(u)
	if got != "14174000" {
		t.Fatalf("ShortFrom: expected 14174000, got %q", got)
	}
	if len(got) != ShortIDLength {
		t.Fatalf("ShortFrom: expected length %d, got %d", ShortIDLength, len(got))
	}
}

func TestNew(t *testing.T) {
	d := New()
	if d.UUID == uuid.Nil {
		t.Fatalf("New: uuid not populated")
	}
	if d.ShortID != ShortFrom(d.UUID) {
		t.Fatalf("New: short id %q does not match uuid %s", d.ShortID, d.UUID)
	}
}

func TestBeforeCreate(t *testing.T) {
	var d DualID
	if err := d.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate: %v", err)
	}
	if d.UUID == uuid.Nil || d.ShortID == "" {
		t.Fatalf("BeforeCreate: identifiers not populated: %+v", d)
	}

	// Pre-set identifiers must never be rewritten.
	u := uuid.New()
	pre := DualID{UUID: u, ShortID: "deadbeef"}
	if err := pre.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate (pre-set): %v", err)
	}
	if pre.UUID != u || pre.ShortID != "deadbeef" {
		t.Fatalf("BeforeCreate rewrote identifiers: %+v", pre)
	}
}

func TestIsShortID(t *testing.T) {
	valid := []string{"14174000", "deadbeef", "00000000"}
	for _, s := range valid {
		if !IsShortID(s) {
			t.Fatalf("IsShortID(%q): expected true", s)
		}
	}
	invalid := []string{"", "1417400", "141740000", "DEADBEEF", "1417400g", strings.Repeat("a", 36)}
	for _, s := range invalid {
		if IsShortID(s) {
			t.Fatalf("IsShortID(%q): expected false", s)
		}
	}
	// A full uuid is not a short id.
	if IsShortID(uuid.New().String()) {
		t.Fatalf("IsShortID accepted a full uuid")
	}
}

func TestParseUUID(t *testing.T) {
	u := uuid.New()
	got, ok := ParseUUID(u.String())
	if !ok || got != u {
		t.Fatalf("ParseUUID round-trip failed: %v %v", got, ok)
	}
	if _, ok := ParseUUID("14174000"); ok {
		t.Fatalf("ParseUUID accepted a short id")
	}
	if _, ok := ParseUUID("not-a-uuid"); ok {
		t.Fatalf("ParseUUID accepted garbage")
	}
}
