package base

import (
	"testing"

	types "github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/domain/dualid"
)

func TestToDisplayHidesUUID(t *testing.T) {
	org := &types.Organization{DualID: dualid.New(), Name: "acme"}

	out := ToDisplay(org, false)
	if _, ok := out["uuid"]; ok {
		t.Fatalf("uuid leaked into display map: %v", out)
	}
	if out["id"] != org.ShortID {
		t.Fatalf("expected id %q, got %v", org.ShortID, out["id"])
	}
	if out["name"] != "acme" {
		t.Fatalf("expected name acme, got %v", out["name"])
	}
}

func TestToDisplayIncludeUUID(t *testing.T) {
	org := &types.Organization{DualID: dualid.New(), Name: "acme"}

	out := ToDisplay(org, true)
	if out["uuid"] != org.UUID {
		t.Fatalf("expected uuid %s, got %v", org.UUID, out["uuid"])
	}
}

func TestToDisplaySkipsHiddenAndNilFields(t *testing.T) {
	u := &types.User{DualID: dualid.New(), Username: "anna", Email: "anna@example.com", PasswordHash: "secret"}

	out := ToDisplay(u, false)
	for k, v := range out {
		if v == "secret" {
			t.Fatalf("password hash leaked under key %q", k)
		}
	}
	// org_uuid is a nil pointer with omitempty and must be absent.
	if _, ok := out["org_uuid"]; ok {
		t.Fatalf("nil org_uuid present in display map")
	}
	if out["username"] != "anna" {
		t.Fatalf("expected username anna, got %v", out["username"])
	}
}

func TestToDisplayNilInput(t *testing.T) {
	var u *types.User
	out := ToDisplay(u, false)
	if len(out) != 0 {
		t.Fatalf("expected empty map for nil input, got %v", out)
	}
}
