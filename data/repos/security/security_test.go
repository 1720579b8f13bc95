package security

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agentsx-dev/axai-pg/data/repos/testutil"
	types "github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/pkg/dbctx"
	"github.com/agentsx-dev/axai-pg/pkg/dberr"
)

func TestRoleAssignment(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	roles := NewRoleRepo(db, testutil.Logger(t), nil)
	userRoles := NewUserRoleRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "roleuser", nil)
	role := testutil.SeedRole(t, ctx, tx, "editor")

	byName, err := roles.GetByName(dbc, "editor")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if byName.UUID != role.UUID {
		t.Fatalf("GetByName: resolved wrong role")
	}

	assigned, err := userRoles.Assign(dbc, u.UUID, role.UUID, nil)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if assigned.RoleName == nil || *assigned.RoleName != "editor" {
		t.Fatalf("Assign: role name not mirrored: %+v", assigned)
	}

	// Re-assigning is a no-op returning the existing row.
	again, err := userRoles.Assign(dbc, u.UUID, role.UUID, nil)
	if err != nil {
		t.Fatalf("Assign (repeat): %v", err)
	}
	if again.UUID != assigned.UUID {
		t.Fatalf("Assign (repeat): created a second row")
	}

	has, err := userRoles.HasRole(dbc, u.UUID, "editor")
	if err != nil {
		t.Fatalf("HasRole: %v", err)
	}
	if !has {
		t.Fatalf("HasRole: expected true")
	}
	has, err = userRoles.HasRole(dbc, u.UUID, "admin")
	if err != nil {
		t.Fatalf("HasRole (absent): %v", err)
	}
	if has {
		t.Fatalf("HasRole: expected false for unassigned role")
	}

	if err := userRoles.Revoke(dbc, u.UUID, role.UUID); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if err := userRoles.Revoke(dbc, u.UUID, role.UUID); !errors.Is(err, dberr.ErrNotFound) {
		t.Fatalf("Revoke (repeat): expected ErrNotFound, got %v", err)
	}
}

func TestRolePermissions(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewRolePermissionRepo(db, testutil.Logger(t))

	if _, err := repo.Grant(dbc, "editor", "documents", "write"); !errors.Is(err, dberr.ErrValidation) {
		t.Fatalf("Grant (bad type): expected ErrValidation, got %v", err)
	}

	granted, err := repo.Grant(dbc, "editor", "documents", types.PermissionUpdate)
	if err != nil {
		t.Fatalf("Grant: %v", err)
	}
	// Granting the same triple twice keeps one row.
	again, err := repo.Grant(dbc, "editor", "documents", types.PermissionUpdate)
	if err != nil {
		t.Fatalf("Grant (repeat): %v", err)
	}
	if again.UUID != granted.UUID {
		t.Fatalf("Grant (repeat): created a second row")
	}

	has, err := repo.HasPermission(dbc, "editor", "documents", types.PermissionUpdate)
	if err != nil {
		t.Fatalf("HasPermission: %v", err)
	}
	if !has {
		t.Fatalf("HasPermission: expected true")
	}
	has, err = repo.HasPermission(dbc, "editor", "documents", types.PermissionDelete)
	if err != nil {
		t.Fatalf("HasPermission (absent): %v", err)
	}
	if has {
		t.Fatalf("HasPermission: expected false for ungranted permission")
	}

	all, err := repo.GetByRoleName(dbc, "editor")
	if err != nil {
		t.Fatalf("GetByRoleName: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("GetByRoleName: expected 1, got %d", len(all))
	}

	if err := repo.Revoke(dbc, "editor", "documents", types.PermissionUpdate); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if err := repo.Revoke(dbc, "editor", "documents", types.PermissionUpdate); !errors.Is(err, dberr.ErrNotFound) {
		t.Fatalf("Revoke (repeat): expected ErrNotFound, got %v", err)
	}
}

func TestAuditLogRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewAuditLogRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, ctx, tx, "audituser", nil)
	doc := testutil.SeedDocument(t, ctx, tx, u.UUID, nil, "audited")

	if _, err := repo.Record(dbc, &types.AuditLog{Username: "audituser"}); !errors.Is(err, dberr.ErrValidation) {
		t.Fatalf("Record (no action): expected ErrValidation, got %v", err)
	}

	resourceType := "document"
	entry, err := repo.Record(dbc, &types.AuditLog{
		UserUUID:     &u.UUID,
		Username:     "audituser",
		Action:       "document.update",
		ResourceType: &resourceType,
		ResourceUUID: &doc.UUID,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if entry.ActionTime.IsZero() {
		t.Fatalf("Record: action_time not defaulted")
	}

	byUser, err := repo.GetByUserID(dbc, u.UUID, 0)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(byUser) != 1 {
		t.Fatalf("GetByUserID: expected 1, got %d", len(byUser))
	}

	byResource, err := repo.GetByResource(dbc, "document", doc.UUID)
	if err != nil {
		t.Fatalf("GetByResource: %v", err)
	}
	if len(byResource) != 1 || byResource[0].Action != "document.update" {
		t.Fatalf("GetByResource: unexpected result: %+v", byResource)
	}

	since, err := repo.GetSince(dbc, time.Now().Add(-time.Minute), 0)
	if err != nil {
		t.Fatalf("GetSince: %v", err)
	}
	if len(since) != 1 {
		t.Fatalf("GetSince: expected 1, got %d", len(since))
	}
}

func TestRateLimitRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewRateLimitRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, ctx, tx, "limituser", nil)

	window := time.Now().UTC().Truncate(time.Minute)
	for want := 1; want <= 3; want++ {
		n, err := repo.Increment(dbc, u.UUID, "upload", window)
		if err != nil {
			t.Fatalf("Increment #%d: %v", want, err)
		}
		if n != want {
			t.Fatalf("Increment #%d: expected %d, got %d", want, want, n)
		}
	}

	// A different window counts separately.
	next := window.Add(time.Minute)
	n, err := repo.Increment(dbc, u.UUID, "upload", next)
	if err != nil {
		t.Fatalf("Increment (new window): %v", err)
	}
	if n != 1 {
		t.Fatalf("Increment (new window): expected 1, got %d", n)
	}

	row, err := repo.GetWindow(dbc, u.UUID, "upload", window)
	if err != nil {
		t.Fatalf("GetWindow: %v", err)
	}
	if row.Count != 3 {
		t.Fatalf("GetWindow: expected count 3, got %d", row.Count)
	}

	deleted, err := repo.DeleteBefore(dbc, next)
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("DeleteBefore: expected 1, got %d", deleted)
	}
}

func TestSecurityPolicyRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewSecurityPolicyRepo(db, testutil.Logger(t), nil)

	created, err := repo.Create(dbc, []*types.SecurityPolicy{{
		Name:       "audit-everything",
		PolicyType: types.PolicyAudit,
		PolicyData: []byte(`{"level":"full"}`),
	}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	byName, err := repo.GetByName(dbc, "audit-everything")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if byName.UUID != created[0].UUID {
		t.Fatalf("GetByName: resolved wrong row")
	}

	byType, err := repo.GetByType(dbc, types.PolicyAudit, true)
	if err != nil {
		t.Fatalf("GetByType: %v", err)
	}
	if len(byType) != 1 {
		t.Fatalf("GetByType: expected 1, got %d", len(byType))
	}

	if _, err := repo.Update(dbc, created[0].UUID, map[string]any{"is_active": false}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	byType, err = repo.GetByType(dbc, types.PolicyAudit, true)
	if err != nil {
		t.Fatalf("GetByType after deactivate: %v", err)
	}
	if len(byType) != 0 {
		t.Fatalf("inactive policy still returned: %+v", byType)
	}
}
