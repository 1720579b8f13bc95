package tenant

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

func TestOrganizationRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewOrganizationRepo(db, testutil.Logger(t), nil)

	created, err := repo.Create(dbc, []*types.Organization{{Name: "acme"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 org, got %d", len(created))
	}
	org := created[0]
	if org.ShortID == "" || len(org.ShortID) != 8 {
		t.Fatalf("Create: short id not generated: %q", org.ShortID)
	}

	got, err := repo.GetByUUID(dbc, org.UUID)
	if err != nil {
		t.Fatalf("GetByUUID: %v", err)
	}
	if got.Name != "acme" {
		t.Fatalf("GetByUUID: unexpected org: %+v", got)
	}

	got, err = repo.GetByShortID(dbc, org.ShortID)
	if err != nil {
		t.Fatalf("GetByShortID: %v", err)
	}
	if got.UUID != org.UUID {
		t.Fatalf("GetByShortID: resolved wrong row: %+v", got)
	}

	// Both identifier shapes resolve through GetByAnyID.
	if _, err := repo.GetByAnyID(dbc, org.UUID.String()); err != nil {
		t.Fatalf("GetByAnyID(uuid): %v", err)
	}
	if _, err := repo.GetByAnyID(dbc, org.ShortID); err != nil {
		t.Fatalf("GetByAnyID(short): %v", err)
	}
	if _, err := repo.GetByAnyID(dbc, "!!bogus!!"); !errors.Is(err, dberr.ErrNotFound) {
		t.Fatalf("GetByAnyID(bogus): expected ErrNotFound, got %v", err)
	}

	gotByName, err := repo.GetByName(dbc, "acme")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if gotByName.UUID != org.UUID {
		t.Fatalf("GetByName: resolved wrong row")
	}

	updated, err := repo.Update(dbc, org.UUID, map[string]any{"name": "acme corp"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "acme corp" {
		t.Fatalf("Update: name not applied: %+v", updated)
	}
	if updated.UUID != org.UUID || updated.ShortID != org.ShortID {
		t.Fatalf("Update: identifiers changed")
	}

	// Identifier fields are stripped from update maps.
	kept, err := repo.Update(dbc, org.UUID, map[string]any{"id": "zzzzzzzz", "name": "acme v3"})
	if err != nil {
		t.Fatalf("Update (identifier strip): %v", err)
	}
	if kept.ShortID != org.ShortID {
		t.Fatalf("Update rewrote short id: %q", kept.ShortID)
	}

	if err := repo.Delete(dbc, org.UUID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByUUID(dbc, org.UUID); !errors.Is(err, dberr.ErrNotFound) {
		t.Fatalf("GetByUUID after delete: expected ErrNotFound, got %v", err)
	}

	// Tenant names are unique; a second org with the same name is a conflict.
	if _, err := repo.Create(dbc, []*types.Organization{{Name: "dup-tenant"}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err = repo.Create(dbc, []*types.Organization{{Name: "dup-tenant"}})
	if !errors.Is(err, dberr.ErrConflict) {
		t.Fatalf("duplicate org name: expected ErrConflict, got %v", err)
	}
}

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewUserRepo(db, testutil.Logger(t), nil)
	org := testutil.SeedOrganization(t, ctx, tx, "user-repo-org")

	created, err := repo.Create(dbc, []*types.User{{
		Username:     "anna",
		Email:        "anna@example.com",
		PasswordHash: "x",
		OrgUUID:      &org.UUID,
	}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	u := created[0]

	byUsername, err := repo.GetByUsername(dbc, "anna")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if byUsername.UUID != u.UUID {
		t.Fatalf("GetByUsername: resolved wrong row")
	}

	byEmail, err := repo.GetByEmail(dbc, "anna@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.UUID != u.UUID {
		t.Fatalf("GetByEmail: resolved wrong row")
	}

	inOrg, err := repo.GetByOrgID(dbc, org.UUID)
	if err != nil {
		t.Fatalf("GetByOrgID: %v", err)
	}
	if len(inOrg) != 1 || inOrg[0].UUID != u.UUID {
		t.Fatalf("GetByOrgID: unexpected result: %+v", inOrg)
	}

	if err := repo.SetPassword(dbc, u.UUID, "s3cret"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	ok, err := repo.CheckPassword(dbc, u.UUID, "s3cret")
	if err != nil {
		t.Fatalf("CheckPassword: %v", err)
	}
	if !ok {
		t.Fatalf("CheckPassword: expected match")
	}
	ok, err = repo.CheckPassword(dbc, u.UUID, "wrong")
	if err != nil {
		t.Fatalf("CheckPassword (wrong): %v", err)
	}
	if ok {
		t.Fatalf("CheckPassword: accepted wrong password")
	}

	if err := repo.RecordLogin(dbc, u.UUID); err != nil {
		t.Fatalf("RecordLogin: %v", err)
	}
	after, err := repo.GetByUUID(dbc, u.UUID)
	if err != nil {
		t.Fatalf("GetByUUID: %v", err)
	}
	if after.LastLoginAt == nil {
		t.Fatalf("RecordLogin: last_login_at not set")
	}

	// Duplicate usernames are rejected as conflicts.
	_, err = repo.Create(dbc, []*types.User{{
		Username:     "anna",
		Email:        "other@example.com",
		PasswordHash: "x",
	}})
	if !errors.Is(err, dberr.ErrConflict) {
		t.Fatalf("duplicate username: expected ErrConflict, got %v", err)
	}
}

func TestTokenRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewTokenRepo(db, testutil.Logger(t))
	u := testutil.SeedUser(t, ctx, tx, "tokenowner", nil)

	created, err := repo.Create(dbc, []*types.Token{{
		TokenID:   "jti-1",
		UserUUID:  u.UUID,
		TokenType: types.TokenTypeAccess,
		ExpiresAt: testutil.PtrTime(time.Now().Add(time.Hour)),
	}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 token, got %d", len(created))
	}

	got, err := repo.GetByTokenID(dbc, "jti-1")
	if err != nil {
		t.Fatalf("GetByTokenID: %v", err)
	}
	if got.UserUUID != u.UUID {
		t.Fatalf("GetByTokenID: wrong owner")
	}

	active, err := repo.GetActiveByUser(dbc, u.UUID)
	if err != nil {
		t.Fatalf("GetActiveByUser: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("GetActiveByUser: expected 1, got %d", len(active))
	}

	if err := repo.Revoke(dbc, "jti-1"); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	active, err = repo.GetActiveByUser(dbc, u.UUID)
	if err != nil {
		t.Fatalf("GetActiveByUser after revoke: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("GetActiveByUser: revoked token still active")
	}
	if err := repo.Revoke(dbc, "jti-missing"); !errors.Is(err, dberr.ErrNotFound) {
		t.Fatalf("Revoke (missing): expected ErrNotFound, got %v", err)
	}

	// Expired tokens are purged by cutoff.
	_, err = repo.Create(dbc, []*types.Token{{
		TokenID:   "jti-2",
		UserUUID:  u.UUID,
		TokenType: types.TokenTypeRefresh,
		ExpiresAt: testutil.PtrTime(time.Now().Add(-time.Hour)),
	}})
	if err != nil {
		t.Fatalf("Create expired: %v", err)
	}
	n, err := repo.DeleteExpired(dbc, time.Now())
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if n != 1 {
		t.Fatalf("DeleteExpired: expected 1, got %d", n)
	}
}
