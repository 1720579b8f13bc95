package collections

import (
	"context"
	"errors"
	"testing"

	"github.com/agentsx-dev/axai-pg/data/repos/testutil"
	types "github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/pkg/dbctx"
	"github.com/agentsx-dev/axai-pg/pkg/dberr"
)

func TestCollectionRepoMembership(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewCollectionRepo(db, testutil.Logger(t), nil)
	owner := testutil.SeedUser(t, ctx, tx, "collowner", nil)
	coll := testutil.SeedCollection(t, ctx, tx, owner.UUID, nil, "research")
	doc := testutil.SeedDocument(t, ctx, tx, owner.UUID, nil, "paper")

	if err := repo.AddDocument(dbc, coll.UUID, doc.UUID); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	got, err := repo.GetByUUID(dbc, coll.UUID)
	if err != nil {
		t.Fatalf("GetByUUID: %v", err)
	}
	if got.DocumentCount != 1 {
		t.Fatalf("document_count not bumped: %d", got.DocumentCount)
	}

	// Adding the same document again is a no-op and does not double count.
	if err := repo.AddDocument(dbc, coll.UUID, doc.UUID); err != nil {
		t.Fatalf("AddDocument (dup): %v", err)
	}
	got, err = repo.GetByUUID(dbc, coll.UUID)
	if err != nil {
		t.Fatalf("GetByUUID: %v", err)
	}
	if got.DocumentCount != 1 {
		t.Fatalf("duplicate add changed document_count: %d", got.DocumentCount)
	}

	docs, err := repo.GetDocuments(dbc, coll.UUID)
	if err != nil {
		t.Fatalf("GetDocuments: %v", err)
	}
	if len(docs) != 1 || docs[0].UUID != doc.UUID {
		t.Fatalf("GetDocuments: unexpected result: %+v", docs)
	}

	colls, err := repo.GetCollectionsForDocument(dbc, doc.UUID)
	if err != nil {
		t.Fatalf("GetCollectionsForDocument: %v", err)
	}
	if len(colls) != 1 || colls[0].UUID != coll.UUID {
		t.Fatalf("GetCollectionsForDocument: unexpected result: %+v", colls)
	}

	if err := repo.RemoveDocument(dbc, coll.UUID, doc.UUID); err != nil {
		t.Fatalf("RemoveDocument: %v", err)
	}
	got, err = repo.GetByUUID(dbc, coll.UUID)
	if err != nil {
		t.Fatalf("GetByUUID: %v", err)
	}
	if got.DocumentCount != 0 {
		t.Fatalf("document_count not decremented: %d", got.DocumentCount)
	}
	if err := repo.RemoveDocument(dbc, coll.UUID, doc.UUID); !errors.Is(err, dberr.ErrNotFound) {
		t.Fatalf("RemoveDocument (absent): expected ErrNotFound, got %v", err)
	}
}

func TestCollectionRepoDeleteSubtree(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewCollectionRepo(db, testutil.Logger(t), nil)
	owner := testutil.SeedUser(t, ctx, tx, "treeowner", nil)

	root := testutil.SeedCollection(t, ctx, tx, owner.UUID, nil, "root")
	child := &types.Collection{Name: "child", OwnerUUID: owner.UUID, ParentUUID: &root.UUID}
	if err := tx.WithContext(ctx).Create(child).Error; err != nil {
		t.Fatalf("seed child: %v", err)
	}
	grandchild := &types.Collection{Name: "grandchild", OwnerUUID: owner.UUID, ParentUUID: &child.UUID}
	if err := tx.WithContext(ctx).Create(grandchild).Error; err != nil {
		t.Fatalf("seed grandchild: %v", err)
	}
	sibling := testutil.SeedCollection(t, ctx, tx, owner.UUID, nil, "sibling")

	n, err := repo.DeleteSubtree(dbc, root.UUID)
	if err != nil {
		t.Fatalf("DeleteSubtree: %v", err)
	}
	if n != 3 {
		t.Fatalf("DeleteSubtree: expected 3 rows, got %d", n)
	}

	for _, id := range []string{root.UUID.String(), child.UUID.String(), grandchild.UUID.String()} {
		got, err := repo.GetByAnyID(dbc, id)
		if err != nil {
			t.Fatalf("GetByAnyID(%s): %v", id, err)
		}
		if !got.IsDeleted {
			t.Fatalf("collection %s not soft-deleted", id)
		}
	}
	untouched, err := repo.GetByUUID(dbc, sibling.UUID)
	if err != nil {
		t.Fatalf("GetByUUID(sibling): %v", err)
	}
	if untouched.IsDeleted {
		t.Fatalf("sibling outside the subtree was deleted")
	}

	// A second pass finds nothing left to delete.
	if _, err := repo.DeleteSubtree(dbc, root.UUID); !errors.Is(err, dberr.ErrNotFound) {
		t.Fatalf("DeleteSubtree (repeat): expected ErrNotFound, got %v", err)
	}
}

func TestCollectionEntityProvenance(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewCollectionEntityRepo(db, testutil.Logger(t), nil)
	owner := testutil.SeedUser(t, ctx, tx, "provowner", nil)
	coll := testutil.SeedCollection(t, ctx, tx, owner.UUID, nil, "merged-view")
	doc := testutil.SeedDocument(t, ctx, tx, owner.UUID, nil, "source-doc")
	source := testutil.SeedGraphEntity(t, ctx, tx, doc.UUID, "acme-corp", "Acme Corp")

	created, err := repo.Create(dbc, []*types.CollectionEntity{{
		CollectionUUID: coll.UUID,
		EntityID:       "acme-corp",
		EntityType:     "organization",
		Name:           "Acme Corp",
	}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	ce := created[0]

	if err := repo.AddSource(dbc, ce.UUID, source.UUID); err != nil {
		t.Fatalf("AddSource: %v", err)
	}
	// Idempotent.
	if err := repo.AddSource(dbc, ce.UUID, source.UUID); err != nil {
		t.Fatalf("AddSource (dup): %v", err)
	}
	sources, err := repo.GetSources(dbc, ce.UUID)
	if err != nil {
		t.Fatalf("GetSources: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("GetSources: expected 1, got %d", len(sources))
	}
	// The junction resolves back to the original document-scope entity.
	if sources[0].UUID != source.UUID || sources[0].Name != "Acme Corp" {
		t.Fatalf("GetSources: wrong source row: %+v", sources[0])
	}

	if err := repo.SetLifecycleState(dbc, ce.UUID, types.LifecycleMerged, nil); err != nil {
		t.Fatalf("SetLifecycleState: %v", err)
	}
	after, err := repo.GetByUUID(dbc, ce.UUID)
	if err != nil {
		t.Fatalf("GetByUUID: %v", err)
	}
	if after.LifecycleState != types.LifecycleMerged || !after.IsMerged {
		t.Fatalf("lifecycle transition not applied: %+v", after)
	}

	if err := repo.RemoveSource(dbc, ce.UUID, source.UUID); err != nil {
		t.Fatalf("RemoveSource: %v", err)
	}
	if err := repo.RemoveSource(dbc, ce.UUID, source.UUID); !errors.Is(err, dberr.ErrNotFound) {
		t.Fatalf("RemoveSource (absent): expected ErrNotFound, got %v", err)
	}
}

func TestCollectionGraphCounters(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	collections := NewCollectionRepo(db, testutil.Logger(t), nil)
	entities := NewCollectionEntityRepo(db, testutil.Logger(t), nil)
	relationships := NewCollectionRelationshipRepo(db, testutil.Logger(t), nil)
	owner := testutil.SeedUser(t, ctx, tx, "counterowner", nil)
	coll := testutil.SeedCollection(t, ctx, tx, owner.UUID, nil, "counted-view")

	created, err := entities.Create(dbc, []*types.CollectionEntity{
		{CollectionUUID: coll.UUID, EntityID: "acme", EntityType: "organization", Name: "Acme"},
		{CollectionUUID: coll.UUID, EntityID: "anna", EntityType: "person", Name: "Anna"},
	})
	if err != nil {
		t.Fatalf("Create entities: %v", err)
	}
	if _, err := relationships.Create(dbc, []*types.CollectionRelationship{{
		CollectionUUID:   coll.UUID,
		SourceEntityID:   "anna",
		TargetEntityID:   "acme",
		RelationshipType: "works_at",
	}}); err != nil {
		t.Fatalf("Create relationship: %v", err)
	}

	after, err := collections.GetByUUID(dbc, coll.UUID)
	if err != nil {
		t.Fatalf("GetByUUID: %v", err)
	}
	if after.EntityCount != 2 || after.RelationshipCount != 1 {
		t.Fatalf("counters not maintained on create: entities=%d relationships=%d",
			after.EntityCount, after.RelationshipCount)
	}

	if err := entities.Delete(dbc, created[0].UUID); err != nil {
		t.Fatalf("Delete entity: %v", err)
	}
	after, err = collections.GetByUUID(dbc, coll.UUID)
	if err != nil {
		t.Fatalf("GetByUUID after delete: %v", err)
	}
	if after.EntityCount != 1 {
		t.Fatalf("entity_count not decremented: %d", after.EntityCount)
	}
}

func TestVisibilityProfileRepoScope(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewVisibilityProfileRepo(db, testutil.Logger(t), nil)
	owner := testutil.SeedUser(t, ctx, tx, "visowner", nil)
	doc := testutil.SeedDocument(t, ctx, tx, owner.UUID, nil, "visible-doc")

	// Scope and type must agree; mismatches fail before the write.
	_, err := repo.Create(dbc, []*types.VisibilityProfile{{
		Name:        "broken",
		OwnerUUID:   owner.UUID,
		ProfileType: types.ProfileTypeFile,
	}})
	if !errors.Is(err, dberr.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	created, err := repo.Create(dbc, []*types.VisibilityProfile{{
		Name:        "doc default",
		OwnerUUID:   owner.UUID,
		ProfileType: types.ProfileTypeFile,
		FileUUID:    &doc.UUID,
	}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	byFile, err := repo.GetByFileID(dbc, doc.UUID)
	if err != nil {
		t.Fatalf("GetByFileID: %v", err)
	}
	if len(byFile) != 1 || byFile[0].UUID != created[0].UUID {
		t.Fatalf("GetByFileID: unexpected result: %+v", byFile)
	}

	if _, err := repo.Create(dbc, []*types.VisibilityProfile{{
		Name:        "everything",
		OwnerUUID:   owner.UUID,
		ProfileType: types.ProfileTypeGlobal,
	}}); err != nil {
		t.Fatalf("Create global: %v", err)
	}
	global, err := repo.GetGlobal(dbc, owner.UUID)
	if err != nil {
		t.Fatalf("GetGlobal: %v", err)
	}
	if len(global) != 1 || global[0].Name != "everything" {
		t.Fatalf("GetGlobal: unexpected result: %+v", global)
	}
}
