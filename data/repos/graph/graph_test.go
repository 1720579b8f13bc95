package graph

import (
	"context"
	"testing"

	"github.com/agentsx-dev/axai-pg/data/repos/testutil"
	types "github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/pkg/dbctx"
)

func TestGraphEntityRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewGraphEntityRepo(db, testutil.Logger(t), nil)
	owner := testutil.SeedUser(t, ctx, tx, "graphowner", nil)
	doc := testutil.SeedDocument(t, ctx, tx, owner.UUID, nil, "graph-doc")

	st := types.SourceFile
	created, err := repo.Create(dbc, []*types.GraphEntity{
		{
			EntityID:       "acme-corp",
			EntityType:     "organization",
			Name:           "Acme Corp",
			SourceType:     &st,
			SourceFileUUID: &doc.UUID,
			CreatedByTool:  "extractor",
			IsActive:       true,
		},
		{
			EntityID:       "jane-doe",
			EntityType:     "person",
			Name:           "Jane Doe",
			SourceType:     &st,
			SourceFileUUID: &doc.UUID,
			CreatedByTool:  "extractor",
			IsActive:       true,
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("Create: expected 2 entities, got %d", len(created))
	}

	byFile, err := repo.GetBySourceFileID(dbc, doc.UUID, true)
	if err != nil {
		t.Fatalf("GetBySourceFileID: %v", err)
	}
	if len(byFile) != 2 {
		t.Fatalf("GetBySourceFileID: expected 2, got %d", len(byFile))
	}

	people, err := repo.GetByType(dbc, doc.UUID, "person")
	if err != nil {
		t.Fatalf("GetByType: %v", err)
	}
	if len(people) != 1 || people[0].EntityID != "jane-doe" {
		t.Fatalf("GetByType: unexpected result: %+v", people)
	}

	byID, err := repo.GetByEntityID(dbc, "acme-corp")
	if err != nil {
		t.Fatalf("GetByEntityID: %v", err)
	}
	if len(byID) != 1 {
		t.Fatalf("GetByEntityID: expected 1, got %d", len(byID))
	}

	// Deactivating the file's extraction hides all rows from active views.
	n, err := repo.DeactivateForFile(dbc, doc.UUID)
	if err != nil {
		t.Fatalf("DeactivateForFile: %v", err)
	}
	if n != 2 {
		t.Fatalf("DeactivateForFile: expected 2 rows, got %d", n)
	}
	active, err := repo.GetBySourceFileID(dbc, doc.UUID, true)
	if err != nil {
		t.Fatalf("GetBySourceFileID after deactivate: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("deactivated entities still active: %+v", active)
	}
	all, err := repo.GetBySourceFileID(dbc, doc.UUID, false)
	if err != nil {
		t.Fatalf("GetBySourceFileID (all): %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("deactivated entities were removed: %d", len(all))
	}
}

func TestGraphRelationshipRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	_ = NewGraphEntityRepo(db, testutil.Logger(t), nil)
	repo := NewGraphRelationshipRepo(db, testutil.Logger(t), nil)

	owner := testutil.SeedUser(t, ctx, tx, "relowner", nil)
	doc := testutil.SeedDocument(t, ctx, tx, owner.UUID, nil, "rel-doc")
	a := testutil.SeedGraphEntity(t, ctx, tx, doc.UUID, "acme-corp", "Acme Corp")
	b := testutil.SeedGraphEntity(t, ctx, tx, doc.UUID, "jane-doe", "Jane Doe")

	st := types.SourceFile
	weight := 0.9
	created, err := repo.Create(dbc, []*types.GraphRelationship{{
		SourceEntityUUID: b.UUID,
		TargetEntityUUID: a.UUID,
		RelationshipType: "works_at",
		SourceType:       &st,
		SourceFileUUID:   &doc.UUID,
		Weight:           &weight,
		CreatedByTool:    "extractor",
		IsDirected:       true,
		IsActive:         true,
	}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	rel := created[0]

	forEntity, err := repo.GetForEntity(dbc, a.UUID)
	if err != nil {
		t.Fatalf("GetForEntity: %v", err)
	}
	if len(forEntity) != 1 || forEntity[0].UUID != rel.UUID {
		t.Fatalf("GetForEntity: unexpected result: %+v", forEntity)
	}

	between, err := repo.GetBetween(dbc, b.UUID, a.UUID)
	if err != nil {
		t.Fatalf("GetBetween: %v", err)
	}
	if len(between) != 1 {
		t.Fatalf("GetBetween: expected 1, got %d", len(between))
	}
	// Directed: the reverse pair matches nothing.
	reversed, err := repo.GetBetween(dbc, a.UUID, b.UUID)
	if err != nil {
		t.Fatalf("GetBetween (reversed): %v", err)
	}
	if len(reversed) != 0 {
		t.Fatalf("GetBetween (reversed): expected 0, got %d", len(reversed))
	}

	if err := repo.Deactivate(dbc, rel.UUID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	active, err := repo.GetBySourceFileID(dbc, doc.UUID, true)
	if err != nil {
		t.Fatalf("GetBySourceFileID: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("deactivated relationship still active: %+v", active)
	}
}
