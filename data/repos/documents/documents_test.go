package documents

import (
	"context"
	"errors"
	"testing"

	"github.com/agentsx-dev/axai-pg/data/repos/testutil"
	types "github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/pkg/dbctx"
	"github.com/agentsx-dev/axai-pg/pkg/dberr"
)

func TestDocumentRepoSoftDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewDocumentRepo(db, testutil.Logger(t), nil)
	org := testutil.SeedOrganization(t, ctx, tx, "doc-org")
	owner := testutil.SeedUser(t, ctx, tx, "docowner", &org.UUID)
	doc := testutil.SeedDocument(t, ctx, tx, owner.UUID, &org.UUID, "report")

	if err := repo.Delete(dbc, doc.UUID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// Soft-deleted rows stay retrievable by identifier.
	got, err := repo.GetByUUID(dbc, doc.UUID)
	if err != nil {
		t.Fatalf("GetByUUID after soft delete: %v", err)
	}
	if !got.IsDeleted || got.DeletedAt == nil {
		t.Fatalf("soft delete flags not set: %+v", got)
	}

	// Listings exclude them unless asked.
	visible, err := repo.GetByOwnerID(dbc, owner.UUID, false)
	if err != nil {
		t.Fatalf("GetByOwnerID: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("soft-deleted document still listed: %+v", visible)
	}
	all, err := repo.GetByOwnerID(dbc, owner.UUID, true)
	if err != nil {
		t.Fatalf("GetByOwnerID (includeDeleted): %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 document including deleted, got %d", len(all))
	}

	// Restore clears the markers and the document lists again.
	if err := repo.Restore(dbc, doc.UUID); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	restored, err := repo.GetByUUID(dbc, doc.UUID)
	if err != nil {
		t.Fatalf("GetByUUID after restore: %v", err)
	}
	if restored.IsDeleted || restored.DeletedAt != nil {
		t.Fatalf("restore did not clear deletion markers: %+v", restored)
	}
	visible, err = repo.GetByOwnerID(dbc, owner.UUID, false)
	if err != nil {
		t.Fatalf("GetByOwnerID after restore: %v", err)
	}
	if len(visible) != 1 {
		t.Fatalf("restored document not listed, got %d rows", len(visible))
	}

	// Hard delete actually removes the row.
	if err := repo.HardDelete(dbc, doc.UUID); err != nil {
		t.Fatalf("HardDelete: %v", err)
	}
	if _, err := repo.GetByUUID(dbc, doc.UUID); !errors.Is(err, dberr.ErrNotFound) {
		t.Fatalf("GetByUUID after hard delete: expected ErrNotFound, got %v", err)
	}
}

func TestDocumentRepoCreateWithSummary(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewDocumentRepo(db, testutil.Logger(t), nil)
	summaries := NewSummaryRepo(db, testutil.Logger(t), nil)
	owner := testutil.SeedUser(t, ctx, tx, "summaryowner", nil)

	content := "body"
	doc := &types.Document{
		Title:        "summarized",
		Filename:     "summarized.txt",
		Content:      &content,
		OwnerUUID:    owner.UUID,
		FilePath:     "/tmp/summarized.txt",
		Size:         4,
		ContentType:  "text/plain",
		DocumentType: "text",
		Status:       types.DocumentStatusDraft,
		Version:      1,
	}
	created, err := repo.CreateWithSummary(dbc, doc, &types.Summary{
		Content:         "short form",
		SummaryType:     "abstract",
		GeneratedByTool: "test",
	})
	if err != nil {
		t.Fatalf("CreateWithSummary: %v", err)
	}
	if !created.HasSummary {
		t.Fatalf("HasSummary not set: %+v", created)
	}

	rows, err := summaries.GetByDocumentID(dbc, created.UUID)
	if err != nil {
		t.Fatalf("GetByDocumentID: %v", err)
	}
	if len(rows) != 1 || rows[0].Content != "short form" {
		t.Fatalf("summary row missing or wrong: %+v", rows)
	}
}

func TestDocumentRepoUpdateWithVersion(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewDocumentRepo(db, testutil.Logger(t), nil)
	versions := NewDocumentVersionRepo(db, testutil.Logger(t), nil)
	owner := testutil.SeedUser(t, ctx, tx, "versionowner", nil)
	doc := testutil.SeedDocument(t, ctx, tx, owner.UUID, nil, "versioned")

	updated, err := repo.UpdateWithVersion(dbc, doc.UUID,
		map[string]any{"content": "second draft"},
		"rewrote the intro", &owner.UUID)
	if err != nil {
		t.Fatalf("UpdateWithVersion: %v", err)
	}
	if updated.Version != 2 {
		t.Fatalf("expected version 2, got %d", updated.Version)
	}
	if !updated.HasVersions {
		t.Fatalf("HasVersions not set")
	}
	if updated.Content == nil || *updated.Content != "second draft" {
		t.Fatalf("content not applied: %+v", updated.Content)
	}

	// The snapshot holds the pre-update state.
	snap, err := versions.GetLatest(dbc, doc.UUID)
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if snap.Version != 1 {
		t.Fatalf("expected snapshot of version 1, got %d", snap.Version)
	}
	if snap.Content != "hello world" {
		t.Fatalf("snapshot content wrong: %q", snap.Content)
	}
	if snap.ChangeDescription == nil || *snap.ChangeDescription != "rewrote the intro" {
		t.Fatalf("change description missing: %+v", snap.ChangeDescription)
	}

	// A second update stacks another version.
	if _, err := repo.UpdateWithVersion(dbc, doc.UUID, map[string]any{"title": "versioned v3"}, "", nil); err != nil {
		t.Fatalf("UpdateWithVersion (second): %v", err)
	}
	history, err := versions.GetByDocumentID(dbc, doc.UUID)
	if err != nil {
		t.Fatalf("GetByDocumentID: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(history))
	}
	if history[0].Version < history[1].Version {
		t.Fatalf("history not ordered newest first")
	}
}

func TestDocumentRepoSearch(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewDocumentRepo(db, testutil.Logger(t), nil)
	org := testutil.SeedOrganization(t, ctx, tx, "search-org")
	owner := testutil.SeedUser(t, ctx, tx, "searchowner", &org.UUID)
	testutil.SeedDocument(t, ctx, tx, owner.UUID, &org.UUID, "quarterly revenue")
	testutil.SeedDocument(t, ctx, tx, owner.UUID, &org.UUID, "meeting notes")

	found, err := repo.Search(dbc, org.UUID, "revenue", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(found) != 1 || found[0].Title != "quarterly revenue" {
		t.Fatalf("Search: unexpected result: %+v", found)
	}

	// Case-insensitive match.
	found, err = repo.Search(dbc, org.UUID, "REVENUE", 0)
	if err != nil {
		t.Fatalf("Search (upper): %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("Search (upper): expected 1, got %d", len(found))
	}
}

func TestDocumentTopicRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	topics := NewTopicRepo(db, testutil.Logger(t), nil)
	docTopics := NewDocumentTopicRepo(db, testutil.Logger(t))
	docs := NewDocumentRepo(db, testutil.Logger(t), nil)

	owner := testutil.SeedUser(t, ctx, tx, "topicowner", nil)
	doc := testutil.SeedDocument(t, ctx, tx, owner.UUID, nil, "tagged")
	topic := testutil.SeedTopic(t, ctx, tx, "finance")

	assigned, err := docTopics.Assign(dbc, &types.DocumentTopic{
		DocumentUUID:    doc.UUID,
		TopicUUID:       topic.UUID,
		RelevanceScore:  0.8,
		ExtractedByTool: "test",
	})
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if assigned.RelevanceScore != 0.8 {
		t.Fatalf("Assign: unexpected row: %+v", assigned)
	}

	// Out-of-range relevance is rejected before the write.
	_, err = docTopics.Assign(dbc, &types.DocumentTopic{
		DocumentUUID:    doc.UUID,
		TopicUUID:       topic.UUID,
		RelevanceScore:  1.5,
		ExtractedByTool: "test",
	})
	if !errors.Is(err, dberr.ErrValidation) {
		t.Fatalf("Assign (invalid): expected ErrValidation, got %v", err)
	}

	byTopic, err := docs.GetByTopicID(dbc, topic.UUID)
	if err != nil {
		t.Fatalf("GetByTopicID: %v", err)
	}
	if len(byTopic) != 1 || byTopic[0].UUID != doc.UUID {
		t.Fatalf("GetByTopicID: unexpected result: %+v", byTopic)
	}

	byName, err := topics.GetByName(dbc, "finance")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if byName.UUID != topic.UUID {
		t.Fatalf("GetByName: resolved wrong topic")
	}

	if err := docTopics.Remove(dbc, doc.UUID, topic.UUID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	rows, err := docTopics.GetByDocumentID(dbc, doc.UUID)
	if err != nil {
		t.Fatalf("GetByDocumentID: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("Remove: assignment still present")
	}
}

func TestDocumentRepoRelatedDocuments(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewDocumentRepo(db, testutil.Logger(t), nil)
	owner := testutil.SeedUser(t, ctx, tx, "relowner", nil)
	docA := testutil.SeedDocument(t, ctx, tx, owner.UUID, nil, "alpha")
	docB := testutil.SeedDocument(t, ctx, tx, owner.UUID, nil, "beta")
	docC := testutil.SeedDocument(t, ctx, tx, owner.UUID, nil, "gamma")

	// alpha -> beta -> gamma, one edge per hop.
	entA := testutil.SeedGraphEntity(t, ctx, tx, docA.UUID, "acme", "Acme")
	entB := testutil.SeedGraphEntity(t, ctx, tx, docB.UUID, "anna", "Anna")
	entC := testutil.SeedGraphEntity(t, ctx, tx, docC.UUID, "zurich", "Zurich")
	testutil.SeedGraphRelationship(t, ctx, tx, docA.UUID, entA.UUID, entB.UUID, "employs")
	testutil.SeedGraphRelationship(t, ctx, tx, docB.UUID, entB.UUID, entC.UUID, "lives_in")

	oneHop, err := repo.RelatedDocuments(dbc, docA.UUID, 1)
	if err != nil {
		t.Fatalf("RelatedDocuments(depth 1): %v", err)
	}
	if len(oneHop) != 1 || oneHop[0].UUID != docB.UUID {
		t.Fatalf("depth 1: expected only beta, got %d rows", len(oneHop))
	}

	twoHops, err := repo.RelatedDocuments(dbc, docA.UUID, 2)
	if err != nil {
		t.Fatalf("RelatedDocuments(depth 2): %v", err)
	}
	if len(twoHops) != 2 {
		t.Fatalf("depth 2: expected beta and gamma, got %d rows", len(twoHops))
	}
	// Closer documents come first.
	if twoHops[0].UUID != docB.UUID || twoHops[1].UUID != docC.UUID {
		t.Fatalf("depth 2: wrong order: %q, %q", twoHops[0].Title, twoHops[1].Title)
	}

	// The graph does not reach backwards along directed edges.
	fromC, err := repo.RelatedDocuments(dbc, docC.UUID, 2)
	if err != nil {
		t.Fatalf("RelatedDocuments(from gamma): %v", err)
	}
	if len(fromC) != 0 {
		t.Fatalf("gamma has no outgoing edges, got %d rows", len(fromC))
	}
}
