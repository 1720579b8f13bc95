package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/agentsx-dev/axai-pg/domain"
)

func SeedOrganization(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Organization {
	tb.Helper()
	org := &types.Organization{Name: name}
	if err := tx.WithContext(ctx).Create(org).Error; err != nil {
		tb.Fatalf("seed organization: %v", err)
	}
	return org
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string, orgUUID *uuid.UUID) *types.User {
	tb.Helper()
	u := &types.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		OrgUUID:      orgUUID,
		IsActive:     true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedDocument(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerUUID uuid.UUID, orgUUID *uuid.UUID, title string) *types.Document {
	tb.Helper()
	content := "hello world"
	d := &types.Document{
		Title:        title,
		Filename:     title + ".txt",
		Content:      &content,
		OwnerUUID:    ownerUUID,
		OrgUUID:      orgUUID,
		FilePath:     "/tmp/" + title + ".txt",
		Size:         int64(len(content)),
		ContentType:  "text/plain",
		DocumentType: "text",
		Status:       types.DocumentStatusDraft,
		Version:      1,
		Tags:         datatypes.JSON([]byte(`[]`)),
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed document: %v", err)
	}
	return d
}

func SeedCollection(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerUUID uuid.UUID, orgUUID *uuid.UUID, name string) *types.Collection {
	tb.Helper()
	c := &types.Collection{
		Name:      name,
		OwnerUUID: ownerUUID,
		OrgUUID:   orgUUID,
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed collection: %v", err)
	}
	return c
}

func SeedTopic(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Topic {
	tb.Helper()
	t := &types.Topic{
		Name:     name,
		IsActive: true,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed topic: %v", err)
	}
	return t
}

func SeedGraphEntity(tb testing.TB, ctx context.Context, tx *gorm.DB, fileUUID uuid.UUID, entityID, name string) *types.GraphEntity {
	tb.Helper()
	st := types.SourceFile
	e := &types.GraphEntity{
		EntityID:       entityID,
		EntityType:     "concept",
		Name:           name,
		SourceType:     &st,
		SourceFileUUID: &fileUUID,
		CreatedByTool:  "test",
		IsActive:       true,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed graph entity: %v", err)
	}
	return e
}

func SeedGraphRelationship(tb testing.TB, ctx context.Context, tx *gorm.DB, fileUUID, sourceUUID, targetUUID uuid.UUID, relType string) *types.GraphRelationship {
	tb.Helper()
	st := types.SourceFile
	rel := &types.GraphRelationship{
		SourceEntityUUID: sourceUUID,
		TargetEntityUUID: targetUUID,
		RelationshipType: relType,
		SourceType:       &st,
		SourceFileUUID:   &fileUUID,
		CreatedByTool:    "test",
		IsActive:         true,
	}
	if err := tx.WithContext(ctx).Create(rel).Error; err != nil {
		tb.Fatalf("seed graph relationship: %v", err)
	}
	return rel
}

func SeedRole(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Role {
	tb.Helper()
	r := &types.Role{Name: name}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed role: %v", err)
	}
	return r
}

func PtrUUID(v uuid.UUID) *uuid.UUID { return &v }

func PtrTime(v time.Time) *time.Time { return &v }
