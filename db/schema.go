package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/agentsx-dev/axai-pg/domain"
	"github.com/agentsx-dev/axai-pg/platform/logger"
)

// SchemaBuilder provisions and tears down the full schema. Build is safe to
// re-run: every step is written as IF NOT EXISTS / CREATE OR REPLACE, and
// constraints are checked against pg_constraint before being added.
type SchemaBuilder struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSchemaBuilder(db *gorm.DB, logg *logger.Logger) *SchemaBuilder {
	return &SchemaBuilder{db: db, log: logg.With("service", "SchemaBuilder")}
}

type foreignKey struct {
	table     string
	name      string
	column    string
	refTable  string
	refColumn string
	onDelete  string
}

var foreignKeys = []foreignKey{
	{"users", "fk_users_org_uuid", "org_uuid", "organizations", "uuid", "CASCADE"},
	{"tokens", "fk_tokens_user_uuid", "user_uuid", "users", "uuid", "CASCADE"},
	{"feedback", "fk_feedback_user_uuid", "user_uuid", "users", "uuid", "SET NULL"},

	{"documents", "fk_documents_owner_uuid", "owner_uuid", "users", "uuid", "CASCADE"},
	{"documents", "fk_documents_org_uuid", "org_uuid", "organizations", "uuid", "CASCADE"},
	{"documents", "fk_documents_parent_document_uuid", "parent_document_uuid", "documents", "uuid", "CASCADE"},
	{"documents", "fk_documents_default_visibility_profile_uuid", "default_visibility_profile_uuid", "visibility_profiles", "uuid", "SET NULL"},
	{"document_versions", "fk_document_versions_document_uuid", "document_uuid", "documents", "uuid", "CASCADE"},
	{"document_versions", "fk_document_versions_created_by_uuid", "created_by_uuid", "users", "uuid", "SET NULL"},
	{"summaries", "fk_summaries_document_uuid", "document_uuid", "documents", "uuid", "CASCADE"},
	{"topics", "fk_topics_parent_topic_uuid", "parent_topic_uuid", "topics", "uuid", "SET NULL"},
	{"document_topics", "fk_document_topics_document_uuid", "document_uuid", "documents", "uuid", "CASCADE"},
	{"document_topics", "fk_document_topics_topic_uuid", "topic_uuid", "topics", "uuid", "CASCADE"},

	{"collections", "fk_collections_owner_uuid", "owner_uuid", "users", "uuid", "CASCADE"},
	{"collections", "fk_collections_org_uuid", "org_uuid", "organizations", "uuid", "CASCADE"},
	{"collections", "fk_collections_parent_uuid", "parent_uuid", "collections", "uuid", "CASCADE"},
	{"collections", "fk_collections_default_visibility_profile_uuid", "default_visibility_profile_uuid", "visibility_profiles", "uuid", "SET NULL"},
	{"file_collection_association", "fk_file_collection_association_file_id", "file_id", "documents", "uuid", "CASCADE"},
	{"file_collection_association", "fk_file_collection_association_collection_id", "collection_id", "collections", "uuid", "CASCADE"},
	{"collection_entities", "fk_collection_entities_collection_uuid", "collection_uuid", "collections", "uuid", "CASCADE"},
	{"collection_entities", "fk_collection_entities_created_from_link_uuid", "created_from_link_uuid", "entity_links", "uuid", "SET NULL"},
	{"collection_relationships", "fk_collection_relationships_collection_uuid", "collection_uuid", "collections", "uuid", "CASCADE"},
	{"collection_entity_sources", "fk_collection_entity_sources_collection_entity_uuid", "collection_entity_uuid", "collection_entities", "uuid", "CASCADE"},
	{"collection_entity_sources", "fk_collection_entity_sources_source_graph_entity_uuid", "source_graph_entity_uuid", "graph_entities", "uuid", "CASCADE"},
	{"collection_relationship_sources", "fk_collection_relationship_sources_collection_relationship_uuid", "collection_relationship_uuid", "collection_relationships", "uuid", "CASCADE"},
	{"collection_relationship_sources", "fk_collection_relationship_sources_source_graph_relationship_uuid", "source_graph_relationship_uuid", "graph_relationships", "uuid", "CASCADE"},
	{"entity_links", "fk_entity_links_graph_entity_uuid", "graph_entity_uuid", "graph_entities", "uuid", "CASCADE"},
	{"entity_links", "fk_entity_links_collection_entity_uuid", "collection_entity_uuid", "collection_entities", "uuid", "CASCADE"},
	{"entity_links", "fk_entity_links_collection_uuid", "collection_uuid", "collections", "uuid", "CASCADE"},
	{"entity_operations", "fk_entity_operations_collection_uuid", "collection_uuid", "collections", "uuid", "CASCADE"},
	{"entity_operations", "fk_entity_operations_performed_by_uuid", "performed_by_uuid", "users", "uuid", "SET NULL"},
	{"document_collection_contexts", "fk_document_collection_contexts_document_uuid", "document_uuid", "documents", "uuid", "CASCADE"},
	{"document_collection_contexts", "fk_document_collection_contexts_collection_uuid", "collection_uuid", "collections", "uuid", "CASCADE"},
	{"document_collection_contexts", "fk_document_collection_contexts_visibility_profile_uuid", "visibility_profile_uuid", "visibility_profiles", "uuid", "SET NULL"},
	{"visibility_profiles", "fk_visibility_profiles_owner_uuid", "owner_uuid", "users", "uuid", "CASCADE"},
	{"visibility_profiles", "fk_visibility_profiles_file_uuid", "file_uuid", "documents", "uuid", "CASCADE"},
	{"visibility_profiles", "fk_visibility_profiles_collection_uuid", "collection_uuid", "collections", "uuid", "CASCADE"},

	{"graph_entities", "fk_graph_entities_source_file_uuid", "source_file_uuid", "documents", "uuid", "CASCADE"},
	{"graph_entities", "fk_graph_entities_source_collection_uuid", "source_collection_uuid", "collections", "uuid", "CASCADE"},
	{"graph_entities", "fk_graph_entities_document_uuid", "document_uuid", "documents", "uuid", "SET NULL"},
	{"graph_relationships", "fk_graph_relationships_source_entity_uuid", "source_entity_uuid", "graph_entities", "uuid", "CASCADE"},
	{"graph_relationships", "fk_graph_relationships_target_entity_uuid", "target_entity_uuid", "graph_entities", "uuid", "CASCADE"},
	{"graph_relationships", "fk_graph_relationships_source_file_uuid", "source_file_uuid", "documents", "uuid", "CASCADE"},
	{"graph_relationships", "fk_graph_relationships_source_collection_uuid", "source_collection_uuid", "collections", "uuid", "CASCADE"},
	{"graph_relationships", "fk_graph_relationships_document_uuid", "document_uuid", "documents", "uuid", "SET NULL"},

	{"user_roles", "fk_user_roles_user_uuid", "user_uuid", "users", "uuid", "CASCADE"},
	{"user_roles", "fk_user_roles_role_uuid", "role_uuid", "roles", "uuid", "CASCADE"},
	{"user_roles", "fk_user_roles_assigned_by_uuid", "assigned_by_uuid", "users", "uuid", "SET NULL"},
	{"audit_logs", "fk_audit_logs_user_uuid", "user_uuid", "users", "uuid", "SET NULL"},
	{"rate_limits", "fk_rate_limits_user_uuid", "user_uuid", "users", "uuid", "CASCADE"},
	{"security_policies", "fk_security_policies_created_by_uuid", "created_by_uuid", "users", "uuid", "SET NULL"},

	{"llm_usage", "fk_llm_usage_document_uuid", "document_uuid", "documents", "uuid", "CASCADE"},
	{"llm_usage", "fk_llm_usage_user_uuid", "user_uuid", "users", "uuid", "SET NULL"},
	{"llm_usage", "fk_llm_usage_org_uuid", "org_uuid", "organizations", "uuid", "SET NULL"},
}

// Tables that carry an updated_at column maintained by trigger.
var updatedAtTables = []string{
	"organizations",
	"users",
	"feedback",
	"documents",
	"summaries",
	"topics",
	"document_topics",
	"collections",
	"collection_entities",
	"collection_relationships",
	"entity_links",
	"document_collection_contexts",
	"visibility_profiles",
	"graph_entities",
	"graph_relationships",
	"roles",
	"rate_limits",
	"security_policies",
	"llm_model_pricing",
}

var tableComments = map[string]string{
	"organizations":                   "Tenant boundary for users, documents and collections",
	"users":                           "Accounts scoped to an organization",
	"tokens":                          "Issued credentials keyed by JWT jti",
	"documents":                       "Uploaded files with content, processing state and graph flags",
	"document_versions":               "Immutable per-document version history",
	"summaries":                       "Generated summaries attached to documents",
	"topics":                          "Topic taxonomy with optional parent hierarchy",
	"document_topics":                 "Document-to-topic assignments with relevance scores",
	"collections":                     "Document groupings with a merged graph view",
	"file_collection_association":     "Document membership in collections",
	"collection_entities":             "Collection-scope graph nodes, possibly merged from many sources",
	"collection_relationships":        "Collection-scope graph edges",
	"collection_entity_sources":       "Provenance rows linking merged entities to their document-scope sources",
	"collection_relationship_sources": "Provenance rows linking merged edges to their document-scope sources",
	"entity_links":                    "Proposed or applied merges between graph entities",
	"entity_operations":               "Audit trail of collection graph mutations",
	"document_collection_contexts":    "Per-document context inside one collection",
	"visibility_profiles":             "Scoped visibility configuration for files, collections or globally",
	"graph_entities":                  "Document-scope knowledge-graph nodes",
	"graph_relationships":             "Document-scope knowledge-graph edges",
	"audit_logs":                      "Append-only record of security-relevant actions",
	"llm_usage":                       "Per-invocation model usage and cost accounting",
	"llm_model_pricing":               "Per-1k-token rates by model",
}

// Build provisions the schema in six ordered steps. Any failure aborts with
// the step named in the wrapped error.
func (b *SchemaBuilder) Build() error {
	b.log.Info("Provisioning schema...")

	if err := b.db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("enable uuid-ossp extension: %w", err)
	}

	if err := b.db.Exec(`
		CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
		BEGIN
			NEW.updated_at = now();
			RETURN NEW;
		END;
		$$ LANGUAGE plpgsql;
	`).Error; err != nil {
		return fmt.Errorf("create set_updated_at function: %w", err)
	}

	if err := b.db.AutoMigrate(domain.AllModels()...); err != nil {
		return fmt.Errorf("migrate tables: %w", err)
	}
	for _, fk := range foreignKeys {
		if err := b.addForeignKey(fk); err != nil {
			return fmt.Errorf("add constraint %s: %w", fk.name, err)
		}
	}

	for _, table := range updatedAtTables {
		trigger := "trg_" + table + "_set_updated_at"
		if err := b.db.Exec(fmt.Sprintf(
			`DROP TRIGGER IF EXISTS %s ON %s;`, trigger, table,
		)).Error; err != nil {
			return fmt.Errorf("drop trigger %s: %w", trigger, err)
		}
		if err := b.db.Exec(fmt.Sprintf(
			`CREATE TRIGGER %s BEFORE UPDATE ON %s FOR EACH ROW EXECUTE FUNCTION set_updated_at();`,
			trigger, table,
		)).Error; err != nil {
			return fmt.Errorf("create trigger %s: %w", trigger, err)
		}
	}

	for table, comment := range tableComments {
		if err := b.db.Exec(fmt.Sprintf(
			`COMMENT ON TABLE %s IS '%s';`, table, comment,
		)).Error; err != nil {
			return fmt.Errorf("comment on table %s: %w", table, err)
		}
	}

	if err := b.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_documents_tags ON documents USING gin (tags);
	`).Error; err != nil {
		return fmt.Errorf("create index idx_documents_tags: %w", err)
	}
	if err := b.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_graph_entities_properties ON graph_entities USING gin (properties);
	`).Error; err != nil {
		return fmt.Errorf("create index idx_graph_entities_properties: %w", err)
	}

	b.log.Info("Schema provisioned")
	return nil
}

// Teardown drops every table in reverse dependency order, then the trigger
// function and the extension. CASCADE covers the deliberately circular
// references that Build adds after migration.
func (b *SchemaBuilder) Teardown() error {
	b.log.Warn("Tearing down schema...")

	models := domain.AllModels()
	for i := len(models) - 1; i >= 0; i-- {
		namer, ok := models[i].(interface{ TableName() string })
		if !ok {
			return fmt.Errorf("model %T does not name its table", models[i])
		}
		table := namer.TableName()
		if err := b.db.Exec(fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE;`, table)).Error; err != nil {
			return fmt.Errorf("drop table %s: %w", table, err)
		}
	}

	if err := b.db.Exec(`DROP FUNCTION IF EXISTS set_updated_at();`).Error; err != nil {
		return fmt.Errorf("drop set_updated_at function: %w", err)
	}
	if err := b.db.Exec(`DROP EXTENSION IF EXISTS "uuid-ossp";`).Error; err != nil {
		return fmt.Errorf("drop uuid-ossp extension: %w", err)
	}

	b.log.Warn("Schema torn down")
	return nil
}

// Reset tears the schema down and rebuilds it from scratch.
func (b *SchemaBuilder) Reset() error {
	if err := b.Teardown(); err != nil {
		return err
	}
	return b.Build()
}

func (b *SchemaBuilder) addForeignKey(fk foreignKey) error {
	var count int64
	if err := b.db.Raw(
		`SELECT count(*) FROM pg_constraint WHERE conname = ?`, fk.name,
	).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return b.db.Exec(fmt.Sprintf(
		`ALTER TABLE %q ADD CONSTRAINT %q FOREIGN KEY (%q) REFERENCES %q(%q) ON DELETE %s`,
		fk.table, fk.name, fk.column, fk.refTable, fk.refColumn, fk.onDelete,
	)).Error
}
