package base

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/agentsx-dev/axai-pg/data/cache"
	"github.com/agentsx-dev/axai-pg/domain/dualid"
	"github.com/agentsx-dev/axai-pg/observability"
	"github.com/agentsx-dev/axai-pg/pkg/dbctx"
	"github.com/agentsx-dev/axai-pg/pkg/dberr"
	"github.com/agentsx-dev/axai-pg/platform/logger"
)

// Entity is satisfied by every model that embeds dualid.DualID.
type Entity interface {
	Identifiers() (uuid.UUID, string)
}

// Repo provides the operations shared by every identifier-bearing
// repository: create, lookups by either identifier, field updates and
// deletion. Per-entity repositories embed it and add their own queries.
type Repo[T Entity] struct {
	db     *gorm.DB
	log    *logger.Logger
	cache  *cache.Cache
	entity string
	soft   bool

	sf singleflight.Group
}

// New wires a Repo for one model. entity names the model in cache keys
// and metrics. soft routes Delete through the is_deleted/deleted_at columns
// instead of removing the row.
func New[T Entity](db *gorm.DB, baseLog *logger.Logger, c *cache.Cache, entity string, soft bool) *Repo[T] {
	return &Repo[T]{
		db:     db,
		log:    baseLog.With("repo", entity),
		cache:  c,
		entity: entity,
		soft:   soft,
	}
}

func (b *Repo[T]) conn(dbc dbctx.Context) *gorm.DB {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = b.db
	}
	return transaction.WithContext(dbc.Ctx)
}

// observe returns a closure that records the operation outcome once.
func (b *Repo[T]) observe(op string) func(err error) {
	start := time.Now()
	return func(err error) {
		status := "ok"
		if err != nil {
			status = "error"
		}
		observability.Current().ObserveRepoOp(b.entity, op, status, time.Since(start))
	}
}

func (b *Repo[T]) Create(dbc dbctx.Context, rows []*T) ([]*T, error) {
	done := b.observe("create")
	if len(rows) == 0 {
		done(nil)
		return []*T{}, nil
	}
	if err := b.conn(dbc).Create(&rows).Error; err != nil {
		done(err)
		return nil, dberr.Translate(err)
	}
	done(nil)
	return rows, nil
}

func (b *Repo[T]) GetByUUID(dbc dbctx.Context, id uuid.UUID) (*T, error) {
	done := b.observe("get_by_uuid")
	key := cache.UUIDKey(b.entity, id.String())
	if dbc.Tx == nil {
		if v, ok := b.cache.Get(b.entity, key); ok {
			done(nil)
			return v.(*T), nil
		}
	}
	fetch := func() (any, error) {
		var out T
		if err := b.conn(dbc).Where("uuid = ?", id).First(&out).Error; err != nil {
			return nil, dberr.Translate(err)
		}
		return &out, nil
	}
	v, err := b.fetchShared(dbc, key, fetch)
	if err != nil {
		done(err)
		return nil, err
	}
	row := v.(*T)
	if dbc.Tx == nil {
		b.cacheRow(row)
	}
	done(nil)
	return row, nil
}

func (b *Repo[T]) GetByShortID(dbc dbctx.Context, shortID string) (*T, error) {
	done := b.observe("get_by_short_id")
	key := cache.ShortKey(b.entity, shortID)
	if dbc.Tx == nil {
		if v, ok := b.cache.Get(b.entity, key); ok {
			done(nil)
			return v.(*T), nil
		}
	}
	fetch := func() (any, error) {
		var out T
		if err := b.conn(dbc).Where("id = ?", shortID).First(&out).Error; err != nil {
			return nil, dberr.Translate(err)
		}
		return &out, nil
	}
	v, err := b.fetchShared(dbc, key, fetch)
	if err != nil {
		done(err)
		return nil, err
	}
	row := v.(*T)
	if dbc.Tx == nil {
		b.cacheRow(row)
	}
	done(nil)
	return row, nil
}

// GetByAnyID dispatches on the shape of the identifier: a canonical uuid
// routes to the uuid column, an 8-character lowercase hex string to the
// display column. Anything else is not found.
func (b *Repo[T]) GetByAnyID(dbc dbctx.Context, id string) (*T, error) {
	if u, ok := dualid.ParseUUID(id); ok {
		return b.GetByUUID(dbc, u)
	}
	if dualid.IsShortID(id) {
		return b.GetByShortID(dbc, id)
	}
	return nil, dberr.NotFound(fmt.Errorf("identifier %q has no recognized shape", id))
}

// Update applies fields to the row with the given uuid. Identifier columns
// are stripped so they can never be rewritten. A missing row is NotFound.
func (b *Repo[T]) Update(dbc dbctx.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	done := b.observe("update")
	clean := make(map[string]any, len(fields))
	for k, v := range fields {
		switch strings.ToLower(k) {
		case "uuid", "id", "shortid", "short_id":
			continue
		}
		clean[k] = v
	}
	if len(clean) == 0 {
		done(nil)
		return b.GetByUUID(dbc, id)
	}

	b.Invalidate(id)
	var model T
	res := b.conn(dbc).Model(&model).Where("uuid = ?", id).Updates(clean)
	if res.Error != nil {
		done(res.Error)
		return nil, dberr.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		err := dberr.NotFound(fmt.Errorf("%s %s not found", b.entity, id))
		done(err)
		return nil, err
	}
	done(nil)
	return b.GetByUUID(dbc, id)
}

// Delete removes the row: a soft-deleting repository flips is_deleted and
// stamps deleted_at so the row stays retrievable, everything else deletes
// the row outright.
func (b *Repo[T]) Delete(dbc dbctx.Context, id uuid.UUID) error {
	if !b.soft {
		return b.HardDelete(dbc, id)
	}
	done := b.observe("soft_delete")
	b.Invalidate(id)
	var model T
	res := b.conn(dbc).Model(&model).Where("uuid = ?", id).Updates(map[string]any{
		"is_deleted": true,
		"deleted_at": time.Now().UTC(),
	})
	if res.Error != nil {
		done(res.Error)
		return dberr.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		err := dberr.NotFound(fmt.Errorf("%s %s not found", b.entity, id))
		done(err)
		return err
	}
	done(nil)
	return nil
}

// HardDelete removes the row regardless of the soft-delete setting.
func (b *Repo[T]) HardDelete(dbc dbctx.Context, id uuid.UUID) error {
	done := b.observe("hard_delete")
	b.Invalidate(id)
	var model T
	res := b.conn(dbc).Where("uuid = ?", id).Delete(&model)
	if res.Error != nil {
		done(res.Error)
		return dberr.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		err := dberr.NotFound(fmt.Errorf("%s %s not found", b.entity, id))
		done(err)
		return err
	}
	done(nil)
	return nil
}

// fetchShared collapses concurrent identical reads through singleflight.
// Reads inside a transaction bypass it: their results reflect uncommitted
// state that must not leak to other callers.
func (b *Repo[T]) fetchShared(dbc dbctx.Context, key string, fetch func() (any, error)) (any, error) {
	if dbc.Tx != nil {
		return fetch()
	}
	v, err, _ := b.sf.Do(key, fetch)
	return v, err
}

func (b *Repo[T]) cacheRow(row *T) {
	u, short := (*row).Identifiers()
	b.cache.Set(cache.UUIDKey(b.entity, u.String()), row)
	if short != "" {
		b.cache.Set(cache.ShortKey(b.entity, short), row)
	}
}

// Invalidate drops both cache keys for one row. The display identifier is
// derivable from the uuid, so no lookup is needed. Embedding repositories
// call it before writes that bypass the shared operations.
func (b *Repo[T]) Invalidate(id uuid.UUID) {
	b.cache.Invalidate(b.entity, id.String(), dualid.ShortFrom(id))
}

// ToDisplay renders a model as a map keyed by json tags, with the canonical
// uuid omitted unless includeUUID is set. The display identifier is always
// present. The model itself is never mutated.
func ToDisplay(entity any, includeUUID bool) map[string]any {
	out := map[string]any{}
	v := reflect.ValueOf(entity)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return out
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return out
	}
	flatten(v, includeUUID, out)
	return out
}

func flatten(v reflect.Value, includeUUID bool, out map[string]any) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			flatten(v.Field(i), includeUUID, out)
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		if name == "uuid" && !includeUUID {
			continue
		}
		fv := v.Field(i)
		if strings.Contains(opts, "omitempty") && fv.Kind() == reflect.Pointer && fv.IsNil() {
			continue
		}
		out[name] = fv.Interface()
	}
}
