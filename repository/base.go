/*
 * Copyright 2025 the egret authors.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/egret-io/egret/types"
)

const (
	softDeleteColumn = "is_deleted"
	updatedAtColumn  = "updated_at"

	defaultListLimit = 100
)

type baseRepositoryImpl[T any] struct {
	db    *bun.DB
	table *schema.Table
}

// NewRepository returns a generic repository for T backed by the provided Bun DB.
func NewRepository[T any](db *bun.DB) Repository[T] {
	return &baseRepositoryImpl[T]{
		db:    db,
		table: db.Table(reflect.TypeOf((*T)(nil)).Elem()),
	}
}

func (r *baseRepositoryImpl[T]) Table() *schema.Table { return r.table }

func (r *baseRepositoryImpl[T]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *baseRepositoryImpl[T]) NewSelect() *bun.SelectQuery { return r.db.NewSelect() }

func (r *baseRepositoryImpl[T]) NewInsert() *bun.InsertQuery { return r.db.NewInsert() }

func (r *baseRepositoryImpl[T]) NewUpdate() *bun.UpdateQuery { return r.db.NewUpdate() }

func (r *baseRepositoryImpl[T]) NewDelete() *bun.DeleteQuery { return r.db.NewDelete() }

// pkField returns the single string primary-key field of the entity type.
func (r *baseRepositoryImpl[T]) pkField() (*schema.Field, error) {
	if len(r.table.PKs) != 1 {
		return nil, fmt.Errorf("entity %s must have exactly one primary key", r.table.TypeName)
	}
	pk := r.table.PKs[0]
	if pk.IndirectType.Kind() != reflect.String {
		return nil, fmt.Errorf("entity %s primary key must be a string", r.table.TypeName)
	}
	return pk, nil
}

func (r *baseRepositoryImpl[T]) GetByID(ctx context.Context, id string) (*T, error) {
	pk, err := r.pkField()
	if err != nil {
		return nil, err
	}
	var entity T
	err = r.db.NewSelect().Model(&entity).Where("? = ?", bun.Ident(pk.Name), id).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *baseRepositoryImpl[T]) GetAll(ctx context.Context) ([]*T, error) {
	var entities []*T
	err := r.db.NewSelect().Model(&entities).Scan(ctx)
	return entities, err
}

func (r *baseRepositoryImpl[T]) GetOne(ctx context.Context, filters map[string]interface{}) (*T, error) {
	var entity T
	q := r.db.NewSelect().Model(&entity)
	for name, value := range filters {
		field, ok := r.table.FieldMap[name]
		if !ok {
			continue
		}
		q = q.Where("? = ?", bun.Ident(field.Name), value)
	}
	err := q.Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *baseRepositoryImpl[T]) Query(ctx context.Context, query string, args ...interface{}) ([]*T, error) {
	var entities []*T
	err := r.db.NewSelect().Model(&entities).Where(query, args...).Scan(ctx)
	return entities, err
}

// List executes one paged query: soft-delete default, filters, total count
// before pagination, ordering, offset/limit, then materialization into
// records. It never writes.
func (r *baseRepositoryImpl[T]) List(ctx context.Context, opts *ListOptions) (*types.PagedResult, error) {
	if opts == nil {
		opts = &ListOptions{}
	}

	var entities []T
	q := r.db.NewSelect().Model(&entities)

	fields := r.table.Fields
	if len(opts.Columns) > 0 {
		if projected := r.resolveColumns(opts.Columns); len(projected) > 0 {
			fields = projected
			names := make([]string, len(projected))
			for i, f := range projected {
				names[i] = f.Name
			}
			q = q.Column(names...)
		}
	}

	filters := opts.Filters
	if !opts.IncludeDeleted {
		if _, soft := r.table.FieldMap[softDeleteColumn]; soft {
			if _, explicit := filters[softDeleteColumn]; !explicit {
				merged := make(map[string]interface{}, len(filters)+1)
				for k, v := range filters {
					merged[k] = v
				}
				merged[softDeleteColumn] = types.Eq(false)
				filters = merged
			}
		}
	}
	q = ApplyFilters(q, r.table, filters)

	total, err := q.Count(ctx)
	if err != nil {
		return nil, err
	}
	result := &types.PagedResult{Data: make([]types.Record, 0), TotalCount: total}
	if total == 0 {
		return result, nil
	}

	q = ApplySorting(q, r.table, opts.SortBy)

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if err := q.Offset(opts.Skip).Limit(limit).Scan(ctx); err != nil {
		return nil, err
	}

	for i := range entities {
		result.Data = append(result.Data, r.toRecord(&entities[i], fields))
	}
	return result, nil
}

// resolveColumns maps requested column names onto schema fields, preserving
// request order and skipping names the entity does not have.
func (r *baseRepositoryImpl[T]) resolveColumns(columns []string) []*schema.Field {
	fields := make([]*schema.Field, 0, len(columns))
	for _, name := range columns {
		if field, ok := r.table.FieldMap[name]; ok {
			fields = append(fields, field)
		}
	}
	return fields
}

func (r *baseRepositoryImpl[T]) toRecord(entity *T, fields []*schema.Field) types.Record {
	strct := reflect.ValueOf(entity).Elem()
	record := make(types.Record, len(fields))
	for _, field := range fields {
		record[field.Name] = serializeValue(field.Value(strct).Interface())
	}
	return record
}

// serializeValue renders timestamps as ISO-8601 strings; everything else
// passes through unchanged.
func serializeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return v.Format(time.RFC3339)
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		return v.Format(time.RFC3339)
	}
	return value
}

// Create persists the batch atomically: every entity gets a freshly generated
// prefix-tagged identifier, and a single failure rolls back the whole batch.
func (r *baseRepositoryImpl[T]) Create(ctx context.Context, entities ...*T) ([]string, error) {
	var ids []string
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		ids, err = r.createIn(ctx, tx, entities)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *baseRepositoryImpl[T]) CreateTx(ctx context.Context, tx *bun.Tx, entities ...*T) ([]string, error) {
	return r.createIn(ctx, tx, entities)
}

func (r *baseRepositoryImpl[T]) createIn(ctx context.Context, idb bun.IDB, entities []*T) ([]string, error) {
	if len(entities) == 0 {
		return []string{}, nil
	}
	pk, err := r.pkField()
	if err != nil {
		return nil, err
	}
	prefix, ok := KeyPrefixFor(r.table.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntityType, r.table.TypeName)
	}

	ids := make([]string, 0, len(entities))
	for _, entity := range entities {
		idValue := pk.Value(reflect.ValueOf(entity).Elem())
		if idValue.String() != "" {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyHasID, idValue.String())
		}
		id := GeneratePrimaryKey(prefix)
		idValue.SetString(id)
		ids = append(ids, id)
	}

	if _, err := idb.NewInsert().Model(&entities).Exec(ctx); err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateByID merges the supplied fields into the stored row. Fields the
// entity does not have are silently ignored, the primary key is never
// overwritten, and updated_at is bumped when the entity tracks it. Returns
// the refreshed entity, or nil when the identifier is absent.
func (r *baseRepositoryImpl[T]) UpdateByID(ctx context.Context, id string, fields map[string]interface{}) (*T, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	pk, err := r.pkField()
	if err != nil {
		return nil, err
	}

	q := r.db.NewUpdate().Model((*T)(nil)).Where("? = ?", bun.Ident(pk.Name), id)
	touched := false
	for name, value := range fields {
		field, ok := r.table.FieldMap[name]
		if !ok || field.Name == pk.Name {
			continue
		}
		q = q.Set("? = ?", bun.Ident(field.Name), value)
		touched = true
	}
	if touched {
		if _, tracks := r.table.FieldMap[updatedAtColumn]; tracks {
			if _, supplied := fields[updatedAtColumn]; !supplied {
				q = q.Set("? = ?", bun.Ident(updatedAtColumn), time.Now())
			}
		}
		if _, err := q.Exec(ctx); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *baseRepositoryImpl[T]) UpdateTx(ctx context.Context, tx *bun.Tx, entity *T) error {
	_, err := tx.NewUpdate().Model(entity).WherePK().Exec(ctx)
	return err
}

// DeleteByID physically removes the row. Soft deletion is expressed by
// callers as an update setting the flag, not by this primitive.
func (r *baseRepositoryImpl[T]) DeleteByID(ctx context.Context, id string) (bool, error) {
	return r.deleteIn(ctx, r.db, id)
}

func (r *baseRepositoryImpl[T]) DeleteTx(ctx context.Context, tx *bun.Tx, id string) (bool, error) {
	return r.deleteIn(ctx, tx, id)
}

func (r *baseRepositoryImpl[T]) deleteIn(ctx context.Context, idb bun.IDB, id string) (bool, error) {
	pk, err := r.pkField()
	if err != nil {
		return false, err
	}
	res, err := idb.NewDelete().Model((*T)(nil)).Where("? = ?", bun.Ident(pk.Name), id).Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
