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

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/egret-io/egret/types"
)

// ListOptions describes one paged query: declarative filters, ordering,
// offset-based pagination, soft-delete visibility, and an optional column
// projection.
type ListOptions struct {
	Filters        map[string]interface{}
	SortBy         []types.SortBy
	Skip           int
	Limit          int
	IncludeDeleted bool

	// Columns restricts the returned records to the named columns. Names
	// the entity does not have are skipped; when none resolve, the full
	// column set is returned.
	Columns []string
}

// CrudRepository defines identifier-keyed access and mutations for a generic
// entity type. Absent rows are reported as nil results, not errors.
type CrudRepository[T any] interface {
	// GetByID returns the entity with the given identifier, or nil.
	GetByID(ctx context.Context, id string) (*T, error)

	// GetAll returns every entity of the type.
	GetAll(ctx context.Context) ([]*T, error)

	// GetOne returns the first entity matching the equality-only filters, or nil.
	GetOne(ctx context.Context, filters map[string]interface{}) (*T, error)

	// Query executes a raw WHERE clause and maps the results to entities.
	Query(ctx context.Context, query string, args ...interface{}) ([]*T, error)

	// Create assigns freshly generated identifiers, persists the whole batch
	// in one transaction, and returns the identifiers in input order.
	Create(ctx context.Context, entities ...*T) ([]string, error)

	// UpdateByID merges the supplied fields into the stored entity and
	// returns its refreshed state, or nil when the identifier is absent.
	UpdateByID(ctx context.Context, id string, fields map[string]interface{}) (*T, error)

	// DeleteByID physically removes the entity, reporting whether a row existed.
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// PagedQueryRepository defines the paged listing contract every entity type
// satisfies uniformly.
type PagedQueryRepository[T any] interface {
	List(ctx context.Context, opts *ListOptions) (*types.PagedResult, error)
}

// TransactionRepository defines mutations executed within a caller-owned
// transaction, for composing multi-entity units of work.
type TransactionRepository[T any] interface {
	CreateTx(ctx context.Context, tx *bun.Tx, entities ...*T) ([]string, error)
	UpdateTx(ctx context.Context, tx *bun.Tx, entity *T) error
	DeleteTx(ctx context.Context, tx *bun.Tx, id string) (bool, error)
}

// Repository combines CRUD, paged listing, and transactional operations and
// exposes Bun query builders for advanced use cases.
type Repository[T any] interface {
	CrudRepository[T]
	PagedQueryRepository[T]
	TransactionRepository[T]
	Table() *schema.Table
	Dialect() schema.Dialect
	NewSelect() *bun.SelectQuery
	NewInsert() *bun.InsertQuery
	NewUpdate() *bun.UpdateQuery
	NewDelete() *bun.DeleteQuery
}
