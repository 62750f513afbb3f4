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

// Package egret is a generic resource data-access layer: every entity type
// shares one implementation of paged listing, filtering, sorting, soft
// deletion, and CRUD against a relational store through Bun.
package egret

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"

	"github.com/egret-io/egret/database"
	"github.com/egret-io/egret/repository"
	"github.com/egret-io/egret/types"
	"github.com/egret-io/egret/utils"
)

const defaultSearchField = "name"

// Service wraps the generic repository with the input normalization shared by
// every resource type: pagination clamping, filter and sort conversion, and
// uniform error handling. Unexpected lower-layer failures surface as the
// opaque ErrInternal; absence stays a typed nil/false result.
type Service[T any] interface {
	// List validates and normalizes the request envelope, then returns the
	// raw paged result to be wrapped by the caller layer.
	List(ctx context.Context, req *types.ListRequest) (*types.PagedResult, error)

	// Get returns the entity with the given identifier, or nil.
	Get(ctx context.Context, id string) (*T, error)

	// GetOne returns the first entity matching the equality-only filters, or nil.
	GetOne(ctx context.Context, filters map[string]interface{}) (*T, error)

	// Create persists the batch atomically and returns the assigned
	// identifiers in input order.
	Create(ctx context.Context, entities ...*T) ([]string, error)

	// CreateOne persists a single entity and returns its identifier.
	CreateOne(ctx context.Context, entity *T) (string, error)

	// UpdateByID merges the supplied fields and returns the refreshed
	// entity, or nil when the identifier is absent.
	UpdateByID(ctx context.Context, id string, fields map[string]interface{}) (*T, error)

	// DeleteByID hard-deletes, reporting whether a row existed.
	DeleteByID(ctx context.Context, id string) (bool, error)

	// SoftDeleteByID marks the entity deleted when the type carries a
	// soft-delete flag, falling back to hard removal when it does not.
	SoftDeleteByID(ctx context.Context, id string) (bool, error)

	// Repository exposes the underlying generic repository for advanced use.
	Repository() repository.Repository[T]
}

type baseServiceImpl[T any] struct {
	db     *bun.DB
	name   string
	logger *logrus.Logger

	repo repository.Repository[T]
	once sync.Once
}

// NewService returns a Service backed by the global database connection,
// resolved lazily on first use.
func NewService[T any]() Service[T] {
	return newBaseServiceImpl[T](nil)
}

// NewServiceWithDB returns a Service backed by the provided Bun DB.
func NewServiceWithDB[T any](db *bun.DB) Service[T] {
	return newBaseServiceImpl[T](db)
}

func newBaseServiceImpl[T any](db *bun.DB) *baseServiceImpl[T] {
	return &baseServiceImpl[T]{
		db:     db,
		name:   reflect.TypeOf((*T)(nil)).Elem().Name(),
		logger: utils.NewLogger("SERVICE"),
	}
}

func (s *baseServiceImpl[T]) Repository() repository.Repository[T] {
	s.once.Do(func() {
		db := s.db
		if db == nil {
			db = database.GetDB()
		}
		s.repo = repository.NewRepository[T](db)
	})
	return s.repo
}

func (s *baseServiceImpl[T]) List(ctx context.Context, req *types.ListRequest) (*types.PagedResult, error) {
	if req == nil {
		req = &types.ListRequest{}
	}
	page := req.Pagination
	if page == nil {
		page = &types.Pagination{}
		req.Pagination = page
	}
	page.Normalize()

	sortBy := req.SortBy
	if len(sortBy) == 0 {
		sortBy = []types.SortBy{{Field: "created_at", Order: types.OrderDesc}}
	}

	result, err := s.Repository().List(ctx, &repository.ListOptions{
		Filters:        processFilters(req),
		SortBy:         sortBy,
		Skip:           page.Offset(),
		Limit:          page.Limit,
		IncludeDeleted: req.IncludeDeleted,
		Columns:        req.Columns,
	})
	if err != nil {
		return nil, s.fail("list", err)
	}
	return result, nil
}

func (s *baseServiceImpl[T]) Get(ctx context.Context, id string) (*T, error) {
	entity, err := s.Repository().GetByID(ctx, id)
	if err != nil {
		return nil, s.fail("get", err)
	}
	return entity, nil
}

func (s *baseServiceImpl[T]) GetOne(ctx context.Context, filters map[string]interface{}) (*T, error) {
	entity, err := s.Repository().GetOne(ctx, filters)
	if err != nil {
		return nil, s.fail("get_one", err)
	}
	return entity, nil
}

func (s *baseServiceImpl[T]) Create(ctx context.Context, entities ...*T) ([]string, error) {
	ids, err := s.Repository().Create(ctx, entities...)
	if err != nil {
		return nil, s.fail("create", err)
	}
	return ids, nil
}

func (s *baseServiceImpl[T]) CreateOne(ctx context.Context, entity *T) (string, error) {
	ids, err := s.Create(ctx, entity)
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

func (s *baseServiceImpl[T]) UpdateByID(ctx context.Context, id string, fields map[string]interface{}) (*T, error) {
	entity, err := s.Repository().UpdateByID(ctx, id, fields)
	if err != nil {
		return nil, s.fail("update_by_id", err)
	}
	return entity, nil
}

func (s *baseServiceImpl[T]) DeleteByID(ctx context.Context, id string) (bool, error) {
	deleted, err := s.Repository().DeleteByID(ctx, id)
	if err != nil {
		return false, s.fail("delete_by_id", err)
	}
	return deleted, nil
}

func (s *baseServiceImpl[T]) SoftDeleteByID(ctx context.Context, id string) (bool, error) {
	repo := s.Repository()
	if _, soft := repo.Table().FieldMap["is_deleted"]; !soft {
		return s.DeleteByID(ctx, id)
	}
	entity, err := repo.UpdateByID(ctx, id, map[string]interface{}{"is_deleted": true})
	if err != nil {
		return false, s.fail("soft_delete_by_id", err)
	}
	return entity != nil, nil
}

// fail implements the propagation policy: typed rejections pass through,
// anything else is logged with the operation name and re-signaled as the
// opaque internal failure.
func (s *baseServiceImpl[T]) fail(op string, err error) error {
	if errors.Is(err, repository.ErrAlreadyHasID) || errors.Is(err, repository.ErrUnknownEntityType) {
		return err
	}
	s.logger.Errorf("%s.%s: %v", s.name, op, err)
	return ErrInternal
}

// processFilters converts the caller's declared filter values into the
// mapping form the repository interprets: Condition values pass through,
// date ranges become "between" conditions, bare scalars stay as equality.
// Nil entries are omitted entirely. The search shorthand becomes a
// wildcarded "like" condition unless the field is already filtered.
func processFilters(req *types.ListRequest) map[string]interface{} {
	filters := make(map[string]interface{}, len(req.Filters)+1)
	for name, raw := range req.Filters {
		if raw == nil {
			continue
		}
		switch v := raw.(type) {
		case types.Condition:
			filters[name] = v
		case *types.Condition:
			if v != nil {
				filters[name] = *v
			}
		case types.DateRange:
			filters[name] = v.Condition()
		case *types.DateRange:
			if v != nil {
				filters[name] = v.Condition()
			}
		default:
			filters[name] = raw
		}
	}

	if search := req.Search; search != nil && search.Value != "" {
		field := search.Field
		if field == "" {
			field = defaultSearchField
		}
		if _, exists := filters[field]; !exists {
			filters[field] = types.Like("%" + search.Value + "%")
		}
	}
	return filters
}
