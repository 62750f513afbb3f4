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

package category

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/egret-io/egret"
	"github.com/egret-io/egret/types"
)

// ErrNotFound signals that no category exists for the given identifier.
var ErrNotFound = errors.New("category not found")

// Service exposes category operations wrapped in the API response
// envelopes.
type Service struct {
	base egret.Service[Category]
}

// NewService returns a category service using the global database
// connection.
func NewService() *Service {
	return &Service{base: egret.NewService[Category]()}
}

// NewServiceWithDB returns a category service bound to the given Bun DB.
func NewServiceWithDB(db *bun.DB) *Service {
	return &Service{base: egret.NewServiceWithDB[Category](db)}
}

// List returns the paged category listing matching the request.
func (s *Service) List(ctx context.Context, req *ListRequest) (*types.ApiListResponse, error) {
	generic := req.toGeneric()
	result, err := s.base.List(ctx, generic)
	if err != nil {
		return nil, err
	}
	return &types.ApiListResponse{
		Message: "Categories retrieved successfully",
		Data:    result.Data,
		Page:    types.NewPageInfo(result, generic.Pagination.Page, generic.Pagination.Limit),
	}, nil
}

// Create persists a new category and reports its assigned identifier.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*types.ApiCreateResponse, error) {
	id, err := s.base.CreateOne(ctx, req.model())
	if err != nil {
		return nil, err
	}
	return &types.ApiCreateResponse{
		Message: "Category created successfully",
		ID:      id,
	}, nil
}

// Get returns the category with the given identifier, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*types.ApiResponse[*Category], error) {
	obj, err := s.base.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, ErrNotFound
	}
	return &types.ApiResponse[*Category]{
		Message: "Category retrieved successfully",
		Data:    obj,
	}, nil
}

// Update merges the supplied fields into the category and reports the new
// modification timestamp. Absent identifiers yield ErrNotFound.
func (s *Service) Update(ctx context.Context, id string, req *UpdateRequest) (*types.ApiUpdateResponse, error) {
	updated, err := s.base.UpdateByID(ctx, id, req.fields())
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	return &types.ApiUpdateResponse{
		Message:    "Category updated successfully",
		ID:         id,
		ModifiedAt: updated.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// Delete soft-deletes the category, reporting whether it existed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.base.SoftDeleteByID(ctx, id)
}
