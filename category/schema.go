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
	"github.com/egret-io/egret/types"
)

// Filters is the declared filter surface for category listings. Nil
// members are omitted from the query.
type Filters struct {
	Name      *types.Condition `json:"name,omitempty"`
	CreatedAt *types.DateRange `json:"created_at,omitempty"`
	UpdatedAt *types.DateRange `json:"updated_at,omitempty"`
}

// Map converts the typed filter surface into the generic filter mapping.
func (f *Filters) Map() map[string]interface{} {
	filters := map[string]interface{}{}
	if f == nil {
		return filters
	}
	if f.Name != nil {
		filters["name"] = *f.Name
	}
	if f.CreatedAt != nil {
		filters["created_at"] = *f.CreatedAt
	}
	if f.UpdatedAt != nil {
		filters["updated_at"] = *f.UpdatedAt
	}
	return filters
}

// ListRequest is the inbound envelope for category listings.
type ListRequest struct {
	Filters    *Filters          `json:"filters,omitempty"`
	Search     *types.Search     `json:"search,omitempty"`
	Pagination *types.Pagination `json:"pagination,omitempty"`
	SortBy     []types.SortBy    `json:"sort_by,omitempty"`
	Columns    []string          `json:"columns,omitempty"`
}

func (r *ListRequest) toGeneric() *types.ListRequest {
	if r == nil {
		return &types.ListRequest{}
	}
	return &types.ListRequest{
		Filters:    r.Filters.Map(),
		Search:     r.Search,
		Pagination: r.Pagination,
		SortBy:     r.SortBy,
		Columns:    r.Columns,
	}
}

// CreateRequest carries the writable fields for a new category.
type CreateRequest struct {
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Metadata    types.JsonObject `json:"metadata,omitempty"`
}

func (r *CreateRequest) model() *Category {
	return &Category{
		Name:        r.Name,
		Description: r.Description,
		Metadata:    r.Metadata,
	}
}

// UpdateRequest carries the updatable fields. Nil members are left
// untouched.
type UpdateRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Metadata    types.JsonObject `json:"metadata,omitempty"`
}

func (r *UpdateRequest) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r == nil {
		return fields
	}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Metadata != nil {
		fields["metadata"] = r.Metadata
	}
	return fields
}
