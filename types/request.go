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

package types

// Pagination limits.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 1000
)

// Pagination is an offset-based page request. Zero values are filled and
// out-of-range values are clamped by Normalize rather than rejected.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize clamps Page to at least 1 and Limit into [1, MaxLimit],
// defaulting Limit to DefaultLimit when unset.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset returns the row offset for the current page.
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Sort directions.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// SortBy is one ordering key. Entries earlier in a sort sequence take
// precedence over later ones. An empty Order sorts ascending.
type SortBy struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// ListRequest is the declarative list envelope consumed by the generic
// service: filters, free-text search, pagination, ordering, soft-delete
// visibility, and an optional column projection.
//
// Filter values may be bare scalars (equality), Condition values, or
// DateRange values; the service normalizes them before they reach the
// repository.
type ListRequest struct {
	Filters        map[string]interface{} `json:"filters,omitempty"`
	Search         *Search                `json:"search,omitempty"`
	Pagination     *Pagination            `json:"pagination,omitempty"`
	SortBy         []SortBy               `json:"sort_by,omitempty"`
	IncludeDeleted bool                   `json:"include_deleted,omitempty"`
	Columns        []string               `json:"columns,omitempty"`
}
