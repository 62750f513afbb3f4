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

// Record is a materialized row as a field→value mapping. Timestamp values are
// serialized as ISO-8601 strings; all other values pass through unchanged.
type Record map[string]interface{}

// PagedResult is the uniform paged envelope produced by the repository:
// the rows of the current page plus the count of all matching rows.
type PagedResult struct {
	Data       []Record `json:"data"`
	TotalCount int      `json:"total_count"`
}

// PageInfo carries pagination metadata for list responses.
type PageInfo struct {
	Count      int `json:"count"`
	TotalCount int `json:"total_count"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
}

// NewPageInfo builds page metadata from a paged result and the request that
// produced it.
func NewPageInfo(result *PagedResult, page, limit int) PageInfo {
	return PageInfo{
		Count:      len(result.Data),
		TotalCount: result.TotalCount,
		Page:       page,
		Limit:      limit,
	}
}

// ApiResponse is the generic single-object response envelope.
type ApiResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

// ApiListResponse is the paged list response envelope.
type ApiListResponse struct {
	Message string   `json:"message"`
	Data    []Record `json:"data"`
	Page    PageInfo `json:"page"`
}

// ApiCreateResponse reports the identifier assigned on creation.
type ApiCreateResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ApiUpdateResponse reports a successful update with the refreshed
// modification timestamp as an ISO-8601 string.
type ApiUpdateResponse struct {
	Message    string `json:"message"`
	ID         string `json:"id"`
	ModifiedAt string `json:"modified_at"`
}
