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
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/egret-io/egret/types"
)

// ApplySorting appends one ORDER BY clause per spec, in sequence order, so
// earlier entries take tie-break precedence. An absent direction defaults to
// ascending; specs with an unresolvable field or a direction outside
// {asc, desc} are skipped entirely.
func ApplySorting(q *bun.SelectQuery, table *schema.Table, specs []types.SortBy) *bun.SelectQuery {
	for _, spec := range specs {
		if spec.Field == "" {
			continue
		}
		order := strings.ToLower(spec.Order)
		if order == "" {
			order = types.OrderAsc
		}
		if order != types.OrderAsc && order != types.OrderDesc {
			continue
		}
		field, ok := table.FieldMap[spec.Field]
		if !ok {
			continue
		}
		q = q.OrderExpr("? ?", bun.Ident(field.Name), bun.Safe(strings.ToUpper(order)))
	}
	return q
}
