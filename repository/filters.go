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
	"reflect"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/egret-io/egret/types"
	"github.com/egret-io/egret/utils"
)

var log = utils.NewLogger("REPOSITORY")

// ApplyFilters refines the select query with one predicate per filter entry,
// all AND-combined. Field names resolve against the entity's schema table;
// unresolvable names are silently skipped. Bare values emit an equality
// predicate, types.Condition values dispatch on their operator.
//
// Malformed "between" values and unsupported operators are skipped with a
// logged warning rather than failing the query.
func ApplyFilters(q *bun.SelectQuery, table *schema.Table, filters map[string]interface{}) *bun.SelectQuery {
	for name, raw := range filters {
		field, ok := table.FieldMap[name]
		if !ok {
			continue
		}
		cond, ok := asCondition(raw)
		if !ok {
			q = q.Where("? = ?", bun.Ident(field.Name), raw)
			continue
		}
		q = applyCondition(q, field, cond)
	}
	return q
}

func applyCondition(q *bun.SelectQuery, field *schema.Field, cond types.Condition) *bun.SelectQuery {
	col := bun.Ident(field.Name)
	switch cond.Op {
	case types.OpEq, "":
		return q.Where("? = ?", col, cond.Value)
	case types.OpIn:
		values, ok := valueSlice(cond.Value)
		if !ok {
			log.Warnf("filter %q: in operator requires a list value", field.Name)
			return q
		}
		return q.Where("? IN (?)", col, bun.In(values))
	case types.OpNin:
		values, ok := valueSlice(cond.Value)
		if !ok {
			log.Warnf("filter %q: nin operator requires a list value", field.Name)
			return q
		}
		return q.Where("? NOT IN (?)", col, bun.In(values))
	case types.OpGt:
		return q.Where("? > ?", col, cond.Value)
	case types.OpGte:
		return q.Where("? >= ?", col, cond.Value)
	case types.OpLt:
		return q.Where("? < ?", col, cond.Value)
	case types.OpLte:
		return q.Where("? <= ?", col, cond.Value)
	case types.OpLike:
		return q.Where("? LIKE ?", col, cond.Value)
	case types.OpBetween:
		values, ok := valueSlice(cond.Value)
		if !ok || len(values) != 2 {
			log.Warnf("filter %q: between operator requires exactly two values", field.Name)
			return q
		}
		return q.Where("? BETWEEN ? AND ?", col, values[0], values[1])
	default:
		log.Warnf("unsupported filter operation: %s", cond.Op)
		return q
	}
}

func asCondition(raw interface{}) (types.Condition, bool) {
	switch v := raw.(type) {
	case types.Condition:
		return v, true
	case *types.Condition:
		if v == nil {
			return types.Condition{}, false
		}
		return *v, true
	}
	return types.Condition{}, false
}

// valueSlice flattens any slice or array value into []interface{}.
func valueSlice(value interface{}) ([]interface{}, bool) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
