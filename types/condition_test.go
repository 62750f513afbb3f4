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

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionUnmarshalTagged(t *testing.T) {
	var c Condition
	require.NoError(t, json.Unmarshal([]byte(`{"op":"gte","value":10}`), &c))
	assert.Equal(t, OpGte, c.Op)
	assert.Equal(t, float64(10), c.Value)
}

func TestConditionUnmarshalBareScalar(t *testing.T) {
	var c Condition
	require.NoError(t, json.Unmarshal([]byte(`"electronics"`), &c))
	assert.Equal(t, OpEq, c.Op)
	assert.Equal(t, "electronics", c.Value)

	require.NoError(t, json.Unmarshal([]byte(`42`), &c))
	assert.Equal(t, OpEq, c.Op)
	assert.Equal(t, float64(42), c.Value)
}

func TestConditionUnmarshalList(t *testing.T) {
	var c Condition
	require.NoError(t, json.Unmarshal([]byte(`{"op":"in","value":["a","b"]}`), &c))
	assert.Equal(t, OpIn, c.Op)
	assert.Equal(t, []interface{}{"a", "b"}, c.Value)
}

func TestOperatorValid(t *testing.T) {
	for _, op := range []Operator{OpEq, OpIn, OpNin, OpGt, OpGte, OpLt, OpLte, OpLike, OpBetween} {
		assert.True(t, op.Valid(), string(op))
	}
	assert.False(t, Operator("regex").Valid())
}

func TestDateRangeCondition(t *testing.T) {
	c := DateRange{From: "2024-01-01", To: "2024-12-31"}.Condition()
	assert.Equal(t, OpBetween, c.Op)
	assert.Equal(t, []interface{}{"2024-01-01", "2024-12-31"}, c.Value)
}

func TestPaginationNormalize(t *testing.T) {
	cases := []struct {
		name      string
		in        Pagination
		wantPage  int
		wantLimit int
	}{
		{"zero values", Pagination{}, 1, DefaultLimit},
		{"negative page", Pagination{Page: -3, Limit: 20}, 1, 20},
		{"negative limit", Pagination{Page: 2, Limit: -5}, 2, 1},
		{"limit above cap", Pagination{Page: 2, Limit: 5000}, 2, MaxLimit},
		{"in range", Pagination{Page: 4, Limit: 25}, 4, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.Normalize()
			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantLimit, p.Limit)
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	p := Pagination{Page: 3, Limit: 25}
	assert.Equal(t, 50, p.Offset())
}

func TestNewPageInfo(t *testing.T) {
	result := &PagedResult{
		Data:       []Record{{"id": "X_01"}, {"id": "X_02"}},
		TotalCount: 41,
	}
	page := NewPageInfo(result, 2, 10)
	assert.Equal(t, PageInfo{Count: 2, TotalCount: 41, Page: 2, Limit: 10}, page)
}
