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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/egret-io/egret/types"
)

func seedListFixture(t *testing.T, db *bun.DB) {
	t.Helper()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	seedItems(t, db,
		&testItem{ID: "ITM_00000001", Name: "apple", Score: 10, CreatedAt: base},
		&testItem{ID: "ITM_00000002", Name: "banana", Score: 20, CreatedAt: base.Add(time.Hour)},
		&testItem{ID: "ITM_00000003", Name: "cherry", Score: 30, CreatedAt: base.Add(2 * time.Hour)},
		&testItem{ID: "ITM_00000004", Name: "durian", Score: 40, CreatedAt: base.Add(3 * time.Hour), IsDeleted: true},
	)
}

func listNames(result *types.PagedResult) []string {
	names := make([]string, 0, len(result.Data))
	for _, record := range result.Data {
		names = append(names, record["name"].(string))
	}
	return names
}

func TestListExcludesSoftDeletedByDefault(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	seedListFixture(t, db)

	result, err := repo.List(context.Background(), &ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)
	assert.NotContains(t, listNames(result), "durian")
}

func TestListIncludeDeleted(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	seedListFixture(t, db)

	result, err := repo.List(context.Background(), &ListOptions{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalCount)
}

func TestListExplicitDeletedFilterWins(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	seedListFixture(t, db)

	result, err := repo.List(context.Background(), &ListOptions{
		Filters: map[string]interface{}{"is_deleted": types.Eq(true)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalCount)
	assert.Equal(t, []string{"durian"}, listNames(result))
}

func TestListCountsBeforePagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	seedListFixture(t, db)

	result, err := repo.List(context.Background(), &ListOptions{
		SortBy: []types.SortBy{{Field: "name", Order: types.OrderAsc}},
		Limit:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, []string{"apple", "banana"}, listNames(result))

	result, err = repo.List(context.Background(), &ListOptions{
		SortBy: []types.SortBy{{Field: "name", Order: types.OrderAsc}},
		Skip:   2,
		Limit:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, []string{"cherry"}, listNames(result))
}

func TestListBeyondLastPage(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	seedListFixture(t, db)

	result, err := repo.List(context.Background(), &ListOptions{Skip: 100, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)
	assert.Empty(t, result.Data)
}

func TestListFilterOperators(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	seedListFixture(t, db)
	ctx := context.Background()

	cases := []struct {
		name    string
		filters map[string]interface{}
		want    []string
	}{
		{"bare scalar equality", map[string]interface{}{"name": "apple"}, []string{"apple"}},
		{"like", map[string]interface{}{"name": types.Like("%an%")}, []string{"banana"}},
		{"in", map[string]interface{}{"name": types.In("apple", "cherry")}, []string{"apple", "cherry"}},
		{"nin", map[string]interface{}{"name": types.NotIn("apple", "cherry")}, []string{"banana"}},
		{"gt", map[string]interface{}{"score": types.Gt(10)}, []string{"banana", "cherry"}},
		{"gte", map[string]interface{}{"score": types.Gte(20)}, []string{"banana", "cherry"}},
		{"lt", map[string]interface{}{"score": types.Lt(20)}, []string{"apple"}},
		{"lte", map[string]interface{}{"score": types.Lte(20)}, []string{"apple", "banana"}},
		{"between", map[string]interface{}{"score": types.Between(15, 30)}, []string{"banana", "cherry"}},
		{"and-combined", map[string]interface{}{
			"score": types.Gte(10),
			"name":  types.Like("%a%"),
		}, []string{"apple", "banana"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := repo.List(ctx, &ListOptions{
				Filters: tc.filters,
				SortBy:  []types.SortBy{{Field: "name", Order: types.OrderAsc}},
			})
			require.NoError(t, err)
			assert.Equal(t, tc.want, listNames(result))
		})
	}
}

func TestListSkipsUnresolvableAndMalformedFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	seedListFixture(t, db)
	ctx := context.Background()

	// Unknown field names, a malformed between, and an unsupported
	// operator all degrade to "no predicate".
	result, err := repo.List(ctx, &ListOptions{
		Filters: map[string]interface{}{
			"no_such_column": "x",
			"score":          types.Condition{Op: types.OpBetween, Value: []interface{}{1}},
			"name":           types.Condition{Op: "regex", Value: ".*"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)
}

func TestListSorting(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	seedItems(t, db,
		&testItem{ID: "ITM_00000001", Name: "apple", Score: 20},
		&testItem{ID: "ITM_00000002", Name: "banana", Score: 10},
		&testItem{ID: "ITM_00000003", Name: "cherry", Score: 10},
	)
	ctx := context.Background()

	result, err := repo.List(ctx, &ListOptions{
		SortBy: []types.SortBy{
			{Field: "score", Order: types.OrderAsc},
			{Field: "name", Order: types.OrderDesc},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"cherry", "banana", "apple"}, listNames(result))

	// An omitted direction means ascending.
	result, err = repo.List(ctx, &ListOptions{
		SortBy: []types.SortBy{{Field: "name"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "banana", "cherry"}, listNames(result))

	// Invalid specs are skipped; the remaining spec still applies.
	result, err = repo.List(ctx, &ListOptions{
		SortBy: []types.SortBy{
			{Field: "no_such_column", Order: types.OrderAsc},
			{Field: "score", Order: "sideways"},
			{Field: "name", Order: "DESC"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"cherry", "banana", "apple"}, listNames(result))
}

func TestListColumnProjection(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	seedListFixture(t, db)

	result, err := repo.List(context.Background(), &ListOptions{
		Columns: []string{"name", "no_such_column"},
		SortBy:  []types.SortBy{{Field: "name", Order: types.OrderAsc}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Data)
	for _, record := range result.Data {
		assert.Len(t, record, 1)
		assert.Contains(t, record, "name")
	}
}

func TestListProjectionFallsBackWhenNothingResolves(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	seedListFixture(t, db)

	// With no resolvable column the projection is dropped and full
	// records come back.
	result, err := repo.List(context.Background(), &ListOptions{
		Columns: []string{"no_such_column"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Data)
	for _, record := range result.Data {
		assert.Contains(t, record, "name")
		assert.Contains(t, record, "score")
		assert.Contains(t, record, "is_deleted")
	}
}

func TestListRecordTimestampSerialization(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	seedItems(t, db, &testItem{ID: "ITM_00000001", Name: "apple", CreatedAt: created})

	result, err := repo.List(context.Background(), &ListOptions{})
	require.NoError(t, err)
	require.Len(t, result.Data, 1)

	record := result.Data[0]
	createdAt, ok := record["created_at"].(string)
	require.True(t, ok, "created_at should serialize as a string")
	parsed, err := time.Parse(time.RFC3339, createdAt)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(created))

	// The zero updated_at renders as nil, not as an epoch artifact.
	assert.Nil(t, record["updated_at"])
}

func TestListNilOptions(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	seedListFixture(t, db)

	result, err := repo.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)
}
