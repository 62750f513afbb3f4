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
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAssignsPrefixedIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	ctx := context.Background()

	ids, err := repo.Create(ctx, &testItem{Name: "alpha"}, &testItem{Name: "beta"})
	require.NoError(t, err)
	require.Len(t, ids, 2)

	pattern := regexp.MustCompile(`^ITM_[0-9A-F]{8}$`)
	for _, id := range ids {
		assert.Regexp(t, pattern, id)
	}
	assert.NotEqual(t, ids[0], ids[1])

	first, err := repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "alpha", first.Name)
}

func TestCreateRejectsPresetID(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	ctx := context.Background()

	_, err := repo.Create(ctx, &testItem{ID: "ITM_DEADBEEF", Name: "x"}, &testItem{Name: "y"})
	require.ErrorIs(t, err, ErrAlreadyHasID)

	// The rejection covers the whole batch.
	count, err := db.NewSelect().Model((*testItem)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateUnregisteredType(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testNote](db)

	_, err := repo.Create(context.Background(), &testNote{Body: "hello"})
	require.ErrorIs(t, err, ErrUnknownEntityType)
}

func TestCreateBatchIsAtomic(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	ctx := context.Background()

	// Second entity violates the unique name constraint, so the whole
	// batch must roll back.
	_, err := repo.Create(ctx, &testItem{Name: "dup"}, &testItem{Name: "dup"})
	require.Error(t, err)

	count, err := db.NewSelect().Model((*testItem)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateEmptyBatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)

	ids, err := repo.Create(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestGetByIDAbsent(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)

	entity, err := repo.GetByID(context.Background(), "ITM_00000000")
	require.NoError(t, err)
	assert.Nil(t, entity)
}

func TestGetOne(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	ctx := context.Background()
	seedItems(t, db,
		&testItem{ID: "ITM_00000001", Name: "alpha", Score: 1},
		&testItem{ID: "ITM_00000002", Name: "beta", Score: 2},
	)

	entity, err := repo.GetOne(ctx, map[string]interface{}{"name": "beta"})
	require.NoError(t, err)
	require.NotNil(t, entity)
	assert.Equal(t, "ITM_00000002", entity.ID)

	absent, err := repo.GetOne(ctx, map[string]interface{}{"name": "gamma"})
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestUpdateByIDMergesKnownFields(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	ctx := context.Background()
	seedItems(t, db, &testItem{ID: "ITM_00000001", Name: "alpha", Score: 1})

	updated, err := repo.UpdateByID(ctx, "ITM_00000001", map[string]interface{}{
		"score":    9,
		"bogus":    "ignored",
		"id":       "ITM_HIJACKED",
		"nonsense": 42,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "ITM_00000001", updated.ID)
	assert.Equal(t, 9, updated.Score)
	assert.Equal(t, "alpha", updated.Name)
	assert.False(t, updated.UpdatedAt.IsZero(), "updated_at should be bumped")
}

func TestUpdateByIDAbsent(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)

	updated, err := repo.UpdateByID(context.Background(), "ITM_00000000",
		map[string]interface{}{"score": 1})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUpdateByIDKeepsSuppliedTimestamp(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	ctx := context.Background()
	seedItems(t, db, &testItem{ID: "ITM_00000001", Name: "alpha"})

	pinned := time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC)
	updated, err := repo.UpdateByID(ctx, "ITM_00000001", map[string]interface{}{
		"score":      3,
		"updated_at": pinned,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, pinned.Unix(), updated.UpdatedAt.Unix())
}

func TestDeleteByIDIdempotence(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	ctx := context.Background()
	seedItems(t, db, &testItem{ID: "ITM_00000001", Name: "alpha"})

	deleted, err := repo.DeleteByID(ctx, "ITM_00000001")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteByID(ctx, "ITM_00000001")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGetAll(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	seedItems(t, db,
		&testItem{ID: "ITM_00000001", Name: "alpha"},
		&testItem{ID: "ITM_00000002", Name: "beta"},
	)

	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestQuery(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	seedItems(t, db,
		&testItem{ID: "ITM_00000001", Name: "alpha", Score: 10},
		&testItem{ID: "ITM_00000002", Name: "beta", Score: 20},
	)

	rows, err := repo.Query(context.Background(), "score > ?", 15)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "beta", rows[0].Name)
}

func TestCreateTxRollback(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository[testItem](db)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = repo.CreateTx(ctx, &tx, &testItem{Name: "ephemeral"})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	count, err := db.NewSelect().Model((*testItem)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
