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
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

type testItem struct {
	bun.BaseModel `bun:"table:test_items,alias:ti"`

	ID        string    `bun:"id,pk"`
	Name      string    `bun:"name,unique,notnull"`
	Score     int       `bun:"score,notnull,default:0"`
	IsDeleted bool      `bun:"is_deleted,notnull,default:false"`
	CreatedAt time.Time `bun:"created_at,nullzero"`
	UpdatedAt time.Time `bun:"updated_at,nullzero"`
}

// testNote has no soft-delete flag and no registered key prefix.
type testNote struct {
	bun.BaseModel `bun:"table:test_notes,alias:tn"`

	ID   string `bun:"id,pk"`
	Body string `bun:"body"`
}

func init() {
	RegisterKeyPrefix[testItem]("ITM")
}

// newTestDB opens a per-test in-memory SQLite database and creates the
// test tables.
func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)
	sqldb.SetConnMaxIdleTime(0)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	ctx := context.Background()
	for _, model := range []interface{}{(*testItem)(nil), (*testNote)(nil)} {
		_, err = db.NewCreateTable().Model(model).IfNotExists().Exec(ctx)
		require.NoError(t, err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// seedItems inserts items with pre-assigned IDs, bypassing Create so tests
// control identifiers and timestamps.
func seedItems(t *testing.T, db *bun.DB, items ...*testItem) {
	t.Helper()
	_, err := db.NewInsert().Model(&items).Exec(context.Background())
	require.NoError(t, err)
}
