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

package database

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// CreateTables creates the tables for every registered model, in priority
// order, skipping those that already exist.
func CreateTables(ctx context.Context, db *bun.DB, logger Logger) error {
	models := RegisteredModels()
	if len(models) == 0 {
		if logger != nil {
			logger.Warn("No models registered, skipping table creation")
		}
		return nil
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model.Instance).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", model.Instance, err)
		}
		if logger != nil {
			logger.Debug("Ensured table exists", "model", fmt.Sprintf("%T", model.Instance))
		}
	}
	if logger != nil {
		logger.Info("Table creation completed", "models", len(models))
	}
	return nil
}
