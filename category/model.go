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

// Package category is the reference resource built on the generic
// data-access layer.
package category

import (
	"github.com/uptrace/bun"

	"github.com/egret-io/egret/database"
	"github.com/egret-io/egret/repository"
	"github.com/egret-io/egret/types"
)

// KeyPrefix is the identifier prefix for categories, yielding IDs like
// CAT_A1B2C3D4.
const KeyPrefix = "CAT"

// auditModel aliases database.BaseModel so it can be embedded alongside
// bun.BaseModel without an embedded-field name collision.
type auditModel = database.BaseModel

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID          string           `bun:"id,pk" json:"id"`
	Name        string           `bun:"name,notnull" json:"name"`
	Description *string          `bun:"description" json:"description,omitempty"`
	Metadata    types.JsonObject `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	IsDeleted   bool             `bun:"is_deleted,notnull,default:false" json:"is_deleted"`

	auditModel
}

func init() {
	repository.RegisterKeyPrefix[Category](KeyPrefix)
	database.RegisterModel((*Category)(nil), 0)
}
