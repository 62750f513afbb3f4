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
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// GeneratePrimaryKey returns a collision-resistant identifier of the form
// "<prefix>_<8 uppercase hex chars>", derived from a fresh random UUID.
// Uniqueness is not checked against the store; the key space carries it.
func GeneratePrimaryKey(prefix string) string {
	u := uuid.New()
	return prefix + "_" + strings.ToUpper(hex.EncodeToString(u[:4]))
}
