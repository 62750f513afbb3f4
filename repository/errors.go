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

import "errors"

var (
	// ErrAlreadyHasID rejects creation of an entity that carries a
	// caller-supplied identifier. Identifiers are always server-assigned.
	ErrAlreadyHasID = errors.New("entity already has an identifier")

	// ErrUnknownEntityType rejects creation of an entity type that has no
	// registered key prefix.
	ErrUnknownEntityType = errors.New("no key prefix registered for entity type")
)
