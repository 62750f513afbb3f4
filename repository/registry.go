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
	"sync"
)

var (
	prefixMu      sync.RWMutex
	prefixByModel = map[reflect.Type]string{}
)

// RegisterKeyPrefix associates the primary-key prefix for entity type T.
// Registration happens once per entity type at process start; creation fails
// closed with ErrUnknownEntityType for unregistered types.
func RegisterKeyPrefix[T any](prefix string) {
	prefixMu.Lock()
	defer prefixMu.Unlock()
	prefixByModel[reflect.TypeOf((*T)(nil)).Elem()] = prefix
}

// KeyPrefixFor resolves the registered prefix for an entity type.
func KeyPrefixFor(typ reflect.Type) (string, bool) {
	prefixMu.RLock()
	defer prefixMu.RUnlock()
	prefix, ok := prefixByModel[typ]
	return prefix, ok
}
