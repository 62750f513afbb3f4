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
	"sort"
	"sync"
)

var defaultRegistry = &modelRegistry{}

// RegisteredModel describes an entity model known to the layer. Instance is a
// struct pointer compatible with Bun; Priority controls table creation order
// (lower values first).
type RegisteredModel struct {
	Instance interface{}
	Priority int
}

type modelRegistry struct {
	mu     sync.RWMutex
	models []RegisteredModel
}

func (r *modelRegistry) add(model RegisteredModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models = append(r.models, model)
}

func (r *modelRegistry) all() []RegisteredModel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]RegisteredModel, len(r.models))
	copy(result, r.models)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Priority < result[j].Priority
	})
	return result
}

// RegisterModel adds a model instance to the default registry. Entity
// packages call this from init so startup table creation covers them.
func RegisterModel(instance interface{}, priority int) {
	defaultRegistry.add(RegisteredModel{Instance: instance, Priority: priority})
}

// RegisteredModels returns all registered models sorted by ascending priority.
func RegisteredModels() []RegisteredModel {
	return defaultRegistry.all()
}

// RegisteredModelInstances returns the raw struct instances in priority order.
func RegisteredModelInstances() []interface{} {
	models := RegisteredModels()
	instances := make([]interface{}, len(models))
	for i, model := range models {
		instances[i] = model.Instance
	}
	return instances
}
