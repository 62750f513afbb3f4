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

import "encoding/json"

// Operator identifies a filter predicate kind.
type Operator string

const (
	OpEq      Operator = "eq"
	OpIn      Operator = "in"
	OpNin     Operator = "nin"
	OpGt      Operator = "gt"
	OpGte     Operator = "gte"
	OpLt      Operator = "lt"
	OpLte     Operator = "lte"
	OpLike    Operator = "like"
	OpBetween Operator = "between"
)

// Valid reports whether the operator is one of the supported predicate kinds.
func (o Operator) Valid() bool {
	switch o {
	case OpEq, OpIn, OpNin, OpGt, OpGte, OpLt, OpLte, OpLike, OpBetween:
		return true
	}
	return false
}

// Condition is a single tagged filter predicate: an operator plus its value.
// A bare (untagged) value in a filter mapping is treated as an equality
// condition by the repository layer.
type Condition struct {
	Op    Operator    `json:"op"`
	Value interface{} `json:"value"`
}

// Eq builds an equality condition.
func Eq(value interface{}) Condition { return Condition{Op: OpEq, Value: value} }

// In builds a membership condition over the given values.
func In(values ...interface{}) Condition { return Condition{Op: OpIn, Value: values} }

// NotIn builds a negated membership condition over the given values.
func NotIn(values ...interface{}) Condition { return Condition{Op: OpNin, Value: values} }

// Gt builds a strictly-greater-than condition.
func Gt(value interface{}) Condition { return Condition{Op: OpGt, Value: value} }

// Gte builds a greater-than-or-equal condition.
func Gte(value interface{}) Condition { return Condition{Op: OpGte, Value: value} }

// Lt builds a strictly-less-than condition.
func Lt(value interface{}) Condition { return Condition{Op: OpLt, Value: value} }

// Lte builds a less-than-or-equal condition.
func Lte(value interface{}) Condition { return Condition{Op: OpLte, Value: value} }

// Like builds a pattern-match condition using store-native wildcards.
func Like(pattern string) Condition { return Condition{Op: OpLike, Value: pattern} }

// Between builds an inclusive range condition over [lo, hi].
func Between(lo, hi interface{}) Condition {
	return Condition{Op: OpBetween, Value: []interface{}{lo, hi}}
}

// UnmarshalJSON accepts either a tagged object {"op": ..., "value": ...} or a
// bare scalar, which is interpreted as an equality condition.
func (c *Condition) UnmarshalJSON(data []byte) error {
	type tagged struct {
		Op    *Operator   `json:"op"`
		Value interface{} `json:"value"`
	}
	var t tagged
	if err := json.Unmarshal(data, &t); err == nil && t.Op != nil {
		c.Op = *t.Op
		c.Value = t.Value
		return nil
	}
	var scalar interface{}
	if err := json.Unmarshal(data, &scalar); err != nil {
		return err
	}
	c.Op = OpEq
	c.Value = scalar
	return nil
}

// DateRange describes an inclusive date window. It translates to a "between"
// condition at the service boundary.
type DateRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Condition converts the range into its "between" predicate form.
func (r DateRange) Condition() Condition { return Between(r.From, r.To) }

// Search describes a free-text lookup on a single field. The service layer
// translates it into a wildcarded "like" condition.
type Search struct {
	Field string `json:"field"`
	Value string `json:"value"`
}
