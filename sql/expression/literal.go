// Copyright 2024 The SQLPlan Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package expression implements the concrete expression-tree node kinds
// of spec.md §3 "Expression" as a closed family of small structs, one
// discriminant per node kind, dispatched by Go's own type system instead
// of a hand-rolled tag switch (spec.md §9 "Closed variants over
// inheritance").
package expression

import "github.com/veridian-data/sqlplan/sql"

// Literal is a constant value of a known type. It is always resolved and
// foldable, and is the base case every fold operation reduces to.
type Literal struct {
	Value any
	Typ   sql.DataType
}

func NewLiteral(value any, typ sql.DataType) *Literal {
	return &Literal{Value: value, Typ: typ}
}

func (l *Literal) Children() []sql.Expression { return nil }

func (l *Literal) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, errChildCount("Literal", 0, len(children))
	}
	return l, nil
}

func (l *Literal) Type() sql.DataType { return l.Typ }
func (l *Literal) Nullable() bool     { return l.Value == nil }
func (l *Literal) Resolved() bool     { return true }
func (l *Literal) Foldable() bool     { return true }

func (l *Literal) String() string {
	if l.Value == nil {
		return "NULL"
	}
	if s, ok := l.Value.(string); ok {
		return "'" + s + "'"
	}
	return toString(l.Value)
}
