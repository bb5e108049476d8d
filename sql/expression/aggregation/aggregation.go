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

// Package aggregation implements the concrete declarative aggregate
// function kinds of spec.md §3, mirroring the teacher's
// sql/expression/function/aggregation layout.
package aggregation

import (
	"github.com/veridian-data/sqlplan/sql"
	"github.com/veridian-data/sqlplan/sql/constraint"
)

// unary is embedded by every one-argument aggregate to share the
// Children/WithChildren/Resolved/Foldable boilerplate.
type unary struct {
	Name string
	Arg  sql.Expression
}

func (u *unary) Children() []sql.Expression { return []sql.Expression{u.Arg} }
func (u *unary) Resolved() bool             { return u.Arg.Resolved() }

// Foldable is always false: an aggregate function's value depends on the
// rows of a group, never evaluable at analysis time (spec.md §3).
func (u *unary) Foldable() bool { return false }

func (u *unary) FunctionName() string { return u.Name }

// Count is COUNT(expr) / COUNT(*) (represented as Count(Literal(1))
// after ResolveFunctions' count(*) special case, spec.md §4.4).
type Count struct{ unary }

func NewCount(arg sql.Expression) *Count {
	return &Count{unary{Name: "count", Arg: arg}}
}

func (c *Count) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, errChildCount("Count", 1, len(children))
	}
	if children[0] == c.Arg {
		return c, nil
	}
	return NewCount(children[0]), nil
}

func (c *Count) Constraint() *constraint.Constraint { return constraint.StrictlyTyped(c.Arg) }
func (c *Count) Type() sql.DataType                 { return sql.Int64 }
func (c *Count) Nullable() bool                     { return false }
func (c *Count) String() string                     { return "COUNT(" + c.Arg.String() + ")" }

// Sum is SUM(expr); its argument must be numeric.
type Sum struct{ unary }

func NewSum(arg sql.Expression) *Sum { return &Sum{unary{Name: "sum", Arg: arg}} }

func (s *Sum) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, errChildCount("Sum", 1, len(children))
	}
	if children[0] == s.Arg {
		return s, nil
	}
	return NewSum(children[0]), nil
}

func (s *Sum) Constraint() *constraint.Constraint {
	return constraint.SameSubtypesOf(sql.NumericType, s.Arg)
}
func (s *Sum) Type() sql.DataType { return sql.Float64 }
func (s *Sum) Nullable() bool     { return true }
func (s *Sum) String() string    { return "SUM(" + s.Arg.String() + ")" }

// Avg is AVG(expr); its argument must be numeric and its result is
// always a float regardless of the argument's concrete numeric type.
type Avg struct{ unary }

func NewAvg(arg sql.Expression) *Avg { return &Avg{unary{Name: "avg", Arg: arg}} }

func (a *Avg) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, errChildCount("Avg", 1, len(children))
	}
	if children[0] == a.Arg {
		return a, nil
	}
	return NewAvg(children[0]), nil
}

func (a *Avg) Constraint() *constraint.Constraint {
	return constraint.SameSubtypesOf(sql.NumericType, a.Arg)
}
func (a *Avg) Type() sql.DataType { return sql.Float64 }
func (a *Avg) Nullable() bool     { return true }
func (a *Avg) String() string     { return "AVG(" + a.Arg.String() + ")" }

// Min/Max require an Ordered argument and preserve its type.
type Min struct{ unary }

func NewMin(arg sql.Expression) *Min { return &Min{unary{Name: "min", Arg: arg}} }

func (m *Min) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, errChildCount("Min", 1, len(children))
	}
	if children[0] == m.Arg {
		return m, nil
	}
	return NewMin(children[0]), nil
}

func (m *Min) Constraint() *constraint.Constraint {
	return constraint.SameSubtypesOf(sql.OrderedType, m.Arg)
}
func (m *Min) Type() sql.DataType { return m.Arg.Type() }
func (m *Min) Nullable() bool     { return true }
func (m *Min) String() string    { return "MIN(" + m.Arg.String() + ")" }

type Max struct{ unary }

func NewMax(arg sql.Expression) *Max { return &Max{unary{Name: "max", Arg: arg}} }

func (m *Max) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, errChildCount("Max", 1, len(children))
	}
	if children[0] == m.Arg {
		return m, nil
	}
	return NewMax(children[0]), nil
}

func (m *Max) Constraint() *constraint.Constraint {
	return constraint.SameSubtypesOf(sql.OrderedType, m.Arg)
}
func (m *Max) Type() sql.DataType { return m.Arg.Type() }
func (m *Max) Nullable() bool     { return true }
func (m *Max) String() string    { return "MAX(" + m.Arg.String() + ")" }
