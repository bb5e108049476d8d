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

package expression

import (
	"github.com/veridian-data/sqlplan/sql"
	"github.com/veridian-data/sqlplan/sql/constraint"
)

// CompareOp is one of the binary comparison operators.
type CompareOp int

const (
	Eq CompareOp = iota
	NotEq
	Gt
	Gte
	Lt
	Lte
)

func (op CompareOp) String() string {
	switch op {
	case Eq:
		return "="
	case NotEq:
		return "!="
	case Gt:
		return ">"
	case Gte:
		return ">="
	case Lt:
		return "<"
	case Lte:
		return "<="
	}
	return "?"
}

// Comparison is a binary comparison. Its constraint is SameType(left,
// right): both sides are coerced to their widest common type, without
// requiring either to be a member of a particular abstract class (an
// ordered-type check belongs to a validation rule, not the constraint).
type Comparison struct {
	Op          CompareOp
	Left, Right sql.Expression
}

func NewComparison(op CompareOp, left, right sql.Expression) *Comparison {
	return &Comparison{Op: op, Left: left, Right: right}
}

func NewEquals(left, right sql.Expression) *Comparison { return NewComparison(Eq, left, right) }
func NewGreaterThan(left, right sql.Expression) *Comparison {
	return NewComparison(Gt, left, right)
}
func NewGreaterThanOrEqual(left, right sql.Expression) *Comparison {
	return NewComparison(Gte, left, right)
}
func NewLessThan(left, right sql.Expression) *Comparison { return NewComparison(Lt, left, right) }
func NewLessThanOrEqual(left, right sql.Expression) *Comparison {
	return NewComparison(Lte, left, right)
}

func (c *Comparison) Children() []sql.Expression { return []sql.Expression{c.Left, c.Right} }

func (c *Comparison) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, errChildCount("Comparison", 2, len(children))
	}
	if children[0] == c.Left && children[1] == c.Right {
		return c, nil
	}
	return &Comparison{Op: c.Op, Left: children[0], Right: children[1]}, nil
}

func (c *Comparison) Constraint() *constraint.Constraint {
	return constraint.SameType(c.Left, c.Right)
}

func (c *Comparison) Type() sql.DataType { return sql.Boolean }
func (c *Comparison) Nullable() bool     { return c.Left.Nullable() || c.Right.Nullable() }
func (c *Comparison) Resolved() bool     { return c.Left.Resolved() && c.Right.Resolved() }
func (c *Comparison) Foldable() bool     { return c.Left.Foldable() && c.Right.Foldable() }

func (c *Comparison) String() string {
	return "(" + c.Left.String() + " " + c.Op.String() + " " + c.Right.String() + ")"
}
