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

// ArithOp is one of the binary arithmetic operators.
type ArithOp int

const (
	Add ArithOp = iota
	Subtract
	Multiply
	Divide
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "*"
	case Divide:
		return "/"
	}
	return "?"
}

// Arithmetic is a binary numeric operator. Its type constraint is
// SameSubtypesOf(NumericType, left, right) — spec.md's PostgreSQL-mirror
// example: "1" + 2 coerces "1" to INT, but "1" + "2" is rejected because
// neither operand is directly numeric.
type Arithmetic struct {
	Op          ArithOp
	Left, Right sql.Expression
}

func NewArithmetic(op ArithOp, left, right sql.Expression) *Arithmetic {
	return &Arithmetic{Op: op, Left: left, Right: right}
}

func NewPlus(left, right sql.Expression) *Arithmetic     { return NewArithmetic(Add, left, right) }
func NewMinus(left, right sql.Expression) *Arithmetic    { return NewArithmetic(Subtract, left, right) }
func NewMultiply(left, right sql.Expression) *Arithmetic { return NewArithmetic(Multiply, left, right) }
func NewDivide(left, right sql.Expression) *Arithmetic   { return NewArithmetic(Divide, left, right) }

func (a *Arithmetic) Children() []sql.Expression { return []sql.Expression{a.Left, a.Right} }

func (a *Arithmetic) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, errChildCount("Arithmetic", 2, len(children))
	}
	if children[0] == a.Left && children[1] == a.Right {
		return a, nil
	}
	return &Arithmetic{Op: a.Op, Left: children[0], Right: children[1]}, nil
}

// Constraint is this expression's type-constraint (spec.md §4.3).
func (a *Arithmetic) Constraint() *constraint.Constraint {
	return constraint.SameSubtypesOf(sql.NumericType, a.Left, a.Right)
}

func (a *Arithmetic) Type() sql.DataType {
	widest, ok := sql.WidestCommonType([]sql.DataType{a.Left.Type(), a.Right.Type()})
	if !ok {
		return sql.Null
	}
	return widest
}

func (a *Arithmetic) Nullable() bool { return a.Left.Nullable() || a.Right.Nullable() }
func (a *Arithmetic) Resolved() bool { return a.Left.Resolved() && a.Right.Resolved() }
func (a *Arithmetic) Foldable() bool { return a.Left.Foldable() && a.Right.Foldable() }

func (a *Arithmetic) String() string {
	return "(" + a.Left.String() + " " + a.Op.String() + " " + a.Right.String() + ")"
}
