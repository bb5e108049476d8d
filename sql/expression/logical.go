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

// And/Or are binary boolean connectives; Not is unary. All three
// constrain their operands with SameTypeAs(Boolean, ...).
type And struct{ Left, Right sql.Expression }

func NewAnd(left, right sql.Expression) *And { return &And{Left: left, Right: right} }

func (a *And) Children() []sql.Expression { return []sql.Expression{a.Left, a.Right} }

func (a *And) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, errChildCount("And", 2, len(children))
	}
	if children[0] == a.Left && children[1] == a.Right {
		return a, nil
	}
	return &And{Left: children[0], Right: children[1]}, nil
}

func (a *And) Constraint() *constraint.Constraint {
	return constraint.SameTypeAs(sql.Boolean, a.Left, a.Right)
}

func (a *And) Type() sql.DataType { return sql.Boolean }
func (a *And) Nullable() bool     { return a.Left.Nullable() || a.Right.Nullable() }
func (a *And) Resolved() bool     { return a.Left.Resolved() && a.Right.Resolved() }
func (a *And) Foldable() bool     { return a.Left.Foldable() && a.Right.Foldable() }
func (a *And) String() string     { return "(" + a.Left.String() + " AND " + a.Right.String() + ")" }

type Or struct{ Left, Right sql.Expression }

func NewOr(left, right sql.Expression) *Or { return &Or{Left: left, Right: right} }

func (o *Or) Children() []sql.Expression { return []sql.Expression{o.Left, o.Right} }

func (o *Or) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, errChildCount("Or", 2, len(children))
	}
	if children[0] == o.Left && children[1] == o.Right {
		return o, nil
	}
	return &Or{Left: children[0], Right: children[1]}, nil
}

func (o *Or) Constraint() *constraint.Constraint {
	return constraint.SameTypeAs(sql.Boolean, o.Left, o.Right)
}

func (o *Or) Type() sql.DataType { return sql.Boolean }
func (o *Or) Nullable() bool     { return o.Left.Nullable() || o.Right.Nullable() }
func (o *Or) Resolved() bool     { return o.Left.Resolved() && o.Right.Resolved() }
func (o *Or) Foldable() bool     { return o.Left.Foldable() && o.Right.Foldable() }
func (o *Or) String() string     { return "(" + o.Left.String() + " OR " + o.Right.String() + ")" }

type Not struct{ Child sql.Expression }

func NewNot(child sql.Expression) *Not { return &Not{Child: child} }

func (n *Not) Children() []sql.Expression { return []sql.Expression{n.Child} }

func (n *Not) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, errChildCount("Not", 1, len(children))
	}
	if children[0] == n.Child {
		return n, nil
	}
	return &Not{Child: children[0]}, nil
}

func (n *Not) Constraint() *constraint.Constraint {
	return constraint.SameTypeAs(sql.Boolean, n.Child)
}

func (n *Not) Type() sql.DataType { return sql.Boolean }
func (n *Not) Nullable() bool     { return n.Child.Nullable() }
func (n *Not) Resolved() bool     { return n.Child.Resolved() }
func (n *Not) Foldable() bool     { return n.Child.Foldable() }
func (n *Not) String() string     { return "(NOT " + n.Child.String() + ")" }

// IsNull tests its operand for NULL. Its constraint is PassThrough: any
// strictly-typed operand is allowed.
type IsNull struct{ Child sql.Expression }

func NewIsNull(child sql.Expression) *IsNull { return &IsNull{Child: child} }

func (n *IsNull) Children() []sql.Expression { return []sql.Expression{n.Child} }

func (n *IsNull) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, errChildCount("IsNull", 1, len(children))
	}
	if children[0] == n.Child {
		return n, nil
	}
	return &IsNull{Child: children[0]}, nil
}

func (n *IsNull) Constraint() *constraint.Constraint {
	return constraint.PassThrough(n.Child)
}

func (n *IsNull) Type() sql.DataType { return sql.Boolean }
func (n *IsNull) Nullable() bool     { return false }
func (n *IsNull) Resolved() bool     { return n.Child.Resolved() }
func (n *IsNull) Foldable() bool     { return n.Child.Foldable() }
func (n *IsNull) String() string     { return "(" + n.Child.String() + " IS NULL)" }

// JoinAnd folds a list of predicates into a single conjunction, the
// inverse of splitting a filter's conjuncts apart.
func JoinAnd(exprs ...sql.Expression) sql.Expression {
	if len(exprs) == 0 {
		return nil
	}
	result := exprs[0]
	for _, e := range exprs[1:] {
		result = NewAnd(result, e)
	}
	return result
}

// SplitConjunction splits a (possibly nested) AND expression into its
// individual conjuncts, the inverse of JoinAnd. MergeHavingConditions
// does not use it: it appends each filter's condition whole.
func SplitConjunction(e sql.Expression) []sql.Expression {
	and, ok := e.(*And)
	if !ok {
		return []sql.Expression{e}
	}
	return append(SplitConjunction(and.Left), SplitConjunction(and.Right)...)
}
