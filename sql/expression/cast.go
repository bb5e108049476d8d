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

// Cast is the explicit coercion wrapper the type-constraint system
// inserts when it widens or converts a child's type (spec.md §4.3).
type Cast struct {
	Child  sql.Expression
	Target sql.DataType
}

func NewCast(child sql.Expression, target sql.DataType) *Cast {
	return &Cast{Child: child, Target: target}
}

func (c *Cast) Children() []sql.Expression { return []sql.Expression{c.Child} }

func (c *Cast) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, errChildCount("Cast", 1, len(children))
	}
	if children[0] == c.Child {
		return c, nil
	}
	cp := *c
	cp.Child = children[0]
	return &cp, nil
}

func (c *Cast) Type() sql.DataType { return c.Target }
func (c *Cast) Nullable() bool     { return c.Child.Nullable() }
func (c *Cast) Resolved() bool     { return c.Child.Resolved() }
func (c *Cast) Foldable() bool     { return c.Child.Foldable() }

func (c *Cast) String() string {
	return "cast(" + c.Child.String() + " as " + c.Target.String() + ")"
}

func init() {
	// Wire the constraint package's coercion hook to this package's Cast
	// node, without the two packages importing each other directly
	// (constraint is imported by expression to declare each node's
	// constraint; this keeps the dependency a one-way arrow).
	constraint.NewCast = func(e sql.Expression, target sql.DataType) sql.Expression {
		return NewCast(e, target)
	}
}
