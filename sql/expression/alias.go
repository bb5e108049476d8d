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

import "github.com/veridian-data/sqlplan/sql"

// Alias is a named wrapper around an expression, carrying a stable
// expression id. The id does not change across rewrites unless
// DeduplicateReferences explicitly reassigns it (spec.md §3 invariants).
type Alias struct {
	IDVal   sql.ExprID
	Label   string
	Child   sql.Expression
}

func NewAlias(name string, child sql.Expression) *Alias {
	return &Alias{IDVal: sql.NewExprID(), Label: name, Child: child}
}

// WithID returns a copy of this alias carrying a freshly assigned id,
// used by DeduplicateReferences to make a right-hand subtree's output
// ids disjoint from the left's.
func (a *Alias) WithID(id sql.ExprID) *Alias {
	cp := *a
	cp.IDVal = id
	return &cp
}

func (a *Alias) Children() []sql.Expression { return []sql.Expression{a.Child} }

func (a *Alias) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, errChildCount("Alias", 1, len(children))
	}
	if children[0] == a.Child {
		return a, nil
	}
	cp := *a
	cp.Child = children[0]
	return &cp, nil
}

func (a *Alias) Type() sql.DataType { return a.Child.Type() }
func (a *Alias) Nullable() bool     { return a.Child.Nullable() }
func (a *Alias) Resolved() bool     { return a.Child.Resolved() }
func (a *Alias) Foldable() bool     { return a.Child.Foldable() }
func (a *Alias) Name() string       { return a.Label }
func (a *Alias) Qualifier() string  { return "" }
func (a *Alias) ID() sql.ExprID     { return a.IDVal }

func (a *Alias) String() string {
	return a.Child.String() + " as " + a.Label
}

// AutoAlias is a pending alias awaiting a display name derived from its
// child's rendered SQL text once the child resolves (spec.md §3,
// ResolveAliases). It is never resolved itself — that only happens once
// ResolveAliases converts it into a real *Alias — and it must never
// appear in the final plan.
type AutoAlias struct {
	Child sql.Expression
}

func NewAutoAlias(child sql.Expression) *AutoAlias {
	return &AutoAlias{Child: child}
}

func (a *AutoAlias) Children() []sql.Expression { return []sql.Expression{a.Child} }

func (a *AutoAlias) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, errChildCount("AutoAlias", 1, len(children))
	}
	if children[0] == a.Child {
		return a, nil
	}
	return &AutoAlias{Child: children[0]}, nil
}

func (a *AutoAlias) Type() sql.DataType { return a.Child.Type() }
func (a *AutoAlias) Nullable() bool     { return a.Child.Nullable() }
func (a *AutoAlias) Resolved() bool     { return false }
func (a *AutoAlias) Foldable() bool     { return a.Child.Foldable() }

func (a *AutoAlias) String() string { return a.Child.String() }

// GeneratedNamedExpression marks an internal rewrite artifact — a
// GroupingAlias or AggregationAlias — that must never survive to the
// final plan's top-level output (spec.md §3, Post-analysis checks).
type GeneratedNamedExpression interface {
	sql.NamedExpression
	generated()
}

// GroupingAlias binds one UnresolvedAggregate grouping key to a fresh
// attribute during ResolveAggregates.
type GroupingAlias struct {
	*Alias
}

func NewGroupingAlias(name string, child sql.Expression) *GroupingAlias {
	return &GroupingAlias{Alias: NewAlias(name, child)}
}

func (g *GroupingAlias) generated() {}

func (g *GroupingAlias) WithChildren(children []sql.Expression) (sql.Expression, error) {
	inner, err := g.Alias.WithChildren(children)
	if err != nil {
		return nil, err
	}
	if inner == sql.Expression(g.Alias) {
		return g, nil
	}
	return &GroupingAlias{Alias: inner.(*Alias)}, nil
}

// AggregationAlias binds one collected aggregate function to a fresh
// attribute during ResolveAggregates.
type AggregationAlias struct {
	*Alias
}

func NewAggregationAlias(name string, child sql.Expression) *AggregationAlias {
	return &AggregationAlias{Alias: NewAlias(name, child)}
}

func (g *AggregationAlias) generated() {}

func (g *AggregationAlias) WithChildren(children []sql.Expression) (sql.Expression, error) {
	inner, err := g.Alias.WithChildren(children)
	if err != nil {
		return nil, err
	}
	if inner == sql.Expression(g.Alias) {
		return g, nil
	}
	return &AggregationAlias{Alias: inner.(*Alias)}, nil
}
