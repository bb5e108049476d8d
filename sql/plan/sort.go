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

package plan

import "github.com/veridian-data/sqlplan/sql"

// Sort orders its child's rows by Order. When the child is an
// UnresolvedAggregate, MergeSortsOverAggregates folds this node's order
// into the aggregate's order list instead (spec.md §4.4) — only the
// outermost sort over an aggregate survives.
type Sort struct {
	Child sql.LogicalPlan
	Order []SortOrder
}

func NewSort(order []SortOrder, child sql.LogicalPlan) *Sort {
	return &Sort{Child: child, Order: order}
}

func (s *Sort) Children() []sql.LogicalPlan { return []sql.LogicalPlan{s.Child} }

func (s *Sort) WithChildren(children []sql.LogicalPlan) (sql.LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errChildCount("Sort", 1, len(children))
	}
	if children[0] == s.Child {
		return s, nil
	}
	return &Sort{Child: children[0], Order: s.Order}, nil
}

func (s *Sort) Expressions() []sql.Expression {
	out := make([]sql.Expression, len(s.Order))
	for i, o := range s.Order {
		out[i] = o.Expr
	}
	return out
}

func (s *Sort) WithExpressions(exprs []sql.Expression) (sql.LogicalPlan, error) {
	if len(exprs) != len(s.Order) {
		return nil, errChildCount("Sort.expressions", len(s.Order), len(exprs))
	}
	newOrder := make([]SortOrder, len(exprs))
	for i, e := range exprs {
		newOrder[i] = SortOrder{Expr: e, Desc: s.Order[i].Desc}
	}
	return &Sort{Child: s.Child, Order: newOrder}, nil
}

func (s *Sort) Output() []*sql.Attribute { return s.Child.Output() }

func (s *Sort) Resolved() bool {
	if !s.Child.Resolved() {
		return false
	}
	for _, o := range s.Order {
		if !o.Expr.Resolved() {
			return false
		}
	}
	return true
}

func (s *Sort) String() string { return "Sort" }

// Limit caps its child's output to a fixed row count.
type Limit struct {
	Child sql.LogicalPlan
	Count int64
}

func NewLimit(count int64, child sql.LogicalPlan) *Limit {
	return &Limit{Child: child, Count: count}
}

func (l *Limit) Children() []sql.LogicalPlan { return []sql.LogicalPlan{l.Child} }

func (l *Limit) WithChildren(children []sql.LogicalPlan) (sql.LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errChildCount("Limit", 1, len(children))
	}
	if children[0] == l.Child {
		return l, nil
	}
	return &Limit{Child: children[0], Count: l.Count}, nil
}

func (l *Limit) Output() []*sql.Attribute { return l.Child.Output() }
func (l *Limit) Resolved() bool           { return l.Child.Resolved() }
func (l *Limit) String() string          { return "Limit" }
