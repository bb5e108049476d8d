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

// Filter selects rows of its child matching Condition. When the child is
// an UnresolvedAggregate, MergeHavingConditions folds this node's
// condition into the aggregate's having list instead of leaving it
// standing (spec.md §4.4).
type Filter struct {
	Child     sql.LogicalPlan
	Condition sql.Expression
}

func NewFilter(condition sql.Expression, child sql.LogicalPlan) *Filter {
	return &Filter{Child: child, Condition: condition}
}

func (f *Filter) Children() []sql.LogicalPlan { return []sql.LogicalPlan{f.Child} }

func (f *Filter) WithChildren(children []sql.LogicalPlan) (sql.LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errChildCount("Filter", 1, len(children))
	}
	if children[0] == f.Child {
		return f, nil
	}
	return &Filter{Child: children[0], Condition: f.Condition}, nil
}

func (f *Filter) Expressions() []sql.Expression { return []sql.Expression{f.Condition} }

func (f *Filter) WithExpressions(exprs []sql.Expression) (sql.LogicalPlan, error) {
	if len(exprs) != 1 {
		return nil, errChildCount("Filter.expressions", 1, len(exprs))
	}
	return &Filter{Child: f.Child, Condition: exprs[0]}, nil
}

func (f *Filter) Output() []*sql.Attribute { return f.Child.Output() }
func (f *Filter) Resolved() bool           { return f.Child.Resolved() && f.Condition.Resolved() }
func (f *Filter) String() string           { return "Filter" }
