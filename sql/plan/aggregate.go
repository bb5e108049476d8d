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

// UnresolvedAggregate is the single desugared shape every GROUP BY /
// HAVING / aggregate-ORDER-BY / global-aggregate SQL construct collapses
// into before ResolveAggregates (spec.md §3, §4.4). GroupingKeys,
// HavingConditions, and Order may all be empty; ProjectList never is.
type UnresolvedAggregate struct {
	Child            sql.LogicalPlan
	GroupingKeys     []sql.Expression
	ProjectList      []sql.Expression
	HavingConditions []sql.Expression
	Order            []SortOrder
}

func NewUnresolvedAggregate(child sql.LogicalPlan, groupingKeys, projectList, havingConditions []sql.Expression, order []SortOrder) *UnresolvedAggregate {
	return &UnresolvedAggregate{
		Child:            child,
		GroupingKeys:     groupingKeys,
		ProjectList:      projectList,
		HavingConditions: havingConditions,
		Order:            order,
	}
}

func (u *UnresolvedAggregate) Children() []sql.LogicalPlan { return []sql.LogicalPlan{u.Child} }

func (u *UnresolvedAggregate) WithChildren(children []sql.LogicalPlan) (sql.LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errChildCount("UnresolvedAggregate", 1, len(children))
	}
	if children[0] == u.Child {
		return u, nil
	}
	cp := *u
	cp.Child = children[0]
	return &cp, nil
}

// Expressions returns, in a fixed order, GroupingKeys then ProjectList
// then HavingConditions then the Order expressions — WithExpressions
// must reconstruct the node using exactly this layout.
func (u *UnresolvedAggregate) Expressions() []sql.Expression {
	out := make([]sql.Expression, 0, len(u.GroupingKeys)+len(u.ProjectList)+len(u.HavingConditions)+len(u.Order))
	out = append(out, u.GroupingKeys...)
	out = append(out, u.ProjectList...)
	out = append(out, u.HavingConditions...)
	for _, o := range u.Order {
		out = append(out, o.Expr)
	}
	return out
}

func (u *UnresolvedAggregate) WithExpressions(exprs []sql.Expression) (sql.LogicalPlan, error) {
	want := len(u.GroupingKeys) + len(u.ProjectList) + len(u.HavingConditions) + len(u.Order)
	if len(exprs) != want {
		return nil, errChildCount("UnresolvedAggregate.expressions", want, len(exprs))
	}
	i := 0
	groupingKeys := append([]sql.Expression{}, exprs[i:i+len(u.GroupingKeys)]...)
	i += len(u.GroupingKeys)
	projectList := append([]sql.Expression{}, exprs[i:i+len(u.ProjectList)]...)
	i += len(u.ProjectList)
	having := append([]sql.Expression{}, exprs[i:i+len(u.HavingConditions)]...)
	i += len(u.HavingConditions)
	order := make([]SortOrder, len(u.Order))
	for j := range u.Order {
		order[j] = SortOrder{Expr: exprs[i+j], Desc: u.Order[j].Desc}
	}
	return &UnresolvedAggregate{
		Child:            u.Child,
		GroupingKeys:     groupingKeys,
		ProjectList:      projectList,
		HavingConditions: having,
		Order:            order,
	}, nil
}

func (u *UnresolvedAggregate) Output() []*sql.Attribute {
	out := make([]*sql.Attribute, 0, len(u.ProjectList))
	for _, e := range u.ProjectList {
		out = append(out, attributeOf(e))
	}
	return out
}

func (u *UnresolvedAggregate) Resolved() bool { return false } // always rewritten into Aggregate

func (u *UnresolvedAggregate) String() string { return "UnresolvedAggregate" }

// Aggregate is the single resolved grouping node: its output is exactly
// its grouping attributes followed by its aggregation attributes, never
// a raw child attribute (spec.md §3 invariants, §8 property 5).
type Aggregate struct {
	Child              sql.LogicalPlan
	GroupingAliases    []sql.Expression // each a *expression.GroupingAlias
	AggregationAliases []sql.Expression // each a *expression.AggregationAlias
}

func NewAggregate(child sql.LogicalPlan, groupingAliases, aggregationAliases []sql.Expression) *Aggregate {
	return &Aggregate{Child: child, GroupingAliases: groupingAliases, AggregationAliases: aggregationAliases}
}

func (a *Aggregate) Children() []sql.LogicalPlan { return []sql.LogicalPlan{a.Child} }

func (a *Aggregate) WithChildren(children []sql.LogicalPlan) (sql.LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errChildCount("Aggregate", 1, len(children))
	}
	if children[0] == a.Child {
		return a, nil
	}
	return &Aggregate{Child: children[0], GroupingAliases: a.GroupingAliases, AggregationAliases: a.AggregationAliases}, nil
}

func (a *Aggregate) Expressions() []sql.Expression {
	out := make([]sql.Expression, 0, len(a.GroupingAliases)+len(a.AggregationAliases))
	out = append(out, a.GroupingAliases...)
	out = append(out, a.AggregationAliases...)
	return out
}

func (a *Aggregate) WithExpressions(exprs []sql.Expression) (sql.LogicalPlan, error) {
	want := len(a.GroupingAliases) + len(a.AggregationAliases)
	if len(exprs) != want {
		return nil, errChildCount("Aggregate.expressions", want, len(exprs))
	}
	return &Aggregate{
		Child:              a.Child,
		GroupingAliases:    append([]sql.Expression{}, exprs[:len(a.GroupingAliases)]...),
		AggregationAliases: append([]sql.Expression{}, exprs[len(a.GroupingAliases):]...),
	}, nil
}

func (a *Aggregate) Output() []*sql.Attribute {
	out := make([]*sql.Attribute, 0, len(a.GroupingAliases)+len(a.AggregationAliases))
	for _, e := range a.GroupingAliases {
		out = append(out, attributeOf(e))
	}
	for _, e := range a.AggregationAliases {
		out = append(out, attributeOf(e))
	}
	return out
}

func (a *Aggregate) Resolved() bool {
	return a.Child.Resolved() && exprsResolved(a.GroupingAliases) && exprsResolved(a.AggregationAliases)
}

func (a *Aggregate) String() string { return "Aggregate" }
