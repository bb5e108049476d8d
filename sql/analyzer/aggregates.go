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

package analyzer

import (
	"strings"

	"github.com/veridian-data/sqlplan/sql"
	"github.com/veridian-data/sqlplan/sql/expression"
	"github.com/veridian-data/sqlplan/sql/plan"
	"github.com/veridian-data/sqlplan/sql/transform"
)

// containsAggregateInExprs reports whether any expression in exprs
// contains an aggregate function anywhere in its subtree.
func containsAggregateInExprs(exprs []sql.Expression) bool {
	for _, e := range exprs {
		if _, ok := transform.CollectFirst(e, func(x sql.Expression) bool {
			_, ok := x.(sql.AggregateFunction)
			return ok
		}); ok {
			return true
		}
	}
	return false
}

func exprsAllResolved(exprs []sql.Expression) bool {
	for _, e := range exprs {
		if !e.Resolved() {
			return false
		}
	}
	return true
}

func orderAllResolved(order []plan.SortOrder) bool {
	for _, o := range order {
		if !o.Expr.Resolved() {
			return false
		}
	}
	return true
}

// globalAggregates turns a Project whose project list contains an
// aggregate function into an UnresolvedAggregate with no grouping keys
// (spec.md §4.4): a plain SELECT with an aggregate is a group-by-nothing
// aggregation over the whole input.
func globalAggregates(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
	result, _, err := transform.Up(n, func(p sql.LogicalPlan) (sql.LogicalPlan, transform.TreeIdentity, error) {
		proj, ok := p.(*plan.Project)
		if !ok || !containsAggregateInExprs(proj.ProjectList) {
			return p, transform.SameTree, nil
		}
		return plan.NewUnresolvedAggregate(proj.Child, nil, proj.ProjectList, nil, nil), transform.NewTree, nil
	})
	return result, err
}

var globalAggregatesRule = Rule{Name: "global_aggregates", Apply: globalAggregates}

// mergeHavingConditions folds Filter(UnresolvedAggregate(...), cond) into
// the aggregate's own having list (spec.md §4.4). Because the walk is
// bottom-up, stacked filters all merge within a single pass, innermost
// condition first.
func mergeHavingConditions(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
	result, _, err := transform.Up(n, func(p sql.LogicalPlan) (sql.LogicalPlan, transform.TreeIdentity, error) {
		f, ok := p.(*plan.Filter)
		if !ok {
			return p, transform.SameTree, nil
		}
		agg, ok := f.Child.(*plan.UnresolvedAggregate)
		if !ok {
			return p, transform.SameTree, nil
		}
		merged := *agg
		merged.HavingConditions = append(append([]sql.Expression{}, agg.HavingConditions...), f.Condition)
		return &merged, transform.NewTree, nil
	})
	return result, err
}

var mergeHavingConditionsRule = Rule{Name: "merge_having_conditions", Apply: mergeHavingConditions}

// mergeSortsOverAggregates folds Sort(UnresolvedAggregate(...), order)
// into the aggregate's own order list (spec.md §4.4). Only the outermost
// sort over an aggregate survives — a deliberate, narrow behavior kept
// exactly as specified rather than generalized to stack multiple sorts.
func mergeSortsOverAggregates(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
	result, _, err := transform.Up(n, func(p sql.LogicalPlan) (sql.LogicalPlan, transform.TreeIdentity, error) {
		s, ok := p.(*plan.Sort)
		if !ok {
			return p, transform.SameTree, nil
		}
		agg, ok := s.Child.(*plan.UnresolvedAggregate)
		if !ok {
			return p, transform.SameTree, nil
		}
		merged := *agg
		merged.Order = s.Order
		return &merged, transform.NewTree, nil
	})
	return result, err
}

var mergeSortsOverAggregatesRule = Rule{Name: "merge_sorts_over_aggregates", Apply: mergeSortsOverAggregates}

// resolveAggregates is the hardest rule (spec.md §4.4): it collapses one
// UnresolvedAggregate into a resolved Aggregate plus the surrounding
// Filter/Sort/Project chain. It walks the tree itself, rather than
// through transform.Up, because it must know whether an UnresolvedAggregate
// is the immediate child of a Filter or Sort — those still need a chance
// to merge into it first (mergeHavingConditions/mergeSortsOverAggregates,
// applied earlier in the same pass) before this rule may touch it.
func resolveAggregates(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
	return resolveAggregatesNode(ctx, n, false)
}

func resolveAggregatesNode(ctx *sql.Context, p sql.LogicalPlan, wrapped bool) (sql.LogicalPlan, error) {
	_, isFilter := p.(*plan.Filter)
	_, isSort := p.(*plan.Sort)

	children := p.Children()
	newChildren := make([]sql.LogicalPlan, len(children))
	changed := false
	for i, c := range children {
		childWrapped := i == 0 && (isFilter || isSort)
		nc, err := resolveAggregatesNode(ctx, c, childWrapped)
		if err != nil {
			return nil, err
		}
		if nc != c {
			changed = true
		}
		newChildren[i] = nc
	}
	if changed {
		rebuilt, err := p.WithChildren(newChildren)
		if err != nil {
			return nil, err
		}
		p = rebuilt
	}

	agg, ok := p.(*plan.UnresolvedAggregate)
	if !ok || wrapped {
		return p, nil
	}
	if !agg.Child.Resolved() ||
		!exprsAllResolved(agg.GroupingKeys) ||
		!exprsAllResolved(agg.ProjectList) ||
		!exprsAllResolved(agg.HavingConditions) ||
		!orderAllResolved(agg.Order) {
		return p, nil
	}
	return applyResolveAggregates(ctx, agg)
}

type aggSubstitution struct {
	original sql.Expression
	attr     *expression.AttributeRef
}

func applySubstitutions(e sql.Expression, subs []aggSubstitution) (sql.Expression, bool) {
	result, same, _ := transform.Down(e, func(node sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		for _, s := range subs {
			if sql.StructurallyEqual(node, s.original) {
				return s.attr, transform.NewTree, nil
			}
		}
		return node, transform.SameTree, nil
	})
	return result, same == transform.NewTree
}

func isBareTopLevelMatch(e sql.Expression, subsLists ...[]aggSubstitution) bool {
	for _, subs := range subsLists {
		for _, s := range subs {
			if sql.StructurallyEqual(e, s.original) {
				return true
			}
		}
	}
	return false
}

func displayName(ctx *sql.Context, e sql.Expression) string {
	if named, ok := e.(sql.NamedExpression); ok {
		return named.Name()
	}
	name := strings.ToLower(stripQuotes(e.String()))
	if name == "" {
		return ctx.AnonymousColumnName
	}
	return name
}

func attrOfNamed(e sql.NamedExpression) *sql.Attribute {
	return &sql.Attribute{ID: e.ID(), Name: e.Name(), Qualifier: e.Qualifier(), Type: e.Type(), Nullable: e.Nullable()}
}

// collectAggregateFunctions collects the outermost aggregate-function
// node along every path of exprs, without descending into an already
// collected aggregate's own arguments (spec.md §4.4 step 2): a
// DistinctAggregateFunction is collected whole rather than unwrapped, so
// its inner aggregate is never counted as an independent one.
func collectAggregateFunctions(exprs []sql.Expression) []sql.Expression {
	var out []sql.Expression
	var walk func(e sql.Expression)
	walk = func(e sql.Expression) {
		if _, ok := e.(sql.AggregateFunction); ok {
			out = append(out, e)
			return
		}
		for _, c := range e.Children() {
			walk(c)
		}
	}
	for _, e := range exprs {
		walk(e)
	}
	return out
}

func dedupeExprs(exprs []sql.Expression) []sql.Expression {
	var out []sql.Expression
	for _, e := range exprs {
		dup := false
		for _, o := range out {
			if sql.StructurallyEqual(e, o) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e)
		}
	}
	return out
}

// checkNestedAggregates rejects an aggregate function whose own argument
// subtree contains another aggregate function (spec.md §4.4 step 3,
// IllegalAggregation). For a distinct wrapper the check recurses into
// the wrapped function's arguments too.
func checkNestedAggregates(aggs []sql.Expression) error {
	for _, a := range aggs {
		inner := a
		if daf, ok := a.(sql.DistinctAggregateFunction); ok {
			inner = daf.Unwrap()
		}
		for _, c := range inner.Children() {
			if found, ok := transform.CollectFirst(c, func(e sql.Expression) bool {
				_, ok := e.(sql.AggregateFunction)
				return ok
			}); ok {
				return sql.ErrIllegalAggregation.New("aggregate function", found.String()+" nested inside "+a.String())
			}
		}
	}
	return nil
}

// checkDangling rejects a raw, unsubstituted attribute reference
// surviving in a rewritten projectList/having/order expression (spec.md
// §4.4 step 6): it means the expression named a column that was neither
// grouped nor aggregated.
func checkDangling(label string, exprs []sql.Expression, allowed map[sql.ExprID]bool) error {
	for _, e := range exprs {
		found, ok := transform.CollectFirst(e, func(x sql.Expression) bool {
			ref, ok := x.(*expression.AttributeRef)
			return ok && !allowed[ref.IDVal]
		})
		if ok {
			return sql.ErrIllegalAggregation.New(label, found.String())
		}
	}
	return nil
}

func applyResolveAggregates(ctx *sql.Context, agg *plan.UnresolvedAggregate) (sql.LogicalPlan, error) {
	// Step 1: bind each grouping key to a fresh GroupingAlias.
	groupingAliases := make([]sql.Expression, len(agg.GroupingKeys))
	keySubs := make([]aggSubstitution, len(agg.GroupingKeys))
	for i, key := range agg.GroupingKeys {
		ga := expression.NewGroupingAlias(displayName(ctx, key), key)
		groupingAliases[i] = ga
		keySubs[i] = aggSubstitution{original: key, attr: expression.NewAttributeRef(attrOfNamed(ga))}
	}

	// Step 2: collect and de-duplicate aggregate functions.
	allExprs := append(append(append([]sql.Expression{}, agg.ProjectList...), agg.HavingConditions...), orderExprs(agg.Order)...)
	collected := dedupeExprs(collectAggregateFunctions(allExprs))

	// Step 3: reject nested aggregates.
	if err := checkNestedAggregates(collected); err != nil {
		return nil, err
	}

	// Step 4: bind each collected aggregate to a fresh AggregationAlias.
	aggregationAliases := make([]sql.Expression, len(collected))
	aggSubs := make([]aggSubstitution, len(collected))
	for i, fn := range collected {
		aa := expression.NewAggregationAlias(displayName(ctx, fn), fn)
		aggregationAliases[i] = aa
		aggSubs[i] = aggSubstitution{original: fn, attr: expression.NewAttributeRef(attrOfNamed(aa))}
	}

	// Step 5: rewrite projectList, conditions, order (keys then aggregates).
	allSubs := append(append([]aggSubstitution{}, keySubs...), aggSubs...)
	newProjectList := make([]sql.Expression, len(agg.ProjectList))
	for i, e := range agg.ProjectList {
		rewritten, changed := applySubstitutions(e, allSubs)
		if changed {
			if _, isAttr := rewritten.(*expression.AttributeRef); isAttr && isBareTopLevelMatch(e, keySubs, aggSubs) {
				rewritten = expression.NewAlias(displayName(ctx, e), rewritten)
			}
		}
		newProjectList[i] = rewritten
	}
	newHaving := make([]sql.Expression, len(agg.HavingConditions))
	for i, e := range agg.HavingConditions {
		rewritten, _ := applySubstitutions(e, allSubs)
		newHaving[i] = rewritten
	}
	newOrder := make([]plan.SortOrder, len(agg.Order))
	for i, o := range agg.Order {
		rewritten, _ := applySubstitutions(o.Expr, allSubs)
		newOrder[i] = plan.SortOrder{Expr: rewritten, Desc: o.Desc}
	}

	// Step 6: dangling-attribute check.
	allowed := make(map[sql.ExprID]bool, len(groupingAliases)+len(aggregationAliases))
	for _, ga := range groupingAliases {
		allowed[ga.(sql.NamedExpression).ID()] = true
	}
	for _, aa := range aggregationAliases {
		allowed[aa.(sql.NamedExpression).ID()] = true
	}
	if err := checkDangling("SELECT field", newProjectList, allowed); err != nil {
		return nil, err
	}
	if err := checkDangling("HAVING condition", newHaving, allowed); err != nil {
		return nil, err
	}
	if err := checkDangling("ORDER BY expression", orderExprs(newOrder), allowed); err != nil {
		return nil, err
	}

	// Step 7: construct Aggregate, then optional Filter, Sort, outer Project.
	var result sql.LogicalPlan = plan.NewAggregate(agg.Child, groupingAliases, aggregationAliases)
	if len(newHaving) > 0 {
		result = plan.NewFilter(expression.JoinAnd(newHaving...), result)
	}
	if len(newOrder) > 0 {
		result = plan.NewSort(newOrder, result)
	}
	result = plan.NewProject(newProjectList, result)
	return result, nil
}

func orderExprs(order []plan.SortOrder) []sql.Expression {
	out := make([]sql.Expression, len(order))
	for i, o := range order {
		out[i] = o.Expr
	}
	return out
}

var resolveAggregatesRule = Rule{Name: "resolve_aggregates", Apply: resolveAggregates}
