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
	"github.com/veridian-data/sqlplan/sql"
	"github.com/veridian-data/sqlplan/sql/expression"
	"github.com/veridian-data/sqlplan/sql/plan"
	"github.com/veridian-data/sqlplan/sql/transform"
)

// rewriteDistinctsAsAggregates turns Distinct(child) into a group-by-
// everything aggregate over child's own output (spec.md §4.4):
// equivalent to `child GROUP BY child.output SELECT child.output`.
func rewriteDistinctsAsAggregates(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
	result, _, err := transform.Up(n, func(p sql.LogicalPlan) (sql.LogicalPlan, transform.TreeIdentity, error) {
		d, ok := p.(*plan.Distinct)
		if !ok || !d.Child.Resolved() {
			return p, transform.SameTree, nil
		}
		output := d.Child.Output()
		keys := make([]sql.Expression, len(output))
		projectList := make([]sql.Expression, len(output))
		for i, attr := range output {
			keys[i] = expression.NewAttributeRef(attr)
			projectList[i] = expression.NewAttributeRef(attr)
		}
		return plan.NewUnresolvedAggregate(d.Child, keys, projectList, nil, nil), transform.NewTree, nil
	})
	return result, err
}

var rewriteDistinctsAsAggregatesRule = Rule{Name: "rewrite_distincts_as_aggregates", Apply: rewriteDistinctsAsAggregates}

// rewriteDistinctAggregateFunctions fails with UnsupportedOperation if
// any DistinctAggregateFunction survives to this point; desugaring
// distinct aggregates (two-phase aggregation, or a self-join against a
// deduplicated input) is an open question this analyzer declines to
// guess at (spec.md §9) — current policy is flat non-support.
func rewriteDistinctAggregateFunctions(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
	if found, ok := findSurvivingDistinctAggregate(n); ok {
		return nil, sql.ErrUnsupportedOperation.New("distinct aggregate function " + found.String())
	}
	return n, nil
}

// findSurvivingDistinctAggregate looks for any DistinctAggregateFunction
// left anywhere in n's plan/expression trees; shared by
// rewriteDistinctAggregateFunctions and the post-analysis check batch.
func findSurvivingDistinctAggregate(n sql.LogicalPlan) (sql.Expression, bool) {
	nodes := transform.Collect(n, func(p sql.LogicalPlan) bool {
		_, ok := p.(sql.ExpressionsNode)
		return ok
	})
	for _, p := range nodes {
		en := p.(sql.ExpressionsNode)
		for _, e := range en.Expressions() {
			if found, ok := transform.CollectFirst(e, func(x sql.Expression) bool {
				_, ok := x.(sql.DistinctAggregateFunction)
				return ok
			}); ok {
				return found, true
			}
		}
	}
	return nil, false
}

var rewriteDistinctAggregateFunctionsRule = Rule{Name: "rewrite_distinct_aggregate_functions", Apply: rewriteDistinctAggregateFunctions}
