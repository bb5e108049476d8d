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
	"github.com/veridian-data/sqlplan/sql/transform"
)

// postAnalysisChecks runs last (spec.md §4.4): it never rewrites the plan,
// only rejects one that resolution and type checking left in a bad state.
func postAnalysisChecks(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
	if err := checkMinimumUnresolvedPlan(n); err != nil {
		return nil, err
	}
	if err := checkMinimumUnresolvedExpressions(n); err != nil {
		return nil, err
	}
	if err := checkNoTopLevelGeneratedAttributes(n); err != nil {
		return nil, err
	}
	if found, ok := findSurvivingDistinctAggregate(n); ok {
		return nil, sql.ErrUnsupportedOperation.New("distinct aggregate function " + found.String())
	}
	return n, nil
}

var postAnalysisChecksRule = Rule{Name: "post_analysis_checks", Apply: postAnalysisChecks}

// checkMinimumUnresolvedPlan walks the plan bottom-up and reports the
// first unresolved node whose children are all themselves resolved — the
// "minimum unresolved" node, the one closest to the real cause (spec.md
// §4.4's post-analysis check).
func checkMinimumUnresolvedPlan(p sql.LogicalPlan) error {
	for _, c := range p.Children() {
		if err := checkMinimumUnresolvedPlan(c); err != nil {
			return err
		}
	}
	if p.Resolved() {
		return nil
	}
	for _, c := range p.Children() {
		if !c.Resolved() {
			return nil
		}
	}
	return sql.ErrPlanNotResolved.New(p.String())
}

// checkMinimumUnresolvedExpressions reports the first UnresolvedAttribute
// still reachable from any plan node's expressions: with every resolution
// rule having already run to fixed point, a surviving one means no
// candidate column was found anywhere in scope.
func checkMinimumUnresolvedExpressions(n sql.LogicalPlan) error {
	nodes := transform.Collect(n, func(p sql.LogicalPlan) bool {
		_, ok := p.(sql.ExpressionsNode)
		return ok
	})
	for _, p := range nodes {
		en := p.(sql.ExpressionsNode)
		for _, e := range en.Expressions() {
			if found, ok := transform.CollectFirst(e, func(x sql.Expression) bool {
				_, ok := x.(*expression.UnresolvedAttribute)
				return ok
			}); ok {
				return sql.ErrColumnNotFound.New(found.String())
			}
		}
	}
	return nil
}

// checkNoTopLevelGeneratedAttributes rejects a plan whose own root
// expressions still contain a bare GroupingAlias/AggregationAlias: every
// aggregate projection ResolveAggregates builds wraps generated attributes
// before they reach the outer project list, so a survivor here means a
// later rule exposed the aggregate's own output as the analysis's result.
func checkNoTopLevelGeneratedAttributes(n sql.LogicalPlan) error {
	en, ok := n.(sql.ExpressionsNode)
	if !ok {
		return nil
	}
	for _, e := range en.Expressions() {
		if _, ok := e.(expression.GeneratedNamedExpression); ok {
			named := e.(sql.NamedExpression)
			return sql.ErrAnalysis.New("generated attribute " + named.Name() + " leaked to top-level output")
		}
	}
	return nil
}
