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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veridian-data/sqlplan/sql"
	"github.com/veridian-data/sqlplan/sql/expression"
	"github.com/veridian-data/sqlplan/sql/expression/aggregation"
	"github.com/veridian-data/sqlplan/sql/plan"
)

// TestGlobalAggregateViaHaving covers spec.md §8's "global aggregate via
// having" scenario: SELECT count(*) FROM foo HAVING count(*) > 1, with no
// GROUP BY at all, resolves into a single-row Aggregate with a Filter on
// top referencing the very same count attribute by id, never
// recomputing it.
func TestGlobalAggregateViaHaving(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())
	ctx := sql.NewEmptyContext()

	countExpr := expression.NewUnresolvedFunction("count", false, expression.NewStar())
	node := plan.NewFilter(
		expression.NewGreaterThan(
			expression.NewUnresolvedFunction("count", false, expression.NewStar()),
			expression.NewLiteral(int64(1), sql.Int64),
		),
		plan.NewProject(
			[]sql.Expression{expression.NewAutoAlias(countExpr)},
			plan.NewUnresolvedRelation("foo"),
		),
	)

	result, err := a.Analyze(ctx, node)
	require.NoError(err)
	require.True(result.Resolved())

	proj, ok := result.(*plan.Project)
	require.True(ok, "expected an outer Project, got %T", result)
	filter, ok := proj.Child.(*plan.Filter)
	require.True(ok, "expected a Filter between the outer Project and the Aggregate, got %T", proj.Child)
	agg, ok := filter.Child.(*plan.Aggregate)
	require.True(ok, "expected the Aggregate at the bottom, got %T", filter.Child)
	require.Empty(agg.GroupingAliases, "a global aggregate has no grouping keys")
	require.Len(agg.AggregationAliases, 1, "count(*) in SELECT and in HAVING must collapse to one aggregation")
}

// TestResolveAggregatesRejectsNestedAggregate covers spec.md §8's
// "nested aggregate" scenario: sum(count(a)) is illegal regardless of
// grouping.
func TestResolveAggregatesRejectsNestedAggregate(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	inner := aggregation.NewCount(expression.NewAttributeRef(&sql.Attribute{ID: sql.NewExprID(), Name: "a", Type: sql.Int32}))
	outer := aggregation.NewSum(inner)
	agg := plan.NewUnresolvedAggregate(
		plan.NewResolvedRelation("foo", []*sql.Attribute{{ID: sql.NewExprID(), Name: "a", Type: sql.Int32}}, 1),
		nil,
		[]sql.Expression{expression.NewAlias("s", outer)},
		nil, nil,
	)

	_, err := resolveAggregates(ctx, nil, agg)
	require.Error(err)
	require.True(sql.ErrIllegalAggregation.Is(err))
}

// TestResolveAggregatesRejectsDanglingColumn covers the IllegalAggregation
// branch for a SELECT field that is neither grouped nor aggregated.
func TestResolveAggregatesRejectsDanglingColumn(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	colA := &sql.Attribute{ID: sql.NewExprID(), Name: "a", Type: sql.Int32}
	colB := &sql.Attribute{ID: sql.NewExprID(), Name: "b", Type: sql.String}
	rel := plan.NewResolvedRelation("foo", []*sql.Attribute{colA, colB}, 1)

	agg := plan.NewUnresolvedAggregate(
		rel,
		[]sql.Expression{expression.NewAttributeRef(colA)},
		[]sql.Expression{expression.NewAttributeRef(colA), expression.NewAttributeRef(colB)},
		nil, nil,
	)

	_, err := resolveAggregates(ctx, nil, agg)
	require.Error(err)
	require.True(sql.ErrIllegalAggregation.Is(err))
}

// TestRewriteDistinctAggregateFunctionsRejectsSurvivor confirms a distinct
// aggregate function is flagged as unsupported rather than silently
// accepted or miscounted as a plain aggregate.
func TestRewriteDistinctAggregateFunctionsRejectsSurvivor(t *testing.T) {
	require := require.New(t)
	ctx := sql.NewEmptyContext()

	colA := &sql.Attribute{ID: sql.NewExprID(), Name: "a", Type: sql.Int32}
	rel := plan.NewResolvedRelation("foo", []*sql.Attribute{colA}, 1)
	distinctCount := aggregation.NewDistinct(aggregation.NewCount(expression.NewAttributeRef(colA)))
	node := plan.NewProject([]sql.Expression{expression.NewAlias("c", distinctCount)}, rel)

	_, err := rewriteDistinctAggregateFunctions(ctx, nil, node)
	require.Error(err)
	require.True(sql.ErrUnsupportedOperation.Is(err))
}
