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

// TestResolveSortReferencesWidensProjection confirms ORDER BY on a
// column the SELECT list pruned away still works, by reprojecting the
// missing attribute through and dropping it again on the way out.
func TestResolveSortReferencesWidensProjection(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	colA := &sql.Attribute{ID: sql.NewExprID(), Name: "a", Qualifier: "foo", Type: sql.Int32}
	colB := &sql.Attribute{ID: sql.NewExprID(), Name: "b", Qualifier: "foo", Type: sql.String}
	rel := plan.NewResolvedRelation("foo", []*sql.Attribute{colA, colB}, 1)

	proj := plan.NewProject([]sql.Expression{expression.NewAttributeRef(colA)}, rel)
	sort := plan.NewSort([]plan.SortOrder{{Expr: expression.NewAttributeRef(colB)}}, proj)

	result, err := resolveSortReferences(sql.NewEmptyContext(), a, sort)
	require.NoError(err)

	outer, ok := result.(*plan.Project)
	require.True(ok, "expected outer Project, got %T", result)
	require.Len(outer.ProjectList, 1)
	require.Equal("a", outer.ProjectList[0].(sql.NamedExpression).Name())

	innerSort, ok := outer.Child.(*plan.Sort)
	require.True(ok, "expected Sort under the outer Project, got %T", outer.Child)
	innerProj, ok := innerSort.Child.(*plan.Project)
	require.True(ok, "expected inner Project under the Sort, got %T", innerSort.Child)
	require.Len(innerProj.ProjectList, 2, "inner project must carry both the original and the sort-only column")
}

// TestResolveSortReferencesSkipsAggregateProjections confirms the rule
// leaves a Sort over an aggregate-bearing Project alone: ResolveAggregates
// owns ordering once a Project collapses into an aggregate.
func TestResolveSortReferencesSkipsAggregateProjections(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	colA := &sql.Attribute{ID: sql.NewExprID(), Name: "a", Type: sql.Int32}
	rel := plan.NewResolvedRelation("foo", []*sql.Attribute{colA}, 1)
	countExpr := aggregation.NewCount(expression.NewAttributeRef(colA))
	proj := plan.NewProject([]sql.Expression{expression.NewAlias("c", countExpr)}, rel)
	sort := plan.NewSort([]plan.SortOrder{{Expr: expression.NewAttributeRef(colA)}}, proj)

	result, err := resolveSortReferences(sql.NewEmptyContext(), a, sort)
	require.NoError(err)
	require.Same(sort, result, "a Sort over an aggregate projection must be left untouched")
}
