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

// TestResolveFunctionsCountStar confirms count(*) is special-cased into
// Count(Literal(1)) rather than attempting (and failing) a normal
// catalog lookup with a bare Star argument.
func TestResolveFunctionsCountStar(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	node := plan.NewProject(
		[]sql.Expression{expression.NewUnresolvedFunction("count", false, expression.NewStar())},
		plan.NewResolvedRelation("foo", nil, 1),
	)

	result, err := resolveFunctions(sql.NewEmptyContext(), a, node)
	require.NoError(err)

	proj := result.(*plan.Project)
	count, ok := proj.ProjectList[0].(*aggregation.Count)
	require.True(ok, "expected *aggregation.Count, got %T", proj.ProjectList[0])
	require.True(count.Resolved())
}

// TestResolveFunctionsRejectsStarForNonCount confirms sum(*) is rejected
// rather than silently accepted — only count ever takes a bare star.
func TestResolveFunctionsRejectsStarForNonCount(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	node := plan.NewProject(
		[]sql.Expression{expression.NewUnresolvedFunction("sum", false, expression.NewStar())},
		plan.NewResolvedRelation("foo", nil, 1),
	)

	_, err := resolveFunctions(sql.NewEmptyContext(), a, node)
	require.Error(err)
	require.True(sql.ErrAnalysis.Is(err))
}

// TestResolveFunctionsUnknownFunction confirms an unregistered function
// name surfaces the catalog's own ErrFunctionNotFound.
func TestResolveFunctionsUnknownFunction(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	node := plan.NewProject(
		[]sql.Expression{expression.NewUnresolvedFunction("nope", false, expression.NewLiteral(int32(1), sql.Int32))},
		plan.NewResolvedRelation("foo", nil, 1),
	)

	_, err := resolveFunctions(sql.NewEmptyContext(), a, node)
	require.Error(err)
	require.True(sql.ErrFunctionNotFound.Is(err))
}

// TestResolveFunctionsDistinctWrapsAggregate confirms sum(distinct a)
// wraps the built aggregate in aggregation.Distinct.
func TestResolveFunctionsDistinctWrapsAggregate(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	col := &sql.Attribute{ID: sql.NewExprID(), Name: "a", Type: sql.Int32}
	node := plan.NewProject(
		[]sql.Expression{expression.NewUnresolvedFunction("sum", true, expression.NewAttributeRef(col))},
		plan.NewResolvedRelation("foo", []*sql.Attribute{col}, 1),
	)

	result, err := resolveFunctions(sql.NewEmptyContext(), a, node)
	require.NoError(err)

	proj := result.(*plan.Project)
	_, ok := proj.ProjectList[0].(*aggregation.Distinct)
	require.True(ok, "expected *aggregation.Distinct, got %T", proj.ProjectList[0])
}
