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
	"github.com/veridian-data/sqlplan/sql/plan"
)

// TestExpandStarsBareStar covers spec.md §8's star-expansion scenario: a
// bare `*` over a resolved relation expands to every output attribute in
// order.
func TestExpandStarsBareStar(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	rel := plan.NewResolvedRelation("foo", []*sql.Attribute{
		{ID: sql.NewExprID(), Name: "a", Qualifier: "foo", Type: sql.Int32},
		{ID: sql.NewExprID(), Name: "b", Qualifier: "foo", Type: sql.String},
	}, 1)
	node := plan.NewProject([]sql.Expression{expression.NewStar()}, rel)

	result, err := expandStars(sql.NewEmptyContext(), a, node)
	require.NoError(err)

	proj := result.(*plan.Project)
	require.Len(proj.ProjectList, 2)
	require.Equal("a", proj.ProjectList[0].(*expression.AttributeRef).Name())
	require.Equal("b", proj.ProjectList[1].(*expression.AttributeRef).Name())
}

// TestExpandStarsQualifiedStarFiltersOtherSide confirms a join's
// qualified star (`foo.*`) only pulls attributes whose qualifier
// matches, leaving the other side's columns out.
func TestExpandStarsQualifiedStarFiltersOtherSide(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	left := plan.NewResolvedRelation("foo", []*sql.Attribute{
		{ID: sql.NewExprID(), Name: "a", Qualifier: "foo", Type: sql.Int32},
	}, 1)
	right := plan.NewResolvedRelation("bar", []*sql.Attribute{
		{ID: sql.NewExprID(), Name: "c", Qualifier: "bar", Type: sql.Float64},
	}, 2)
	join := plan.NewJoin(left, right, nil)
	node := plan.NewProject([]sql.Expression{expression.NewQualifiedStar("foo")}, join)

	result, err := expandStars(sql.NewEmptyContext(), a, node)
	require.NoError(err)

	proj := result.(*plan.Project)
	require.Len(proj.ProjectList, 1)
	require.Equal("a", proj.ProjectList[0].(*expression.AttributeRef).Name())
}
