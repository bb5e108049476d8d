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

// TestResolveReferencesUnqualified confirms an unqualified column binds
// to the unique matching attribute across a join's combined output.
func TestResolveReferencesUnqualified(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	left := plan.NewResolvedRelation("foo", []*sql.Attribute{
		{ID: sql.NewExprID(), Name: "a", Qualifier: "foo", Type: sql.Int32},
	}, 1)
	right := plan.NewResolvedRelation("bar", []*sql.Attribute{
		{ID: sql.NewExprID(), Name: "c", Qualifier: "bar", Type: sql.Float64},
	}, 2)
	join := plan.NewJoin(left, right, nil)
	node := plan.NewProject([]sql.Expression{uc("c")}, join)

	result, err := resolveReferences(sql.NewEmptyContext(), a, node)
	require.NoError(err)
	proj := result.(*plan.Project)
	ref := proj.ProjectList[0].(*expression.AttributeRef)
	require.Equal("c", ref.Name())
	require.Equal(right.Attrs[0].ID, ref.ID())
}

// TestResolveReferencesAmbiguous confirms a column present on both sides
// of a join raises ErrAmbiguousColumnName rather than picking one
// arbitrarily.
func TestResolveReferencesAmbiguous(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	left := plan.NewResolvedRelation("foo", []*sql.Attribute{
		{ID: sql.NewExprID(), Name: "a", Qualifier: "foo", Type: sql.Int32},
	}, 1)
	right := plan.NewResolvedRelation("bar", []*sql.Attribute{
		{ID: sql.NewExprID(), Name: "a", Qualifier: "bar", Type: sql.Int32},
	}, 2)
	join := plan.NewJoin(left, right, nil)
	node := plan.NewProject([]sql.Expression{uc("a")}, join)

	_, err := resolveReferences(sql.NewEmptyContext(), a, node)
	require.Error(err)
	require.True(sql.ErrAmbiguousColumnName.Is(err))
}

// TestResolveReferencesSkipsNonDeduplicatedSubtree confirms
// ResolveReferences declines to touch a node whose children's combined
// output still collides on id — DeduplicateReferences must run first.
func TestResolveReferencesSkipsNonDeduplicatedSubtree(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	shared := plan.NewResolvedRelation("foo", []*sql.Attribute{
		{ID: sql.NewExprID(), Name: "a", Qualifier: "foo", Type: sql.Int32},
	}, 1)
	join := plan.NewJoin(shared, shared, nil)
	node := plan.NewProject([]sql.Expression{uc("a")}, join)

	result, err := resolveReferences(sql.NewEmptyContext(), a, node)
	require.NoError(err)

	proj := result.(*plan.Project)
	_, stillUnresolved := proj.ProjectList[0].(*expression.UnresolvedAttribute)
	require.True(stillUnresolved, "resolveReferences must not bind against a subtree with colliding ids")
}
