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

// TestDeduplicateReferencesSelfJoin covers the canonical self-join shape
// (spec.md §8): the same resolved relation instance joined to itself
// must come out the other side with disjoint attribute ids on its right
// copy, via ResolvedRelation.NewInstance.
func TestDeduplicateReferencesSelfJoin(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	shared := plan.NewResolvedRelation("foo", []*sql.Attribute{
		{ID: sql.NewExprID(), Name: "a", Qualifier: "foo", Type: sql.Int32},
	}, 1)
	join := plan.NewJoin(shared, shared, nil)

	result, err := deduplicateReferences(sql.NewEmptyContext(), a, join)
	require.NoError(err)

	rejoined := result.(*plan.Join)
	require.NotEqual(rejoined.Left.Output()[0].ID, rejoined.Right.Output()[0].ID)
}

// TestDeduplicateReferencesConflictingAlias covers the second path
// (spec.md §4.4): two independently-built subtrees whose top-level
// aliases happen to collide on id get the right side's alias — and every
// reference to it — reassigned a fresh one.
func TestDeduplicateReferencesConflictingAlias(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	sharedID := sql.NewExprID()
	leftAlias := &expression.Alias{IDVal: sharedID, Label: "x", Child: expression.NewLiteral(int32(1), sql.Int32)}
	rightAlias := &expression.Alias{IDVal: sharedID, Label: "y", Child: expression.NewLiteral(int32(2), sql.Int32)}

	left := plan.NewProject([]sql.Expression{leftAlias}, plan.NewResolvedRelation("foo", nil, 1))
	right := plan.NewProject([]sql.Expression{rightAlias}, plan.NewResolvedRelation("bar", nil, 2))
	join := plan.NewJoin(left, right, nil)

	result, err := deduplicateReferences(sql.NewEmptyContext(), a, join)
	require.NoError(err)

	rejoined := result.(*plan.Join)
	newRightAlias := rejoined.Right.(*plan.Project).ProjectList[0].(*expression.Alias)
	require.NotEqual(sharedID, newRightAlias.IDVal)
	require.Equal(sharedID, leftAlias.IDVal, "left side's id must be untouched")
}
