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
	"github.com/veridian-data/sqlplan/sql/plan"
)

// TestInlineCTERelations confirms WITH cte AS (...) SELECT ... FROM cte
// substitutes every reference to the CTE's name with a SubqueryAlias
// wrapping the CTE body, and the With node itself disappears.
func TestInlineCTERelations(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	cteBody := plan.NewUnresolvedRelation("foo")
	outer := plan.NewProject(nil, plan.NewUnresolvedRelation("mycte"))
	with := plan.NewWith("mycte", cteBody, outer)

	result, err := inlineCTERelations(sql.NewEmptyContext(), a, with)
	require.NoError(err)

	proj, ok := result.(*plan.Project)
	require.True(ok, "the With node must disappear, leaving its child, got %T", result)
	alias, ok := proj.Child.(*plan.SubqueryAlias)
	require.True(ok, "expected the reference rewritten to a SubqueryAlias, got %T", proj.Child)
	require.Equal("mycte", alias.Alias)
	require.Same(cteBody, alias.Child)
}

// TestInlineCTERelationsNestedShadowing covers two WITHs sharing a name,
// the inner one being the outer one's CTE body:
// WITH t AS (WITH t AS (foo) t) t, with bare relations in place of
// SELECTs. Bottom-up order must substitute the inner With's own "t"
// reference against the inner CTE before the inner With node disappears,
// so the outer With's "t" receives the already-inlined body rather than
// looping back on itself.
func TestInlineCTERelationsNestedShadowing(t *testing.T) {
	a := NewDefault(newTestCatalog())

	innerCTE := plan.NewUnresolvedRelation("foo")
	innerWith := plan.NewWith("t", innerCTE, plan.NewUnresolvedRelation("t"))
	outerWith := plan.NewWith("t", innerWith, plan.NewUnresolvedRelation("t"))

	expected := plan.NewSubqueryAlias("t",
		plan.NewSubqueryAlias("t", plan.NewUnresolvedRelation("foo")),
	)

	runRuleTestCases(t, a, []ruleTestCase{
		{
			name:     "nested_with_shadowing",
			rule:     inlineCTERelations,
			input:    outerWith,
			expected: expected,
		},
	})
}
