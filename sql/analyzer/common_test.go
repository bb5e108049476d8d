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
	"fmt"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veridian-data/sqlplan/sql"
)

// assertPlansEqualWithDiff asserts expected and actual are structurally
// equal, printing a unified diff of their DebugString renderings when
// they aren't — the same shape of failure output the teacher's own
// analyzer tests produce for a mismatched plan tree.
func assertPlansEqualWithDiff(t *testing.T, expected, actual sql.LogicalPlan) bool {
	t.Helper()
	if sql.StructurallyEqual(expected, actual) {
		return true
	}
	expectedStr := sql.DebugString(expected)
	actualStr := sql.DebugString(actual)
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expectedStr),
		B:        difflib.SplitLines(actualStr),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  2,
	})
	require.NoError(t, err)
	assert.Fail(t, "plans are not structurally equal", fmt.Sprintf("\n%s", diff))
	return false
}

// ruleTestCase is the table-driven shape shared by the rule-level tests
// that just want to run one rule once and compare the resulting tree
// (spec.md §4.2's "A Rule is a unary function on trees").
type ruleTestCase struct {
	name     string
	rule     RuleFunc
	input    sql.LogicalPlan
	expected sql.LogicalPlan
}

func runRuleTestCases(t *testing.T, a *Analyzer, cases []ruleTestCase) {
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := tc.rule(sql.NewEmptyContext(), a, tc.input)
			require.NoError(t, err)
			assertPlansEqualWithDiff(t, tc.expected, result)
		})
	}
}
