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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veridian-data/sqlplan/memory"
	"github.com/veridian-data/sqlplan/sql"
	"github.com/veridian-data/sqlplan/sql/expression"
	"github.com/veridian-data/sqlplan/sql/plan"
)

func newTestCatalog() *memory.Catalog {
	c := memory.NewDefaultCatalog()
	c.AddTable("foo", []memory.Column{
		{Name: "a", Type: sql.Int32},
		{Name: "b", Type: sql.String},
	})
	c.AddTable("bar", []memory.Column{
		{Name: "a", Type: sql.Int32},
		{Name: "c", Type: sql.Float64},
	})
	return c
}

func uc(name string) *expression.UnresolvedAttribute {
	return expression.NewUnresolvedAttribute(name)
}

func uqc(qualifier, name string) *expression.UnresolvedAttribute {
	return expression.NewUnresolvedQualifiedAttribute(qualifier, name)
}

// TestAnalyzeSimpleProjection exercises the whole default pipeline end to
// end on an unqualified, unresolved SELECT a, b FROM foo.
func TestAnalyzeSimpleProjection(t *testing.T) {
	require := require.New(t)
	cat := newTestCatalog()
	a := NewDefault(cat)

	node := plan.NewProject(
		[]sql.Expression{uc("a"), uc("b")},
		plan.NewUnresolvedRelation("foo"),
	)

	result, err := a.Analyze(sql.NewEmptyContext(), node)
	require.NoError(err)
	require.True(result.Resolved())

	output := result.Output()
	require.Len(output, 2)
	require.Equal("a", output[0].Name)
	require.Equal("b", output[1].Name)
}

// TestAnalyzeUnknownTableFails confirms ResolveRelations surfaces the
// catalog's own ErrTableNotFound rather than looping forever over an
// UnresolvedRelation no rule can ever turn into something resolved.
func TestAnalyzeUnknownTableFails(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	node := plan.NewProject(
		[]sql.Expression{expression.NewStar()},
		plan.NewUnresolvedRelation("nope"),
	)

	_, err := a.Analyze(sql.NewEmptyContext(), node)
	require.True(sql.ErrTableNotFound.Is(err), "expected ErrTableNotFound, got %v", err)
}

// TestAnalyzeIdempotent checks that re-running the full pipeline against
// its own prior output is a no-op (spec.md §8's idempotence invariant):
// once resolved and typed, nothing left for any rule to rewrite.
func TestAnalyzeIdempotent(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())
	ctx := sql.NewEmptyContext()

	node := plan.NewProject(
		[]sql.Expression{uc("a"), uc("b")},
		plan.NewUnresolvedRelation("foo"),
	)

	once, err := a.Analyze(ctx, node)
	require.NoError(err)

	twice, err := a.Analyze(ctx, once)
	require.NoError(err)

	require.True(sql.StructurallyEqual(once, twice))
}

// TestRunBatchFixedPointConverges checks runBatch stops as soon as a pass
// makes no change, rather than burning through the whole pass budget.
func TestRunBatchFixedPointConverges(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	passes := 0
	counting := Rule{Name: "counting", Apply: func(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
		passes++
		return n, nil
	}}
	batch := RuleBatch{Name: "test", Strategy: FixedPoint, Limit: 10, Rules: []Rule{counting}}

	node := plan.NewResolvedRelation("foo", nil, 1)
	_, err := a.runBatch(sql.NewEmptyContext(), batch, node)
	require.NoError(err)
	require.Equal(1, passes, "a batch whose rule never changes the tree should run exactly one pass")
}

// TestRunBatchNonConvergenceIsNotFatal confirms a FixedPoint batch that
// never settles logs and returns its last result instead of erroring
// (spec.md §4.2) — deliberately different from a hard iteration cap.
func TestRunBatchNonConvergenceIsNotFatal(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())
	var log bytes.Buffer
	a.Debug = true
	a.LogWriter = &log

	flip := Rule{Name: "flip", Apply: func(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
		// Wraps the condition in one more Not every pass: never converges.
		f, ok := n.(*plan.Filter)
		if !ok {
			return n, nil
		}
		return plan.NewFilter(expression.NewNot(f.Condition), f.Child), nil
	}}
	batch := RuleBatch{Name: "flipper", Strategy: FixedPoint, Limit: 4, Rules: []Rule{flip}}

	node := plan.NewFilter(
		expression.NewLiteral(true, sql.Boolean),
		plan.NewResolvedRelation("foo", nil, 1),
	)
	result, err := a.runBatch(sql.NewEmptyContext(), batch, node)
	require.NoError(err)
	require.NotNil(result)
	require.True(strings.Contains(log.String(), "did not converge"))
}

// TestBuilderAddPostAnalysisRule confirms a caller-supplied rule added to
// the post-analysis batch actually runs during Analyze.
func TestBuilderAddPostAnalysisRule(t *testing.T) {
	require := require.New(t)
	called := false
	custom := Rule{Name: "custom_check", Apply: func(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
		called = true
		return n, nil
	}}
	a := NewBuilder(newTestCatalog()).AddPostAnalysisRule(custom).Build()

	node := plan.NewProject([]sql.Expression{uc("a")}, plan.NewUnresolvedRelation("foo"))
	_, err := a.Analyze(sql.NewEmptyContext(), node)
	require.NoError(err)
	require.True(called)
}
