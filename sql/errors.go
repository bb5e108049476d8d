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

package sql

import errors "gopkg.in/src-d/go-errors.v1"

// Error taxonomy (spec.md §7). Each kind is a *errors.Kind from the
// teacher's own error library; callers distinguish them with Is(err)
// rather than type assertions.
var (
	// ErrTableNotFound is returned by a catalog lookup miss.
	ErrTableNotFound = errors.NewKind("table not found: %s")

	// ErrFunctionNotFound is returned by a function registry miss.
	ErrFunctionNotFound = errors.NewKind("function not found: %s")

	// ErrAmbiguousColumnName is returned when ResolveReferences finds more
	// than one candidate attribute for an unresolved name.
	ErrAmbiguousColumnName = errors.NewKind("ambiguous column name %q, candidates: %s")

	// ErrColumnNotFound is returned by the post-analysis check when an
	// unresolved attribute survives to the end of the resolution batch.
	ErrColumnNotFound = errors.NewKind("column not found: %s")

	// ErrPlanNotResolved is the post-analysis catch-all for any residual
	// unresolved plan node.
	ErrPlanNotResolved = errors.NewKind("plan is not resolved: %s")

	// ErrTypeMismatch carries the offending expression and its actual vs.
	// expected type.
	ErrTypeMismatch = errors.NewKind("type mismatch for %s: found %s, expected %s")

	// ErrIllegalAggregation covers both a nested aggregate function and a
	// raw attribute reference surviving ResolveAggregates in a part of
	// the query that is neither grouped nor aggregated.
	ErrIllegalAggregation = errors.NewKind("illegal aggregation in %s: %s")

	// ErrAnalysis is the catch-all for SQL-level misuse that doesn't fit
	// one of the more specific kinds (e.g. DISTINCT *, foo(*) for foo != count).
	ErrAnalysis = errors.NewKind("%s")

	// ErrUnsupportedOperation flags a construct the analyzer recognizes
	// but deliberately refuses to desugar (distinct aggregate functions).
	ErrUnsupportedOperation = errors.NewKind("unsupported operation: %s")

	// ErrMaxAnalysisIters names a FixedPoint batch running out of passes
	// while the tree is still changing. The analyzer's executor does not
	// return it: runBatch logs the non-convergence and moves on to the
	// next batch with the last tree it produced.
	ErrMaxAnalysisIters = errors.NewKind("exceeded max analysis iterations (%d)")
)
