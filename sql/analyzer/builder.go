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

import "io"

// resolutionBatchName, typeCheckBatchName and postAnalysisBatchName let
// callers locate and customize one of the three default batches by name
// without hard-coding its index.
const (
	resolutionBatchName   = "resolution"
	typeCheckBatchName    = "type_check"
	postAnalysisBatchName = "post_analysis_check"
)

// defaultBatches is the pipeline spec.md §4.2 and §4.4 describe: a single
// FixedPoint resolution batch running every rewrite rule to convergence,
// followed by a Once type-check batch, followed by a Once post-analysis
// check batch.
func defaultBatches() []RuleBatch {
	return []RuleBatch{
		{
			Name:     resolutionBatchName,
			Strategy: FixedPoint,
			Limit:    Unlimited,
			Rules: []Rule{
				inlineCTERelationsRule,
				resolveRelationsRule,
				resolveFunctionsRule,
				expandStarsRule,
				resolveReferencesRule,
				resolveAliasesRule,
				deduplicateReferencesRule,
				rewriteDistinctAggregateFunctionsRule,
				resolveSortReferencesRule,
				rewriteDistinctsAsAggregatesRule,
				globalAggregatesRule,
				mergeHavingConditionsRule,
				mergeSortsOverAggregatesRule,
				resolveAggregatesRule,
			},
		},
		{
			Name:     typeCheckBatchName,
			Strategy: Once,
			Rules:    []Rule{typeCheckRule},
		},
		{
			Name:     postAnalysisBatchName,
			Strategy: Once,
			Rules:    []Rule{postAnalysisChecksRule},
		},
	}
}

// Builder assembles an Analyzer one customization at a time. The zero
// value is not usable; obtain one from NewBuilder.
type Builder struct {
	analyzer *Analyzer
}

// Build returns the assembled Analyzer.
func (b *Builder) Build() *Analyzer {
	return b.analyzer
}

// WithDebug turns on trace logging to w.
func (b *Builder) WithDebug(w io.Writer) *Builder {
	b.analyzer.Debug = true
	b.analyzer.LogWriter = w
	return b
}

// AddPostAnalysisRule appends a rule to the post-analysis check batch,
// the extension point for a caller-defined invariant (e.g. a privilege
// check) that should run after the plan is fully resolved and typed.
func (b *Builder) AddPostAnalysisRule(r Rule) *Builder {
	for i := range b.analyzer.Batches {
		if b.analyzer.Batches[i].Name == postAnalysisBatchName {
			b.analyzer.Batches[i].Rules = append(b.analyzer.Batches[i].Rules, r)
			return b
		}
	}
	return b
}

// WithBatches replaces the analyzer's entire batch pipeline, for a caller
// that wants full control over rule ordering and strategy.
func (b *Builder) WithBatches(batches []RuleBatch) *Builder {
	b.analyzer.Batches = batches
	return b
}
