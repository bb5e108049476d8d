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

// Package analyzer implements the rule engine and analysis rule set of
// spec.md §4.2 and §4.4: a batched fixed-point executor that turns an
// unresolved logical plan into a resolved, strictly-typed one.
package analyzer

import (
	"fmt"
	"io"

	"github.com/veridian-data/sqlplan/catalog"
	"github.com/veridian-data/sqlplan/sql"
)

// Strategy is how a RuleBatch's rules are applied across passes.
type Strategy int

const (
	// Once applies each rule in the batch exactly once, in order.
	Once Strategy = iota
	// FixedPoint repeats the batch's rules, in order, until a full pass
	// makes no change or Limit passes have elapsed.
	FixedPoint
)

// Unlimited marks a FixedPoint batch with no explicit pass limit; the
// engine still bounds it with an implementation-defined safety cap
// rather than looping forever (spec.md §9).
const Unlimited = -1

const maxSafetyPasses = 100

// RuleFunc is the unary tree transform every analysis rule implements
// (spec.md §4.2 "A Rule is a unary function on trees").
type RuleFunc func(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error)

// Rule names a RuleFunc for logging, test lookup, and Builder removal.
type Rule struct {
	Name  string
	Apply RuleFunc
}

// RuleBatch is a named, ordered list of rules plus the strategy the
// executor applies them with.
type RuleBatch struct {
	Name     string
	Rules    []Rule
	Strategy Strategy
	// Limit bounds the number of passes for a FixedPoint batch. Unlimited
	// (or any non-positive value) falls back to maxSafetyPasses.
	Limit int
}

// Analyzer runs an ordered list of RuleBatches over a plan.
type Analyzer struct {
	Catalog catalog.Catalog
	Batches []RuleBatch

	// Debug gates Log output; off by default so a pure analysis run
	// produces no side effects (spec.md §5).
	Debug     bool
	LogWriter io.Writer
}

// NewBuilder starts a default analyzer construction against cat.
func NewBuilder(cat catalog.Catalog) *Builder {
	return &Builder{analyzer: &Analyzer{Catalog: cat, Batches: defaultBatches()}}
}

// NewDefault returns an analyzer with the default rule batches
// (spec.md §4.2's Resolution → Type check → Post-analysis check
// pipeline) and no customization.
func NewDefault(cat catalog.Catalog) *Analyzer {
	return NewBuilder(cat).Build()
}

// Log writes a formatted trace line when Debug is set; it is the
// analyzer's only ambient logging (SPEC_FULL.md "Ambient stack").
func (a *Analyzer) Log(format string, args ...any) {
	if !a.Debug {
		return
	}
	w := a.LogWriter
	if w == nil {
		w = io.Discard
	}
	fmt.Fprintf(w, format+"\n", args...)
}

// Analyze runs every batch in order over plan, returning the resolved,
// strictly-typed result or the first error any rule raises (spec.md §6).
func (a *Analyzer) Analyze(ctx *sql.Context, p sql.LogicalPlan) (sql.LogicalPlan, error) {
	cur := p
	for _, batch := range a.Batches {
		var err error
		cur, err = a.runBatch(ctx, batch, cur)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

func (a *Analyzer) runBatch(ctx *sql.Context, batch RuleBatch, p sql.LogicalPlan) (sql.LogicalPlan, error) {
	switch batch.Strategy {
	case Once:
		cur := p
		for _, r := range batch.Rules {
			a.Log("applying once rule %q", r.Name)
			var err error
			cur, err = r.Apply(ctx, a, cur)
			if err != nil {
				return nil, err
			}
		}
		return cur, nil

	case FixedPoint:
		limit := batch.Limit
		if limit <= 0 {
			limit = maxSafetyPasses
		}
		cur := p
		for i := 0; i < limit; i++ {
			pre := cur
			for _, r := range batch.Rules {
				a.Log("batch %q pass %d: applying rule %q", batch.Name, i, r.Name)
				var err error
				cur, err = r.Apply(ctx, a, cur)
				if err != nil {
					return nil, err
				}
			}
			if sql.StructurallyEqual(pre, cur) {
				return cur, nil
			}
		}
		// Non-convergence is not a failure (spec.md §4.2): a residual
		// unresolved/unchecked plan is caught by the post-analysis batch.
		a.Log("batch %q did not converge after %d passes", batch.Name, limit)
		return cur, nil

	default:
		return p, nil
	}
}
