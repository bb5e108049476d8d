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
	"github.com/veridian-data/sqlplan/sql"
	"github.com/veridian-data/sqlplan/sql/plan"
	"github.com/veridian-data/sqlplan/sql/transform"
)

// inlineCTERelations replaces each With(child, name, cte) with child, in
// which every UnresolvedRelation(name) has been substituted by cte
// wrapped as a SubqueryAlias(name) (spec.md §4.4). Bottom-up order means
// an inner With's own substitution runs, and that With node disappears,
// before an outer With of the same name gets a chance to shadow it.
func inlineCTERelations(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
	result, _, err := transform.Up(n, func(p sql.LogicalPlan) (sql.LogicalPlan, transform.TreeIdentity, error) {
		with, ok := p.(*plan.With)
		if !ok {
			return p, transform.SameTree, nil
		}
		substituted := plan.NewSubqueryAlias(with.Name, with.CTERelation)
		rewritten, _, err := transform.Up(with.Child, func(q sql.LogicalPlan) (sql.LogicalPlan, transform.TreeIdentity, error) {
			ur, ok := q.(*plan.UnresolvedRelation)
			if !ok || ur.RelName != with.Name {
				return q, transform.SameTree, nil
			}
			return substituted, transform.NewTree, nil
		})
		if err != nil {
			return nil, transform.SameTree, err
		}
		return rewritten, transform.NewTree, nil
	})
	return result, err
}

var inlineCTERelationsRule = Rule{Name: "inline_cte_relations", Apply: inlineCTERelations}
