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

// resolveRelations replaces every UnresolvedRelation(name) with the
// catalog's lookupRelation(name), bottom-up (spec.md §4.4).
func resolveRelations(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
	result, _, err := transform.Up(n, func(p sql.LogicalPlan) (sql.LogicalPlan, transform.TreeIdentity, error) {
		ur, ok := p.(*plan.UnresolvedRelation)
		if !ok {
			return p, transform.SameTree, nil
		}
		resolved, err := a.Catalog.LookupRelation(ctx, ur.RelName)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return resolved, transform.NewTree, nil
	})
	return result, err
}

var resolveRelationsRule = Rule{Name: "resolve_relations", Apply: resolveRelations}
