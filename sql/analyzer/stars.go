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
	"github.com/veridian-data/sqlplan/sql/expression"
	"github.com/veridian-data/sqlplan/sql/plan"
	"github.com/veridian-data/sqlplan/sql/transform"
)

// expandStars replaces each Star in a resolved projection's project list
// with the matching attribute refs from the child's output (spec.md
// §4.4). A qualified star keeps only attributes with a matching
// qualifier; a bare star keeps every child attribute in order.
func expandStars(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
	result, _, err := transform.Down(n, func(p sql.LogicalPlan) (sql.LogicalPlan, transform.TreeIdentity, error) {
		proj, ok := p.(*plan.Project)
		if !ok || !proj.Child.Resolved() {
			return p, transform.SameTree, nil
		}

		anyStar := false
		for _, e := range proj.ProjectList {
			if _, ok := e.(*expression.Star); ok {
				anyStar = true
				break
			}
		}
		if !anyStar {
			return p, transform.SameTree, nil
		}

		newList := make([]sql.Expression, 0, len(proj.ProjectList))
		for _, e := range proj.ProjectList {
			star, ok := e.(*expression.Star)
			if !ok {
				newList = append(newList, e)
				continue
			}
			for _, attr := range proj.Child.Output() {
				if star.Qualifier != "" && !namesEqualLocal(ctx, attr.Qualifier, star.Qualifier) {
					continue
				}
				newList = append(newList, expression.NewAttributeRef(attr))
			}
		}

		rebuilt, err := proj.WithExpressions(newList)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return rebuilt, transform.NewTree, nil
	})
	return result, err
}

func namesEqualLocal(ctx *sql.Context, a, b string) bool {
	n := sql.Name{Name: a}
	return n.Equal(sql.Name{Name: b}, ctx.CaseSensitive)
}

var expandStarsRule = Rule{Name: "expand_stars", Apply: expandStars}
