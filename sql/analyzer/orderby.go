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

// resolveSortReferences widens a Sort(Project(child, projectList), order)
// whose order references attributes the projection pruned away: it
// reprojects child with the pruned attributes added, sorts, then
// reprojects down to the original project list (spec.md §4.4). It skips
// any projection containing an aggregate function — ResolveAggregates
// owns ordering over grouped queries.
func resolveSortReferences(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
	result, _, err := transform.Up(n, func(p sql.LogicalPlan) (sql.LogicalPlan, transform.TreeIdentity, error) {
		sort, ok := p.(*plan.Sort)
		if !ok {
			return p, transform.SameTree, nil
		}
		proj, ok := sort.Child.(*plan.Project)
		if !ok || !proj.Resolved() {
			return p, transform.SameTree, nil
		}
		if containsAggregateInExprs(proj.ProjectList) {
			return p, transform.SameTree, nil
		}

		projIDs := idSet(proj.Output())
		var missing []*sql.Attribute
		seen := map[sql.ExprID]bool{}
		for _, o := range sort.Order {
			refs := transform.Collect(o.Expr, func(e sql.Expression) bool {
				_, ok := e.(*expression.AttributeRef)
				return ok
			})
			for _, r := range refs {
				ref := r.(*expression.AttributeRef)
				if projIDs[ref.IDVal] || seen[ref.IDVal] {
					continue
				}
				seen[ref.IDVal] = true
				missing = append(missing, ref.ToAttribute())
			}
		}
		if len(missing) == 0 {
			return p, transform.SameTree, nil
		}

		extended := append([]sql.Expression{}, proj.ProjectList...)
		for _, attr := range missing {
			extended = append(extended, expression.NewAttributeRef(attr))
		}

		outer := make([]sql.Expression, len(proj.ProjectList))
		for i, e := range proj.ProjectList {
			named, ok := e.(sql.NamedExpression)
			if !ok {
				return p, transform.SameTree, nil
			}
			outer[i] = expression.NewAttributeRef(&sql.Attribute{
				ID:        named.ID(),
				Name:      named.Name(),
				Qualifier: named.Qualifier(),
				Type:      e.Type(),
				Nullable:  e.Nullable(),
			})
		}

		innerProject := plan.NewProject(extended, proj.Child)
		newSort := plan.NewSort(sort.Order, innerProject)
		outerProject := plan.NewProject(outer, newSort)
		return outerProject, transform.NewTree, nil
	})
	return result, err
}

var resolveSortReferencesRule = Rule{Name: "resolve_sort_references", Apply: resolveSortReferences}
