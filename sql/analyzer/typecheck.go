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
	"github.com/veridian-data/sqlplan/sql/constraint"
	"github.com/veridian-data/sqlplan/sql/transform"
)

// constrained is implemented by every expression kind that declares a
// type constraint (spec.md §4.3); expressions with no constraint (a bare
// literal or attribute ref) simply pass through typeCheck untouched.
type constrained interface {
	Constraint() *constraint.Constraint
}

// typeCheck runs every expression's own constraint bottom-up, replacing
// its children with the constraint's coerced result (spec.md §4.4). A
// constraint failure aborts the whole analysis; there is no partial
// recovery (spec.md §7).
func typeCheck(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
	result, _, err := transform.NodeExprsUp(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		c, ok := e.(constrained)
		if !ok {
			return e, transform.SameTree, nil
		}
		coerced, err := constraint.Eval(ctx, c.Constraint())
		if err != nil {
			return nil, transform.SameTree, err
		}
		rebuilt, err := e.WithChildren(coerced)
		if err != nil {
			return nil, transform.SameTree, err
		}
		if rebuilt == e {
			return e, transform.SameTree, nil
		}
		return rebuilt, transform.NewTree, nil
	})
	return result, err
}

var typeCheckRule = Rule{Name: "type_check", Apply: typeCheck}
