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

package transform

import "github.com/veridian-data/sqlplan/sql"

// NodeExprsUp lifts an expression-rewriting partial function to run at
// every expression position inside every plan node of the tree rooted at
// n (spec.md §4.1 "transform-expressions-down/up"), visiting expressions
// bottom-up within each node and visiting plan nodes bottom-up too.
func NodeExprsUp(n sql.LogicalPlan, f func(sql.Expression) (sql.Expression, TreeIdentity, error)) (sql.LogicalPlan, TreeIdentity, error) {
	return Up(n, func(p sql.LogicalPlan) (sql.LogicalPlan, TreeIdentity, error) {
		en, ok := p.(sql.ExpressionsNode)
		if !ok {
			return p, SameTree, nil
		}
		exprs := en.Expressions()
		newExprs := make([]sql.Expression, len(exprs))
		anyChanged := false
		for i, e := range exprs {
			ne, same, err := Up(e, f)
			if err != nil {
				return nil, SameTree, err
			}
			newExprs[i] = ne
			if same == NewTree {
				anyChanged = true
			}
		}
		if !anyChanged {
			return p, SameTree, nil
		}
		rebuilt, err := en.WithExpressions(newExprs)
		if err != nil {
			return nil, SameTree, err
		}
		return rebuilt, NewTree, nil
	})
}

// NodeExprsDown is NodeExprsUp's top-down counterpart: each plan node's
// expressions are rewritten top-down before descending into children.
func NodeExprsDown(n sql.LogicalPlan, f func(sql.Expression) (sql.Expression, TreeIdentity, error)) (sql.LogicalPlan, TreeIdentity, error) {
	return Down(n, func(p sql.LogicalPlan) (sql.LogicalPlan, TreeIdentity, error) {
		en, ok := p.(sql.ExpressionsNode)
		if !ok {
			return p, SameTree, nil
		}
		exprs := en.Expressions()
		newExprs := make([]sql.Expression, len(exprs))
		anyChanged := false
		for i, e := range exprs {
			ne, same, err := Down(e, f)
			if err != nil {
				return nil, SameTree, err
			}
			newExprs[i] = ne
			if same == NewTree {
				anyChanged = true
			}
		}
		if !anyChanged {
			return p, SameTree, nil
		}
		rebuilt, err := en.WithExpressions(newExprs)
		if err != nil {
			return nil, SameTree, err
		}
		return rebuilt, NewTree, nil
	})
}
