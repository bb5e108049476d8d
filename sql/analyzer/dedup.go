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
	"github.com/veridian-data/sqlplan/sql/transform"
)

// deduplicateReferences fixes up a binary plan node (join, set op) whose
// two children's combined output shares an attribute id — the classic
// self-join shape — by giving the right side fresh, disjoint ids (spec.md
// §4.4). Top-down so an outer conflict is resolved before ResolveReferences
// gets a chance to see the still-colliding inner one on the next pass.
func deduplicateReferences(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
	result, _, err := transform.Down(n, func(p sql.LogicalPlan) (sql.LogicalPlan, transform.TreeIdentity, error) {
		children := p.Children()
		if len(children) != 2 {
			return p, transform.SameTree, nil
		}
		left, right := children[0], children[1]
		if !left.Resolved() || !right.Resolved() {
			return p, transform.SameTree, nil
		}
		if subtreeDeduplicated(children) {
			return p, transform.SameTree, nil
		}

		leftIDs := idSet(left.Output())

		if mi, found := findMultiInstanceConflict(right, leftIDs); found {
			newRight, err := replaceNode(right, mi, func(old sql.LogicalPlan) (sql.LogicalPlan, error) {
				return old.(sql.MultiInstanceRelation).NewInstance()
			})
			if err != nil {
				return nil, transform.SameTree, err
			}
			rebuilt, err := p.WithChildren([]sql.LogicalPlan{left, newRight})
			if err != nil {
				return nil, transform.SameTree, err
			}
			return rebuilt, transform.NewTree, nil
		}

		newRight, changed, err := rewriteConflictingAliases(right, leftIDs)
		if err != nil {
			return nil, transform.SameTree, err
		}
		if !changed {
			return p, transform.SameTree, nil
		}
		rebuilt, err := p.WithChildren([]sql.LogicalPlan{left, newRight})
		if err != nil {
			return nil, transform.SameTree, err
		}
		return rebuilt, transform.NewTree, nil
	})
	return result, err
}

func idSet(attrs []*sql.Attribute) map[sql.ExprID]bool {
	m := make(map[sql.ExprID]bool, len(attrs))
	for _, a := range attrs {
		m[a.ID] = true
	}
	return m
}

// findMultiInstanceConflict looks inside right for a multi-instance
// relation whose own output collides with leftIDs — the node NewInstance
// must be called on.
func findMultiInstanceConflict(right sql.LogicalPlan, leftIDs map[sql.ExprID]bool) (sql.LogicalPlan, bool) {
	return transform.CollectFirst(right, func(p sql.LogicalPlan) bool {
		mi, ok := p.(sql.MultiInstanceRelation)
		if !ok {
			return false
		}
		for _, attr := range mi.Output() {
			if leftIDs[attr.ID] {
				return true
			}
		}
		return false
	})
}

func replaceNode(root, target sql.LogicalPlan, f func(sql.LogicalPlan) (sql.LogicalPlan, error)) (sql.LogicalPlan, error) {
	result, _, err := transform.Up(root, func(p sql.LogicalPlan) (sql.LogicalPlan, transform.TreeIdentity, error) {
		if p != target {
			return p, transform.SameTree, nil
		}
		replaced, err := f(p)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return replaced, transform.NewTree, nil
	})
	return result, err
}

// rewriteConflictingAliases reassigns a fresh id to every top-level
// aliased expression in right whose current id collides with leftIDs,
// then propagates that substitution to every attribute ref anywhere in
// right's subtree that pointed at the old id (spec.md §4.4 "propagate
// the id rewrite through the entire right subtree").
func rewriteConflictingAliases(right sql.LogicalPlan, leftIDs map[sql.ExprID]bool) (sql.LogicalPlan, bool, error) {
	idMap := map[sql.ExprID]sql.ExprID{}

	step1, _, err := transform.Up(right, func(p sql.LogicalPlan) (sql.LogicalPlan, transform.TreeIdentity, error) {
		en, ok := p.(sql.ExpressionsNode)
		if !ok {
			return p, transform.SameTree, nil
		}
		exprs := en.Expressions()
		newExprs := make([]sql.Expression, len(exprs))
		changed := false
		for i, e := range exprs {
			alias, ok := e.(*expression.Alias)
			if !ok || !leftIDs[alias.ID()] {
				newExprs[i] = e
				continue
			}
			newID := sql.NewExprID()
			idMap[alias.ID()] = newID
			newExprs[i] = alias.WithID(newID)
			changed = true
		}
		if !changed {
			return p, transform.SameTree, nil
		}
		rebuilt, err := en.WithExpressions(newExprs)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return rebuilt, transform.NewTree, nil
	})
	if err != nil {
		return nil, false, err
	}
	if len(idMap) == 0 {
		return right, false, nil
	}

	step2, _, err := transform.NodeExprsUp(step1, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		ref, ok := e.(*expression.AttributeRef)
		if !ok {
			return e, transform.SameTree, nil
		}
		newID, ok := idMap[ref.IDVal]
		if !ok {
			return e, transform.SameTree, nil
		}
		cp := *ref
		cp.IDVal = newID
		return &cp, transform.NewTree, nil
	})
	if err != nil {
		return nil, false, err
	}
	return step2, true, nil
}

var deduplicateReferencesRule = Rule{Name: "deduplicate_references", Apply: deduplicateReferences}
