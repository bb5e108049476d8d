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
	"strings"

	"github.com/veridian-data/sqlplan/sql"
	"github.com/veridian-data/sqlplan/sql/expression"
	"github.com/veridian-data/sqlplan/sql/transform"
)

// subtreeDeduplicated reports whether the combined output of children
// carries no repeated attribute id — the precondition ResolveReferences
// and DeduplicateReferences both check before doing anything, since a
// name lookup over a non-deduplicated subtree (e.g. an un-rewritten
// self-join) cannot tell which side an id-colliding attribute came from.
func subtreeDeduplicated(children []sql.LogicalPlan) bool {
	seen := make(map[sql.ExprID]bool)
	for _, c := range children {
		for _, attr := range c.Output() {
			if seen[attr.ID] {
				return false
			}
			seen[attr.ID] = true
		}
	}
	return true
}

func combinedOutput(children []sql.LogicalPlan) []*sql.Attribute {
	var out []*sql.Attribute
	for _, c := range children {
		out = append(out, c.Output()...)
	}
	return out
}

// resolveReferences binds each UnresolvedAttribute to the unique
// candidate attribute from the union of its plan node's children's
// outputs (spec.md §4.4). Zero candidates leaves the node unresolved for
// a later pass or rule; more than one is a fatal ambiguity.
func resolveReferences(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
	result, _, err := transform.Up(n, func(p sql.LogicalPlan) (sql.LogicalPlan, transform.TreeIdentity, error) {
		en, ok := p.(sql.ExpressionsNode)
		if !ok {
			return p, transform.SameTree, nil
		}
		children := p.Children()
		if !subtreeDeduplicated(children) {
			return p, transform.SameTree, nil
		}
		candidates := combinedOutput(children)

		exprs := en.Expressions()
		newExprs := make([]sql.Expression, len(exprs))
		anyChanged := false
		for i, e := range exprs {
			ne, same, err := resolveAttrsInExpr(ctx, e, candidates)
			if err != nil {
				return nil, transform.SameTree, err
			}
			newExprs[i] = ne
			if same == transform.NewTree {
				anyChanged = true
			}
		}
		if !anyChanged {
			return p, transform.SameTree, nil
		}
		rebuilt, err := en.WithExpressions(newExprs)
		if err != nil {
			return nil, transform.SameTree, err
		}
		return rebuilt, transform.NewTree, nil
	})
	return result, err
}

func resolveAttrsInExpr(ctx *sql.Context, e sql.Expression, candidates []*sql.Attribute) (sql.Expression, transform.TreeIdentity, error) {
	return transform.Up(e, func(node sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		ua, ok := node.(*expression.UnresolvedAttribute)
		if !ok {
			return node, transform.SameTree, nil
		}
		var matches []*sql.Attribute
		for _, attr := range candidates {
			if !namesEqualLocal(ctx, attr.Name, ua.NameVal) {
				continue
			}
			if ua.QualifierVal != "" && !namesEqualLocal(ctx, attr.Qualifier, ua.QualifierVal) {
				continue
			}
			matches = append(matches, attr)
		}
		switch len(matches) {
		case 0:
			return node, transform.SameTree, nil
		case 1:
			return expression.NewAttributeRef(matches[0]), transform.NewTree, nil
		default:
			names := make([]string, len(matches))
			for i, m := range matches {
				names[i] = m.String()
			}
			return node, transform.SameTree, sql.ErrAmbiguousColumnName.New(ua.String(), strings.Join(names, ", "))
		}
	})
}

var resolveReferencesRule = Rule{Name: "resolve_references", Apply: resolveReferences}
