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

package plan

import "github.com/veridian-data/sqlplan/sql"

// With is a single CTE binding: Name is visible as a relation inside
// Child until InlineCTERelations substitutes CTERelation for every
// reference and discards this node (spec.md §4.4).
type With struct {
	Child       sql.LogicalPlan
	Name        string
	CTERelation sql.LogicalPlan
}

func NewWith(name string, cteRelation, child sql.LogicalPlan) *With {
	return &With{Child: child, Name: name, CTERelation: cteRelation}
}

func (w *With) Children() []sql.LogicalPlan {
	return []sql.LogicalPlan{w.CTERelation, w.Child}
}

func (w *With) WithChildren(children []sql.LogicalPlan) (sql.LogicalPlan, error) {
	if len(children) != 2 {
		return nil, errChildCount("With", 2, len(children))
	}
	if children[0] == w.CTERelation && children[1] == w.Child {
		return w, nil
	}
	return &With{Child: children[1], Name: w.Name, CTERelation: children[0]}, nil
}

func (w *With) Output() []*sql.Attribute { return w.Child.Output() }
func (w *With) Resolved() bool           { return false } // always rewritten away by InlineCTERelations
func (w *With) String() string           { return "With(" + w.Name + ")" }

// SubqueryAlias wraps a plan as a named relation — the shape
// InlineCTERelations substitutes in place of a CTE reference, and what a
// parenthesized derived table becomes once resolved.
type SubqueryAlias struct {
	Child sql.LogicalPlan
	Alias string
}

func NewSubqueryAlias(alias string, child sql.LogicalPlan) *SubqueryAlias {
	return &SubqueryAlias{Child: child, Alias: alias}
}

func (s *SubqueryAlias) Children() []sql.LogicalPlan { return []sql.LogicalPlan{s.Child} }

func (s *SubqueryAlias) WithChildren(children []sql.LogicalPlan) (sql.LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errChildCount("SubqueryAlias", 1, len(children))
	}
	if children[0] == s.Child {
		return s, nil
	}
	return &SubqueryAlias{Child: children[0], Alias: s.Alias}, nil
}

func (s *SubqueryAlias) Output() []*sql.Attribute {
	out := make([]*sql.Attribute, len(s.Child.Output()))
	for i, a := range s.Child.Output() {
		cp := *a
		cp.Qualifier = s.Alias
		out[i] = &cp
	}
	return out
}

func (s *SubqueryAlias) Resolved() bool { return s.Child.Resolved() }
func (s *SubqueryAlias) String() string { return "SubqueryAlias(" + s.Alias + ")" }

// Distinct removes duplicate rows from its child's output. Before
// TypeCheck, RewriteDistinctsAsAggregates replaces every Distinct with an
// equivalent group-by-everything Aggregate (spec.md §4.4).
type Distinct struct {
	Child sql.LogicalPlan
}

func NewDistinct(child sql.LogicalPlan) *Distinct {
	return &Distinct{Child: child}
}

func (d *Distinct) Children() []sql.LogicalPlan { return []sql.LogicalPlan{d.Child} }

func (d *Distinct) WithChildren(children []sql.LogicalPlan) (sql.LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errChildCount("Distinct", 1, len(children))
	}
	if children[0] == d.Child {
		return d, nil
	}
	return &Distinct{Child: children[0]}, nil
}

func (d *Distinct) Output() []*sql.Attribute { return d.Child.Output() }
func (d *Distinct) Resolved() bool           { return false } // always rewritten away before type check
func (d *Distinct) String() string           { return "Distinct" }
