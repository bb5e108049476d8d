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

// UnresolvedRelation is a table name pending a catalog lookup (spec.md
// §3, §4.4 ResolveRelations).
type UnresolvedRelation struct {
	RelName string
}

func NewUnresolvedRelation(name string) *UnresolvedRelation {
	return &UnresolvedRelation{RelName: name}
}

func (u *UnresolvedRelation) Children() []sql.LogicalPlan { return nil }

func (u *UnresolvedRelation) WithChildren(children []sql.LogicalPlan) (sql.LogicalPlan, error) {
	if len(children) != 0 {
		return nil, errChildCount("UnresolvedRelation", 0, len(children))
	}
	return u, nil
}

func (u *UnresolvedRelation) Output() []*sql.Attribute { return nil }
func (u *UnresolvedRelation) Resolved() bool           { return false }
func (u *UnresolvedRelation) String() string           { return "UnresolvedRelation(" + u.RelName + ")" }

// ResolvedRelation is a relation the catalog has bound to a concrete
// output schema. It is a leaf carrying the RelationID its catalog lookup
// assigned. A second copy produced by NewInstance for self-join
// deduplication keeps the same RelationID and differs only in its fresh
// attribute ids (SPEC_FULL.md "Multi-instance relations").
type ResolvedRelation struct {
	RelName     string
	Attrs       []*sql.Attribute
	RelationID  int64
}

func NewResolvedRelation(name string, attrs []*sql.Attribute, id int64) *ResolvedRelation {
	return &ResolvedRelation{RelName: name, Attrs: attrs, RelationID: id}
}

func (r *ResolvedRelation) Children() []sql.LogicalPlan { return nil }

func (r *ResolvedRelation) WithChildren(children []sql.LogicalPlan) (sql.LogicalPlan, error) {
	if len(children) != 0 {
		return nil, errChildCount("ResolvedRelation", 0, len(children))
	}
	return r, nil
}

func (r *ResolvedRelation) Output() []*sql.Attribute { return r.Attrs }
func (r *ResolvedRelation) Resolved() bool           { return true }
func (r *ResolvedRelation) String() string           { return "Relation(" + r.RelName + ")" }

// NewInstance returns a copy of this relation with every output
// attribute given a fresh id, satisfying sql.MultiInstanceRelation.
func (r *ResolvedRelation) NewInstance() (sql.LogicalPlan, error) {
	newAttrs := make([]*sql.Attribute, len(r.Attrs))
	for i, a := range r.Attrs {
		cp := *a
		cp.ID = sql.NewExprID()
		newAttrs[i] = &cp
	}
	return NewResolvedRelation(r.RelName, newAttrs, r.RelationID), nil
}
