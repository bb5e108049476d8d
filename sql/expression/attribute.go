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

package expression

import "github.com/veridian-data/sqlplan/sql"

// AttributeRef is a resolved reference to a column: it carries the
// expression id of the attribute it names, plus its own cached type and
// qualifier so it need not be re-resolved against a schema to know its
// shape.
type AttributeRef struct {
	IDVal        sql.ExprID
	NameVal      string
	QualifierVal string
	Typ          sql.DataType
	NullableVal  bool
}

func NewAttributeRef(attr *sql.Attribute) *AttributeRef {
	return &AttributeRef{
		IDVal:        attr.ID,
		NameVal:      attr.Name,
		QualifierVal: attr.Qualifier,
		Typ:          attr.Type,
		NullableVal:  attr.Nullable,
	}
}

func (a *AttributeRef) Children() []sql.Expression { return nil }

func (a *AttributeRef) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, errChildCount("AttributeRef", 0, len(children))
	}
	return a, nil
}

func (a *AttributeRef) Type() sql.DataType { return a.Typ }
func (a *AttributeRef) Nullable() bool     { return a.NullableVal }
func (a *AttributeRef) Resolved() bool     { return true }
func (a *AttributeRef) Foldable() bool     { return false }
func (a *AttributeRef) Name() string       { return a.NameVal }
func (a *AttributeRef) Qualifier() string  { return a.QualifierVal }
func (a *AttributeRef) ID() sql.ExprID     { return a.IDVal }

func (a *AttributeRef) String() string {
	if a.QualifierVal != "" {
		return a.QualifierVal + "." + a.NameVal
	}
	return a.NameVal
}

// ToAttribute converts a resolved attribute reference back into the
// sql.Attribute describing the column it names.
func (a *AttributeRef) ToAttribute() *sql.Attribute {
	return &sql.Attribute{ID: a.IDVal, Name: a.NameVal, Qualifier: a.QualifierVal, Type: a.Typ, Nullable: a.NullableVal}
}

// UnresolvedAttribute is a name, plus optional qualifier, that has not
// yet been bound to a schema column.
type UnresolvedAttribute struct {
	NameVal      string
	QualifierVal string
}

func NewUnresolvedAttribute(name string) *UnresolvedAttribute {
	return &UnresolvedAttribute{NameVal: name}
}

func NewUnresolvedQualifiedAttribute(qualifier, name string) *UnresolvedAttribute {
	return &UnresolvedAttribute{NameVal: name, QualifierVal: qualifier}
}

func (u *UnresolvedAttribute) Children() []sql.Expression { return nil }

func (u *UnresolvedAttribute) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, errChildCount("UnresolvedAttribute", 0, len(children))
	}
	return u, nil
}

func (u *UnresolvedAttribute) Type() sql.DataType { return sql.Null }
func (u *UnresolvedAttribute) Nullable() bool     { return true }
func (u *UnresolvedAttribute) Resolved() bool     { return false }
func (u *UnresolvedAttribute) Foldable() bool     { return false }
func (u *UnresolvedAttribute) Name() string       { return u.NameVal }
func (u *UnresolvedAttribute) Qualifier() string  { return u.QualifierVal }

func (u *UnresolvedAttribute) String() string {
	if u.QualifierVal != "" {
		return u.QualifierVal + "." + u.NameVal
	}
	return u.NameVal
}
