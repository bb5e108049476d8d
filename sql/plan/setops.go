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

// SetOpKind distinguishes the three binary set operators.
type SetOpKind int

const (
	SetUnion SetOpKind = iota
	SetIntersect
	SetExcept
)

// SetOperation is Union/Intersect/Except over two same-shaped inputs; its
// output schema is the left input's (set operators in this algebra are
// positional, not name-matched).
type SetOperation struct {
	Kind        SetOpKind
	Left, Right sql.LogicalPlan
}

func NewUnion(left, right sql.LogicalPlan) *SetOperation {
	return &SetOperation{Kind: SetUnion, Left: left, Right: right}
}

func NewIntersect(left, right sql.LogicalPlan) *SetOperation {
	return &SetOperation{Kind: SetIntersect, Left: left, Right: right}
}

func NewExcept(left, right sql.LogicalPlan) *SetOperation {
	return &SetOperation{Kind: SetExcept, Left: left, Right: right}
}

func (s *SetOperation) Children() []sql.LogicalPlan { return []sql.LogicalPlan{s.Left, s.Right} }

func (s *SetOperation) WithChildren(children []sql.LogicalPlan) (sql.LogicalPlan, error) {
	if len(children) != 2 {
		return nil, errChildCount("SetOperation", 2, len(children))
	}
	if children[0] == s.Left && children[1] == s.Right {
		return s, nil
	}
	return &SetOperation{Kind: s.Kind, Left: children[0], Right: children[1]}, nil
}

func (s *SetOperation) Output() []*sql.Attribute { return s.Left.Output() }
func (s *SetOperation) Resolved() bool           { return s.Left.Resolved() && s.Right.Resolved() }
func (s *SetOperation) String() string {
	switch s.Kind {
	case SetUnion:
		return "Union"
	case SetIntersect:
		return "Intersect"
	case SetExcept:
		return "Except"
	}
	return "SetOperation"
}
