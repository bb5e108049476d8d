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

// Join is a binary operator combining rows of Left and Right matching
// Condition. A nil Condition is a cross join.
type Join struct {
	Left, Right sql.LogicalPlan
	Condition   sql.Expression
}

func NewJoin(left, right sql.LogicalPlan, condition sql.Expression) *Join {
	return &Join{Left: left, Right: right, Condition: condition}
}

func NewCrossJoin(left, right sql.LogicalPlan) *Join {
	return &Join{Left: left, Right: right}
}

func (j *Join) Children() []sql.LogicalPlan { return []sql.LogicalPlan{j.Left, j.Right} }

func (j *Join) WithChildren(children []sql.LogicalPlan) (sql.LogicalPlan, error) {
	if len(children) != 2 {
		return nil, errChildCount("Join", 2, len(children))
	}
	if children[0] == j.Left && children[1] == j.Right {
		return j, nil
	}
	return &Join{Left: children[0], Right: children[1], Condition: j.Condition}, nil
}

func (j *Join) Expressions() []sql.Expression {
	if j.Condition == nil {
		return nil
	}
	return []sql.Expression{j.Condition}
}

func (j *Join) WithExpressions(exprs []sql.Expression) (sql.LogicalPlan, error) {
	if len(exprs) == 0 {
		return &Join{Left: j.Left, Right: j.Right}, nil
	}
	if len(exprs) != 1 {
		return nil, errChildCount("Join.expressions", 1, len(exprs))
	}
	return &Join{Left: j.Left, Right: j.Right, Condition: exprs[0]}, nil
}

func (j *Join) Output() []*sql.Attribute {
	return append(append([]*sql.Attribute{}, j.Left.Output()...), j.Right.Output()...)
}

func (j *Join) Resolved() bool {
	if !j.Left.Resolved() || !j.Right.Resolved() {
		return false
	}
	return j.Condition == nil || j.Condition.Resolved()
}

func (j *Join) String() string { return "Join" }
