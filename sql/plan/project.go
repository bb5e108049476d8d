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

// Project computes a new row shape from its child's rows.
type Project struct {
	Child       sql.LogicalPlan
	ProjectList []sql.Expression
}

func NewProject(projectList []sql.Expression, child sql.LogicalPlan) *Project {
	return &Project{Child: child, ProjectList: projectList}
}

func (p *Project) Children() []sql.LogicalPlan { return []sql.LogicalPlan{p.Child} }

func (p *Project) WithChildren(children []sql.LogicalPlan) (sql.LogicalPlan, error) {
	if len(children) != 1 {
		return nil, errChildCount("Project", 1, len(children))
	}
	if children[0] == p.Child {
		return p, nil
	}
	return &Project{Child: children[0], ProjectList: p.ProjectList}, nil
}

func (p *Project) Expressions() []sql.Expression { return p.ProjectList }

func (p *Project) WithExpressions(exprs []sql.Expression) (sql.LogicalPlan, error) {
	if len(exprs) != len(p.ProjectList) {
		return nil, errChildCount("Project.expressions", len(p.ProjectList), len(exprs))
	}
	return &Project{Child: p.Child, ProjectList: exprs}, nil
}

func (p *Project) Output() []*sql.Attribute {
	out := make([]*sql.Attribute, 0, len(p.ProjectList))
	for _, e := range p.ProjectList {
		out = append(out, attributeOf(e))
	}
	return out
}

func (p *Project) Resolved() bool {
	return p.Child.Resolved() && exprsResolved(p.ProjectList)
}

func (p *Project) String() string { return "Project" }

// attributeOf converts a projected expression into the Attribute it
// contributes to a plan's output: named expressions keep their identity
// and display name, anything else (which should only ever be an already
// resolved NamedExpression by the time Output is observed meaningfully)
// falls back to a zero-value placeholder.
func attributeOf(e sql.Expression) *sql.Attribute {
	if named, ok := e.(sql.NamedExpression); ok {
		return &sql.Attribute{
			ID:        named.ID(),
			Name:      named.Name(),
			Qualifier: named.Qualifier(),
			Type:      e.Type(),
			Nullable:  e.Nullable(),
		}
	}
	return &sql.Attribute{Name: e.String(), Type: e.Type(), Nullable: e.Nullable()}
}
