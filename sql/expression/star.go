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

// Star is `*` or `qualifier.*`. It never survives analysis: ExpandStars
// replaces every occurrence with its child plan's output.
type Star struct {
	Qualifier string
}

func NewStar() *Star { return &Star{} }

func NewQualifiedStar(qualifier string) *Star { return &Star{Qualifier: qualifier} }

func (s *Star) Children() []sql.Expression { return nil }

func (s *Star) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, errChildCount("Star", 0, len(children))
	}
	return s, nil
}

func (s *Star) Type() sql.DataType { return sql.Null }
func (s *Star) Nullable() bool     { return true }
func (s *Star) Resolved() bool     { return false }
func (s *Star) Foldable() bool     { return false }

func (s *Star) String() string {
	if s.Qualifier != "" {
		return s.Qualifier + ".*"
	}
	return "*"
}
