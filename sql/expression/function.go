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

import (
	"strings"

	"github.com/veridian-data/sqlplan/sql"
)

// UnresolvedFunction is a call by name, pending lookup in the function
// registry (spec.md §3, §4.4 ResolveFunctions). Star is a sentinel
// UnresolvedFunction argument standing in for `count(*)`'s bare `*`.
type UnresolvedFunction struct {
	FuncName string
	Args     []sql.Expression
	Distinct bool
}

func NewUnresolvedFunction(name string, distinct bool, args ...sql.Expression) *UnresolvedFunction {
	return &UnresolvedFunction{FuncName: name, Args: args, Distinct: distinct}
}

func (f *UnresolvedFunction) Children() []sql.Expression { return f.Args }

func (f *UnresolvedFunction) WithChildren(children []sql.Expression) (sql.Expression, error) {
	cp := *f
	cp.Args = children
	return &cp, nil
}

func (f *UnresolvedFunction) Type() sql.DataType { return sql.Null }
func (f *UnresolvedFunction) Nullable() bool     { return true }
func (f *UnresolvedFunction) Resolved() bool     { return false }
func (f *UnresolvedFunction) Foldable() bool     { return false }

func (f *UnresolvedFunction) String() string {
	argStrs := make([]string, len(f.Args))
	for i, a := range f.Args {
		argStrs[i] = a.String()
	}
	prefix := ""
	if f.Distinct {
		prefix = "distinct "
	}
	return f.FuncName + "(" + prefix + strings.Join(argStrs, ", ") + ")"
}

// HasStarArg reports whether any argument is a bare Star, the shape
// ResolveFunctions must special-case (spec.md §4.4).
func (f *UnresolvedFunction) HasStarArg() bool {
	for _, a := range f.Args {
		if _, ok := a.(*Star); ok {
			return true
		}
	}
	return false
}
