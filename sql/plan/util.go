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

// Package plan implements the concrete LogicalPlan node kinds of
// spec.md §3, one discriminant per node kind (spec.md §9 "Closed
// variants over inheritance").
package plan

import (
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/veridian-data/sqlplan/sql"
)

var errMalformedTree = errors.NewKind("malformed tree for %s: expected %d children, got %d")

func errChildCount(kind string, want, got int) error {
	return errMalformedTree.New(kind, want, got)
}

func allResolved(children []sql.LogicalPlan) bool {
	for _, c := range children {
		if !c.Resolved() {
			return false
		}
	}
	return true
}

func exprsResolved(exprs []sql.Expression) bool {
	for _, e := range exprs {
		if !e.Resolved() {
			return false
		}
	}
	return true
}

// SortOrder pairs a sort key expression with its direction.
type SortOrder struct {
	Expr sql.Expression
	Desc bool
}
