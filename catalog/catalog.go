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

// Package catalog names the external interface the analyzer calls
// against (spec.md §1, §4.5): relation lookup and function resolution.
// Storage, persistence, and registration of tables/functions are
// deliberately not this package's concern — only the read-side shape the
// analyzer consumes.
package catalog

import "github.com/veridian-data/sqlplan/sql"

// Catalog is the read-only surface the analyzer needs from whatever
// stores schema and function metadata.
type Catalog interface {
	// LookupRelation resolves a table/view name to its logical plan,
	// failing with sql.ErrTableNotFound if absent.
	LookupRelation(ctx *sql.Context, name string) (sql.LogicalPlan, error)
	// Functions returns the function registry this catalog resolves
	// unresolved function calls against.
	Functions() FunctionRegistry
}

// FunctionRegistry resolves a function name to its builder.
type FunctionRegistry interface {
	// LookupFunction resolves a function name, failing with
	// sql.ErrFunctionNotFound if absent.
	LookupFunction(name string) (FunctionInfo, error)
}

// FunctionInfo describes one registered function: whether it is an
// aggregate, and how to build the bound expression from resolved
// arguments (spec.md §4.5).
type FunctionInfo interface {
	Name() string
	IsAggregate() bool
	Build(args []sql.Expression) (sql.Expression, error)
}
