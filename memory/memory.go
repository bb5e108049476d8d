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

// Package memory is a minimal in-memory catalog.Catalog, the test
// double the teacher's own "memory" package plays for every analyzer
// test fixture (sql/analyzer/*_test.go import "github.com/dolthub/go-mysql-server/memory").
// It has no storage engine behind it — registering a table just remembers
// its schema for LookupRelation to hand back.
package memory

import (
	"github.com/veridian-data/sqlplan/catalog"
	"github.com/veridian-data/sqlplan/sql"
	"github.com/veridian-data/sqlplan/sql/plan"
)

// Column describes one column of a registered table.
type Column struct {
	Name     string
	Type     sql.DataType
	Nullable bool
}

// Catalog is a fixed set of named tables plus registered functions.
type Catalog struct {
	tables    map[string][]Column
	functions map[string]catalog.FunctionInfo
	nextRelID int64
}

func NewCatalog() *Catalog {
	return &Catalog{
		tables:    make(map[string][]Column),
		functions: make(map[string]catalog.FunctionInfo),
	}
}

// AddTable registers a table under name with the given columns.
func (c *Catalog) AddTable(name string, columns []Column) {
	c.tables[name] = columns
}

// AddFunction registers a function under name.
func (c *Catalog) AddFunction(name string, fn catalog.FunctionInfo) {
	c.functions[name] = fn
}

func (c *Catalog) LookupRelation(ctx *sql.Context, name string) (sql.LogicalPlan, error) {
	cols, ok := c.tables[name]
	if !ok {
		return nil, sql.ErrTableNotFound.New(name)
	}
	c.nextRelID++
	attrs := make([]*sql.Attribute, len(cols))
	for i, col := range cols {
		attrs[i] = &sql.Attribute{
			ID:        sql.NewExprID(),
			Name:      col.Name,
			Qualifier: name,
			Type:      col.Type,
			Nullable:  col.Nullable,
		}
	}
	return plan.NewResolvedRelation(name, attrs, c.nextRelID), nil
}

func (c *Catalog) Functions() catalog.FunctionRegistry { return functionRegistry{c} }

type functionRegistry struct{ c *Catalog }

func (r functionRegistry) LookupFunction(name string) (catalog.FunctionInfo, error) {
	fn, ok := r.c.functions[name]
	if !ok {
		return nil, sql.ErrFunctionNotFound.New(name)
	}
	return fn, nil
}
