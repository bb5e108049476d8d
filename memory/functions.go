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

package memory

import (
	"github.com/veridian-data/sqlplan/sql"
	"github.com/veridian-data/sqlplan/sql/expression/aggregation"
)

type builtin struct {
	name      string
	aggregate bool
	build     func(args []sql.Expression) (sql.Expression, error)
}

func (b builtin) Name() string      { return b.name }
func (b builtin) IsAggregate() bool { return b.aggregate }
func (b builtin) Build(args []sql.Expression) (sql.Expression, error) {
	return b.build(args)
}

// NewDefaultCatalog returns a Catalog preloaded with the aggregate
// functions spec.md's examples exercise (count, sum, avg, min, max).
// Callers add their own tables and any further functions on top.
func NewDefaultCatalog() *Catalog {
	c := NewCatalog()
	c.AddFunction("count", builtin{name: "count", aggregate: true, build: func(args []sql.Expression) (sql.Expression, error) {
		return aggregation.NewCount(args[0]), nil
	}})
	c.AddFunction("sum", builtin{name: "sum", aggregate: true, build: func(args []sql.Expression) (sql.Expression, error) {
		return aggregation.NewSum(args[0]), nil
	}})
	c.AddFunction("avg", builtin{name: "avg", aggregate: true, build: func(args []sql.Expression) (sql.Expression, error) {
		return aggregation.NewAvg(args[0]), nil
	}})
	c.AddFunction("min", builtin{name: "min", aggregate: true, build: func(args []sql.Expression) (sql.Expression, error) {
		return aggregation.NewMin(args[0]), nil
	}})
	c.AddFunction("max", builtin{name: "max", aggregate: true, build: func(args []sql.Expression) (sql.Expression, error) {
		return aggregation.NewMax(args[0]), nil
	}})
	return c
}
