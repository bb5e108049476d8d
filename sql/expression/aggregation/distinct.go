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

package aggregation

import "github.com/veridian-data/sqlplan/sql"

// Distinct wraps an AggregateFunction to request duplicate-eliminated
// input (spec.md §3's "distinct aggregate function"). Per spec.md §4.4
// RewriteDistinctAggregateFunctions, no Distinct survives analysis today
// — the desugaring to two-phase aggregation or a self-join is an open
// question the analyzer declines to guess at (spec.md §9).
type Distinct struct {
	Inner sql.AggregateFunction
}

func NewDistinct(inner sql.AggregateFunction) *Distinct {
	return &Distinct{Inner: inner}
}

func (d *Distinct) Children() []sql.Expression { return []sql.Expression{d.Inner} }

func (d *Distinct) WithChildren(children []sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, errChildCount("Distinct", 1, len(children))
	}
	if children[0] == sql.Expression(d.Inner) {
		return d, nil
	}
	inner, ok := children[0].(sql.AggregateFunction)
	if !ok {
		return nil, errChildCount("Distinct", 1, 1)
	}
	return NewDistinct(inner), nil
}

func (d *Distinct) Type() sql.DataType { return d.Inner.Type() }
func (d *Distinct) Nullable() bool     { return d.Inner.Nullable() }
func (d *Distinct) Resolved() bool     { return d.Inner.Resolved() }
func (d *Distinct) Foldable() bool     { return false }
func (d *Distinct) FunctionName() string {
	return d.Inner.FunctionName()
}
func (d *Distinct) Unwrap() sql.AggregateFunction { return d.Inner }

func (d *Distinct) String() string { return "DISTINCT " + d.Inner.String() }
