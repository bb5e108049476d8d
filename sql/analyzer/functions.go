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

package analyzer

import (
	"strings"

	"github.com/veridian-data/sqlplan/sql"
	"github.com/veridian-data/sqlplan/sql/expression"
	"github.com/veridian-data/sqlplan/sql/expression/aggregation"
	"github.com/veridian-data/sqlplan/sql/transform"
)

// resolveFunctions binds each UnresolvedFunction whose arguments are all
// resolved to a concrete Expression via the catalog's function registry
// (spec.md §4.4). count(*) is special-cased before lookup since Star
// never resolves to an Expression on its own.
func resolveFunctions(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
	result, _, err := transform.NodeExprsUp(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		fn, ok := e.(*expression.UnresolvedFunction)
		if !ok {
			return e, transform.SameTree, nil
		}
		if !exprsResolvedLocal(fn.Args) {
			return e, transform.SameTree, nil
		}

		isCount := strings.EqualFold(fn.FuncName, "count")
		if fn.HasStarArg() {
			if !isCount {
				return nil, transform.SameTree, sql.ErrAnalysis.New(fn.FuncName + "(*) is only valid for count")
			}
			if fn.Distinct {
				return nil, transform.SameTree, sql.ErrAnalysis.New("count(distinct *) is not valid")
			}
			return aggregation.NewCount(expression.NewLiteral(int64(1), sql.Int64)), transform.NewTree, nil
		}

		info, err := a.Catalog.Functions().LookupFunction(strings.ToLower(fn.FuncName))
		if err != nil {
			return nil, transform.SameTree, err
		}
		built, err := info.Build(fn.Args)
		if err != nil {
			return nil, transform.SameTree, err
		}

		if fn.Distinct {
			agg, ok := built.(sql.AggregateFunction)
			if !ok {
				return nil, transform.SameTree, sql.ErrAnalysis.New("distinct is not valid for non-aggregate function " + fn.FuncName)
			}
			return aggregation.NewDistinct(agg), transform.NewTree, nil
		}
		return built, transform.NewTree, nil
	})
	return result, err
}

func exprsResolvedLocal(exprs []sql.Expression) bool {
	for _, e := range exprs {
		if _, isStar := e.(*expression.Star); isStar {
			continue
		}
		if !e.Resolved() {
			return false
		}
	}
	return true
}

var resolveFunctionsRule = Rule{Name: "resolve_functions", Apply: resolveFunctions}
