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
	"github.com/veridian-data/sqlplan/sql/transform"
)

// resolveAliases turns each AutoAlias whose child is resolved into a real
// Alias named after the child's rendered SQL text, backticks and quotes
// stripped, or the context's configured anonymous column name if that
// text is empty (spec.md §4.4). Name construction is case-insensitive:
// the rendered text is lower-cased, matching the rest of the analyzer's
// case-insensitive display-name convention.
func resolveAliases(ctx *sql.Context, a *Analyzer, n sql.LogicalPlan) (sql.LogicalPlan, error) {
	result, _, err := transform.NodeExprsUp(n, func(e sql.Expression) (sql.Expression, transform.TreeIdentity, error) {
		aa, ok := e.(*expression.AutoAlias)
		if !ok || !aa.Child.Resolved() {
			return e, transform.SameTree, nil
		}
		name := strings.ToLower(stripQuotes(aa.Child.String()))
		if name == "" {
			name = ctx.AnonymousColumnName
		}
		return expression.NewAlias(name, aa.Child), transform.NewTree, nil
	})
	return result, err
}

func stripQuotes(s string) string {
	return strings.NewReplacer("`", "", "\"", "", "'", "").Replace(s)
}

var resolveAliasesRule = Rule{Name: "resolve_aliases", Apply: resolveAliases}
