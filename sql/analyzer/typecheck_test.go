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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veridian-data/sqlplan/sql"
	"github.com/veridian-data/sqlplan/sql/expression"
	"github.com/veridian-data/sqlplan/sql/expression/aggregation"
	"github.com/veridian-data/sqlplan/sql/plan"
)

// TestTypeCheckMixedNumericStringCoerces mirrors spec.md §8's worked
// example: "1" + 2 coerces the string literal to the integer literal's
// type rather than rejecting the expression outright.
func TestTypeCheckMixedNumericStringCoerces(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	expr := expression.NewPlus(
		expression.NewLiteral("1", sql.String),
		expression.NewLiteral(int32(2), sql.Int32),
	)
	node := plan.NewProject([]sql.Expression{expression.NewAlias("sum", expr)}, plan.NewResolvedRelation("foo", nil, 1))

	result, err := typeCheck(sql.NewEmptyContext(), a, node)
	require.NoError(err)

	proj := result.(*plan.Project)
	alias := proj.ProjectList[0].(*expression.Alias)
	arith := alias.Child.(*expression.Arithmetic)
	require.Equal(sql.Int32, arith.Right.Type())
	_, leftIsCast := arith.Left.(*expression.Cast)
	require.True(leftIsCast, "string literal should have been coerced with an explicit cast")
}

// TestTypeCheckPureStringArithmeticRejected confirms "1" + "2" fails type
// checking: neither operand is directly numeric, so there is no subtype
// to widen to (spec.md §4.3).
func TestTypeCheckPureStringArithmeticRejected(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	expr := expression.NewPlus(
		expression.NewLiteral("1", sql.String),
		expression.NewLiteral("2", sql.String),
	)
	node := plan.NewProject([]sql.Expression{expression.NewAlias("sum", expr)}, plan.NewResolvedRelation("foo", nil, 1))

	_, err := typeCheck(sql.NewEmptyContext(), a, node)
	require.Error(err)
	require.True(sql.ErrTypeMismatch.Is(err))
}

// TestTypeCheckMinMaxRequiresOrdered confirms Min/Max's OrderedType
// constraint rejects an argument with no ordering, such as an array.
func TestTypeCheckMinMaxRequiresOrdered(t *testing.T) {
	require := require.New(t)
	a := NewDefault(newTestCatalog())

	arrType := sql.NewArrayType(sql.Int32, false)
	node := plan.NewProject(
		[]sql.Expression{expression.NewAlias("m", aggregation.NewMin(expression.NewLiteral(nil, arrType)))},
		plan.NewResolvedRelation("foo", nil, 1),
	)

	_, err := typeCheck(sql.NewEmptyContext(), a, node)
	require.Error(err)
	require.True(sql.ErrTypeMismatch.Is(err))
}
