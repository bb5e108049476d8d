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

// Package constraint implements the expression type-constraint system of
// spec.md §4.3 as a small ADT (spec.md §9 "Constraint combinators")
// evaluated by one function, rather than one Eval method per combinator.
// A Constraint is plain data built by the constructors below; its fields
// are unexported, so only Eval in this package interprets it.
package constraint

import "github.com/veridian-data/sqlplan/sql"

type kind int

const (
	kindPassThrough kind = iota
	kindSameTypeAs
	kindSameSubtypesOf
	kindSameType
	kindFoldable
	kindStrictlyTyped
	kindConcat
	kindAndThen
	kindOrElse
)

// Constraint is the ADT. Exactly the fields relevant to Kind are
// populated; the rest are zero.
type Constraint struct {
	kind kind

	args     []sql.Expression
	target   sql.DataType
	abstract sql.AbstractType

	a, b *Constraint
	next func([]sql.Expression) *Constraint
}

// PassThrough requires each argument to already be strictly typed, with
// no cross-argument requirement. It is the constraint for expressions
// whose children's types are independent (e.g. a struct literal).
func PassThrough(args ...sql.Expression) *Constraint {
	return &Constraint{kind: kindPassThrough, args: args}
}

// SameTypeAs requires each argument to be compatible with target and
// coerces each to it. Used by expressions with a fixed expected type for
// every operand (e.g. a function whose n-th parameter is declared INT).
func SameTypeAs(target sql.DataType, args ...sql.Expression) *Constraint {
	return &Constraint{kind: kindSameTypeAs, target: target, args: args}
}

// SameSubtypesOf requires at least one argument to be a direct subtype of
// abstract, computes the widest common type among just those subtype
// arguments, and coerces every argument (subtype or not) to that widest
// type. This is the constraint behind arithmetic operators: it accepts
// "1" + 2 (the literal 2 seeds NumericType, "1" gets cast to it) but
// rejects "1" + "2" (no argument is directly numeric).
func SameSubtypesOf(abstract sql.AbstractType, args ...sql.Expression) *Constraint {
	return &Constraint{kind: kindSameSubtypesOf, abstract: abstract, args: args}
}

// SameType coerces all arguments to their overall widest common type,
// with no abstract-class restriction (e.g. the branches of a CASE
// expression or the elements of an array literal).
func SameType(args ...sql.Expression) *Constraint {
	return &Constraint{kind: kindSameType, args: args}
}

// Foldable requires each argument to be foldable (spec.md's "free of
// attribute references and non-determinism").
func Foldable(args ...sql.Expression) *Constraint {
	return &Constraint{kind: kindFoldable, args: args}
}

// StrictlyTyped requires each argument's own constraint to already have
// succeeded. Since TypeCheck runs bottom-up (spec.md §4.4), by the time a
// parent constraint evaluates, every child has already been coerced by
// its own constraint (a failure there aborts TypeCheck), so Eval itself
// checks only that each argument is resolved.
func StrictlyTyped(args ...sql.Expression) *Constraint {
	return &Constraint{kind: kindStrictlyTyped, args: args}
}

// Concat requires both a and b to succeed and concatenates their
// coerced-child results, preserving each side's internal order.
func Concat(a, b *Constraint) *Constraint {
	return &Constraint{kind: kindConcat, a: a, b: b}
}

// AndThen evaluates a, then builds and evaluates a further constraint
// from a's coerced result.
func AndThen(a *Constraint, next func([]sql.Expression) *Constraint) *Constraint {
	return &Constraint{kind: kindAndThen, a: a, next: next}
}

// OrElse evaluates a; on failure, evaluates b instead.
func OrElse(a, b *Constraint) *Constraint {
	return &Constraint{kind: kindOrElse, a: a, b: b}
}

// Eval evaluates the constraint, returning the coerced (possibly
// cast-wrapped) child expressions in the same order they were supplied,
// or a structured mismatch error.
func Eval(ctx *sql.Context, c *Constraint) ([]sql.Expression, error) {
	switch c.kind {
	case kindPassThrough:
		for _, e := range c.args {
			if !e.Resolved() {
				return nil, sql.ErrTypeMismatch.New(e.String(), "unresolved", "strictly typed")
			}
		}
		return c.args, nil

	case kindSameTypeAs:
		out := make([]sql.Expression, len(c.args))
		for i, e := range c.args {
			if !sql.CompatibleWith(e.Type(), c.target) {
				return nil, mismatch(e, c.target.String())
			}
			out[i] = coerce(e, c.target)
		}
		return out, nil

	case kindSameSubtypesOf:
		var subtypeTypes []sql.DataType
		for _, e := range c.args {
			if sql.IsSubtypeOf(e.Type(), c.abstract) {
				subtypeTypes = append(subtypeTypes, e.Type())
			}
		}
		if len(subtypeTypes) == 0 {
			return nil, mismatch(firstOf(c.args), abstractName(c.abstract))
		}
		widest, ok := sql.WidestCommonType(subtypeTypes)
		if !ok {
			return nil, mismatch(firstOf(c.args), abstractName(c.abstract))
		}
		out := make([]sql.Expression, len(c.args))
		for i, e := range c.args {
			if !sql.CompatibleWith(e.Type(), widest) {
				return nil, mismatch(e, widest.String())
			}
			out[i] = coerce(e, widest)
		}
		return out, nil

	case kindSameType:
		types := make([]sql.DataType, len(c.args))
		for i, e := range c.args {
			types[i] = e.Type()
		}
		widest, ok := sql.WidestCommonType(types)
		if !ok {
			return nil, mismatch(firstOf(c.args), "a common type")
		}
		out := make([]sql.Expression, len(c.args))
		for i, e := range c.args {
			out[i] = coerce(e, widest)
		}
		return out, nil

	case kindFoldable:
		for _, e := range c.args {
			if !e.Foldable() {
				return nil, sql.ErrTypeMismatch.New(e.String(), "non-foldable", "foldable")
			}
		}
		return c.args, nil

	case kindStrictlyTyped:
		for _, e := range c.args {
			if !e.Resolved() {
				return nil, sql.ErrTypeMismatch.New(e.String(), "unresolved", "strictly typed")
			}
		}
		return c.args, nil

	case kindConcat:
		ra, err := Eval(ctx, c.a)
		if err != nil {
			return nil, err
		}
		rb, err := Eval(ctx, c.b)
		if err != nil {
			return nil, err
		}
		return append(append([]sql.Expression{}, ra...), rb...), nil

	case kindAndThen:
		ra, err := Eval(ctx, c.a)
		if err != nil {
			return nil, err
		}
		return Eval(ctx, c.next(ra))

	case kindOrElse:
		ra, err := Eval(ctx, c.a)
		if err == nil {
			return ra, nil
		}
		return Eval(ctx, c.b)
	}
	panic("constraint: unhandled kind")
}

func firstOf(args []sql.Expression) sql.Expression {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

func abstractName(a sql.AbstractType) string {
	switch a {
	case sql.NumericType:
		return "numeric"
	case sql.IntegralType:
		return "integral"
	case sql.FractionalType:
		return "fractional"
	case sql.OrderedType:
		return "ordered"
	}
	return "unknown"
}

func mismatch(e sql.Expression, expected string) error {
	name := "<nil>"
	actual := "<nil>"
	if e != nil {
		name = e.String()
		actual = e.Type().String()
	}
	return sql.ErrTypeMismatch.New(name, actual, expected)
}

func coerce(e sql.Expression, target sql.DataType) sql.Expression {
	if e.Type().Equals(target) {
		return e
	}
	return NewCast(e, target)
}

// NewCast wraps e in an explicit cast to target (spec.md §4.3: "coercion
// inserts an explicit cast wrapper expression"). It is a package
// variable, not a hard-wired constructor call, to avoid an import cycle
// between constraint and sql/expression (which imports constraint to
// declare each expression kind's type-constraint); expression's init
// wires the real *expression.Cast constructor in here.
var NewCast func(sql.Expression, sql.DataType) sql.Expression = func(e sql.Expression, target sql.DataType) sql.Expression {
	return e
}
