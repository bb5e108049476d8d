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

package sql

// LogicalPlan is one node of an immutable logical query plan tree.
type LogicalPlan interface {
	// Children returns the plan's inputs, in order.
	Children() []LogicalPlan
	// WithChildren rebuilds this node over a new child list, preserving
	// every other field, returning the receiver unchanged when the
	// children are identical to the current ones.
	WithChildren(children []LogicalPlan) (LogicalPlan, error)

	// Output is this plan's ordered list of produced attributes.
	Output() []*Attribute
	// Resolved reports whether every expression in this node and every
	// child plan is resolved.
	Resolved() bool

	String() string
}

// ExpressionsNode is implemented by plan nodes that carry expressions
// (Project, Filter, Sort, UnresolvedAggregate, Aggregate, ...). It lets
// the transform package rewrite expressions uniformly across all of
// them without a type switch per rule.
type ExpressionsNode interface {
	LogicalPlan
	Expressions() []Expression
	WithExpressions(exprs []Expression) (LogicalPlan, error)
}

// MultiInstanceRelation is implemented by resolved relations that can
// produce a second, id-disjoint copy of themselves — the mechanism
// DeduplicateReferences uses to make the right side of a self-join
// distinct from the left (SPEC_FULL.md "Multi-instance relations").
type MultiInstanceRelation interface {
	LogicalPlan
	NewInstance() (LogicalPlan, error)
}
