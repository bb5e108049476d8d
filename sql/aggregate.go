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

// AggregateFunction marks an Expression as a declarative, three-phase
// aggregate (initial state, per-row update, cross-partial merge, final
// result — spec.md §3). The analyzer only needs to recognize aggregate
// function nodes and tell distinct ones apart from plain ones; the
// update/merge/final phases themselves belong to the evaluator, which is
// explicitly out of scope (spec.md §1).
type AggregateFunction interface {
	Expression
	FunctionName() string
}

// DistinctAggregateFunction wraps an AggregateFunction to request
// duplicate-eliminated input (spec.md §3 "distinct aggregate function").
type DistinctAggregateFunction interface {
	AggregateFunction
	Unwrap() AggregateFunction
}
