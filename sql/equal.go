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

import "github.com/mitchellh/hashstructure"

// StructurallyEqual reports whether two expression or plan trees are
// structurally identical (spec.md §4.1's "structural equality"). It is
// used by the rule engine's fixed-point loop to decide whether a pass
// changed anything when the transform didn't already short-circuit on
// identity, and by ResolveAggregates to de-duplicate collected aggregate
// functions. It hashes rather than hand-rolls a recursive comparator,
// since every node here is a plain, exported, comparable-by-value struct.
func StructurallyEqual(a, b any) bool {
	ha, err := hashstructure.Hash(a, nil)
	if err != nil {
		return false
	}
	hb, err := hashstructure.Hash(b, nil)
	if err != nil {
		return false
	}
	return ha == hb
}

// Hash returns the structural hash of a tree node, for a caller that
// needs a map key. ResolveAggregates' de-duplication compares with
// StructurallyEqual instead and does not call Hash.
func Hash(a any) (uint64, error) {
	return hashstructure.Hash(a, nil)
}
