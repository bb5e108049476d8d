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

// Package transform implements the generic tree-rewriting framework of
// spec.md §4.1: top-down/bottom-up partial-function application, and
// collection, shared between expression trees and logical plan trees via
// one generic implementation instead of two hand-duplicated ones.
package transform

// TreeIdentity reports whether a transform changed its argument.
// Transforms must return SameTree (and the original value) when no
// descendant changed, so the rule engine's fixed-point loop can detect
// termination cheaply (spec.md §4.1, §4.2).
type TreeIdentity bool

const (
	SameTree TreeIdentity = false
	NewTree  TreeIdentity = true
)

func (t TreeIdentity) Changed() bool { return t == NewTree }

// Node is satisfied by any tree type — sql.Expression and sql.LogicalPlan
// both do — letting Up/Down/Collect serve both trees from one generic
// implementation.
type Node[T any] interface {
	Children() []T
	WithChildren([]T) (T, error)
}

// Up applies f to every node of the tree rooted at n, children before
// parents (post-order / bottom-up), rebuilding only the path from a
// changed node to the root.
func Up[T Node[T]](n T, f func(T) (T, TreeIdentity, error)) (T, TreeIdentity, error) {
	children := n.Children()
	if len(children) == 0 {
		return f(n)
	}

	newChildren := make([]T, len(children))
	anyChanged := false
	for i, c := range children {
		nc, same, err := Up(c, f)
		if err != nil {
			var zero T
			return zero, SameTree, err
		}
		newChildren[i] = nc
		if same == NewTree {
			anyChanged = true
		}
	}

	cur := n
	if anyChanged {
		rebuilt, err := n.WithChildren(newChildren)
		if err != nil {
			var zero T
			return zero, SameTree, err
		}
		cur = rebuilt
	}

	next, same, err := f(cur)
	if err != nil {
		var zero T
		return zero, SameTree, err
	}
	if same == NewTree || anyChanged {
		return next, NewTree, nil
	}
	return next, SameTree, nil
}

// Down applies f to every node of the tree rooted at n, parents before
// children (pre-order / top-down), then recurses into the (possibly
// rewritten) node's children.
func Down[T Node[T]](n T, f func(T) (T, TreeIdentity, error)) (T, TreeIdentity, error) {
	cur, same, err := f(n)
	if err != nil {
		var zero T
		return zero, SameTree, err
	}

	children := cur.Children()
	if len(children) == 0 {
		return cur, same, nil
	}

	newChildren := make([]T, len(children))
	anyChanged := false
	for i, c := range children {
		nc, childSame, err := Down(c, f)
		if err != nil {
			var zero T
			return zero, SameTree, err
		}
		newChildren[i] = nc
		if childSame == NewTree {
			anyChanged = true
		}
	}

	if !anyChanged {
		return cur, same, nil
	}

	rebuilt, err := cur.WithChildren(newChildren)
	if err != nil {
		var zero T
		return zero, SameTree, err
	}
	return rebuilt, NewTree, nil
}

// Collect gathers, in pre-order, every node for which pred returns true.
func Collect[T Node[T]](n T, pred func(T) bool) []T {
	var out []T
	if pred(n) {
		out = append(out, n)
	}
	for _, c := range n.Children() {
		out = append(out, Collect(c, pred)...)
	}
	return out
}

// CollectFirst returns the first pre-order node matching pred, if any.
func CollectFirst[T Node[T]](n T, pred func(T) bool) (T, bool) {
	if pred(n) {
		return n, true
	}
	for _, c := range n.Children() {
		if found, ok := CollectFirst(c, pred); ok {
			return found, true
		}
	}
	var zero T
	return zero, false
}
