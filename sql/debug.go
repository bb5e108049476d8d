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

import "strings"

// DebugString renders a LogicalPlan's full shape, one indented line per
// node, each carrying its own expressions where it has any. Every node
// kind's own String() stays a one-line label (spec.md's plan nodes have
// no inherent multi-line rendering); DebugString is the test harness's
// own tool for turning a mismatched expected/actual tree into something
// a diff can actually point at, the same job the teacher's own
// sql.DebugString does for its *_test.go files.
func DebugString(p LogicalPlan) string {
	var b strings.Builder
	writePlan(&b, p, 0)
	return b.String()
}

func writePlan(b *strings.Builder, p LogicalPlan, depth int) {
	if p == nil {
		b.WriteString(strings.Repeat(" ", depth*2))
		b.WriteString("<nil>\n")
		return
	}
	b.WriteString(strings.Repeat(" ", depth*2))
	b.WriteString(p.String())
	if en, ok := p.(ExpressionsNode); ok {
		exprs := en.Expressions()
		if len(exprs) > 0 {
			b.WriteString(": ")
			for i, e := range exprs {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(e.String())
			}
		}
	}
	b.WriteString("\n")
	for _, c := range p.Children() {
		writePlan(b, c, depth+1)
	}
}
