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

import "context"

// Context carries the one piece of configuration the analyzer core reads
// (case-sensitivity, spec.md §6) plus the ambient Go context.Context for
// cancellation, alongside a session-local default for anonymous column
// naming (SPEC_FULL.md "Anonymous column naming").
type Context struct {
	context.Context

	CaseSensitive bool

	// AnonymousColumnName names a projected expression that has no alias
	// and no renderable display text (spec.md §4.4 ResolveAliases).
	AnonymousColumnName string

	CurrentDatabase string
}

// NewContext wraps a standard context.Context with analyzer defaults:
// case-sensitive name matching and "expr" for anonymous columns.
func NewContext(ctx context.Context) *Context {
	return &Context{
		Context:             ctx,
		CaseSensitive:       true,
		AnonymousColumnName: "expr",
	}
}

// NewEmptyContext returns a Context over context.Background(), the form
// most unit tests construct directly.
func NewEmptyContext() *Context {
	return NewContext(context.Background())
}
