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

// Name is a literal spelling plus, when the name was referenced rather
// than declared, an optional qualifier (e.g. the table a column was
// written as "t.a"). Equality between names is governed by the
// case-sensitivity flag carried on Context.
type Name struct {
	Name      string
	Qualifier string
}

// Equal compares two names under the given case-sensitivity policy. An
// empty qualifier on either side matches any qualifier on the other.
func (n Name) Equal(o Name, caseSensitive bool) bool {
	if !namesEqual(n.Name, o.Name, caseSensitive) {
		return false
	}
	if n.Qualifier == "" || o.Qualifier == "" {
		return true
	}
	return namesEqual(n.Qualifier, o.Qualifier, caseSensitive)
}

func namesEqual(a, b string, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}
