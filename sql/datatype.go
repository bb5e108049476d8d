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

import "fmt"

// DataType is a member of the closed type lattice described by the type
// algebra. Its members are the package-level values below and the
// parameterized Array/Map/Struct types. The interface itself does not
// stop another package from implementing it; the lattice functions in
// this file (IsSubtypeOf, WidenableTo, CompatibleWith, WidestCommonType)
// only recognize the types defined here.
type DataType interface {
	// String renders the type the way a CREATE TABLE statement would.
	String() string
	// Equals reports whether two types are the identical lattice member.
	Equals(DataType) bool
}

type baseType struct {
	name string
	rank int // numeric widening rank; -1 for non-numeric scalars
}

func (t *baseType) String() string { return t.name }

func (t *baseType) Equals(o DataType) bool {
	other, ok := o.(*baseType)
	return ok && other.name == t.name
}

var (
	Null      DataType = &baseType{name: "NULL", rank: -1}
	Boolean   DataType = &baseType{name: "BOOLEAN", rank: -1}
	Int8      DataType = &baseType{name: "TINYINT", rank: 0}
	Int16     DataType = &baseType{name: "SMALLINT", rank: 1}
	Int32     DataType = &baseType{name: "INT", rank: 2}
	Int64     DataType = &baseType{name: "BIGINT", rank: 3}
	Float32   DataType = &baseType{name: "FLOAT", rank: 4}
	Float64   DataType = &baseType{name: "DOUBLE", rank: 5}
	String    DataType = &baseType{name: "TEXT", rank: -1}
	Date      DataType = &baseType{name: "DATE", rank: -1}
	Timestamp DataType = &baseType{name: "TIMESTAMP", rank: -1}
)

// ArrayType is an ordered homogeneous collection.
type ArrayType struct {
	Element         DataType
	ElementNullable bool
}

func NewArrayType(element DataType, elementNullable bool) *ArrayType {
	return &ArrayType{Element: element, ElementNullable: elementNullable}
}

func (t *ArrayType) String() string {
	return fmt.Sprintf("ARRAY<%s>", t.Element.String())
}

func (t *ArrayType) Equals(o DataType) bool {
	other, ok := o.(*ArrayType)
	return ok && other.ElementNullable == t.ElementNullable && other.Element.Equals(t.Element)
}

// MapType is a homogeneous key/value association.
type MapType struct {
	Key           DataType
	Value         DataType
	ValueNullable bool
}

func NewMapType(key, value DataType, valueNullable bool) *MapType {
	return &MapType{Key: key, Value: value, ValueNullable: valueNullable}
}

func (t *MapType) String() string {
	return fmt.Sprintf("MAP<%s, %s>", t.Key.String(), t.Value.String())
}

func (t *MapType) Equals(o DataType) bool {
	other, ok := o.(*MapType)
	return ok && other.ValueNullable == t.ValueNullable && other.Key.Equals(t.Key) && other.Value.Equals(t.Value)
}

// StructField is one named, typed, nullable member of a StructType.
type StructField struct {
	Name     string
	Type     DataType
	Nullable bool
}

// StructType is a fixed-arity heterogeneous record.
type StructType struct {
	Fields []StructField
}

func NewStructType(fields ...StructField) *StructType {
	return &StructType{Fields: fields}
}

func (t *StructType) String() string {
	s := "STRUCT<"
	for i, f := range t.Fields {
		if i > 0 {
			s += ", "
		}
		s += f.Name + ": " + f.Type.String()
	}
	return s + ">"
}

func (t *StructType) Equals(o DataType) bool {
	other, ok := o.(*StructType)
	if !ok || len(other.Fields) != len(t.Fields) {
		return false
	}
	for i, f := range t.Fields {
		of := other.Fields[i]
		if f.Name != of.Name || f.Nullable != of.Nullable || !f.Type.Equals(of.Type) {
			return false
		}
	}
	return true
}

// AbstractType classifies concrete DataTypes by capability. The analyzer's
// SameSubtypesOf constraint seeds its widening over members of one of
// these classes.
type AbstractType int

const (
	OrderedType AbstractType = iota
	NumericType
	IntegralType
	FractionalType
)

func numericRank(t DataType) (int, bool) {
	b, ok := t.(*baseType)
	if !ok || b.rank < 0 {
		return 0, false
	}
	return b.rank, true
}

// IsSubtypeOf reports whether t belongs to the capability class abstract.
func IsSubtypeOf(t DataType, abstract AbstractType) bool {
	switch abstract {
	case NumericType:
		_, ok := numericRank(t)
		return ok
	case IntegralType:
		r, ok := numericRank(t)
		return ok && r <= 3
	case FractionalType:
		r, ok := numericRank(t)
		return ok && r >= 4
	case OrderedType:
		switch t {
		case Boolean, String, Date, Timestamp, Null:
			return true
		}
		_, ok := numericRank(t)
		return ok
	}
	return false
}

// WidenableTo reports whether a value of type from can be losslessly (or
// by a sanctioned implicit coercion) widened to type to.
func WidenableTo(from, to DataType) bool {
	if from.Equals(to) {
		return true
	}
	if from == Null {
		return true
	}
	if fr, ok := numericRank(from); ok {
		if tr, ok := numericRank(to); ok {
			return fr <= tr
		}
	}
	return false
}

// CompatibleWith reports whether an implicit coercion from "from" to "to"
// is sanctioned at all — the superset of WidenableTo that also allows the
// universal scalar-to-string and string-to-scalar casts SQL engines
// accept at call sites (e.g. coercing a string literal into an arithmetic
// operand).
func CompatibleWith(from, to DataType) bool {
	if WidenableTo(from, to) {
		return true
	}
	if from == String || to == String {
		return isScalar(from) && isScalar(to)
	}
	return false
}

func isScalar(t DataType) bool {
	switch t.(type) {
	case *ArrayType, *MapType, *StructType:
		return false
	}
	return true
}

// WidestCommonType computes the least upper bound of types in the
// coercion lattice, reporting false if no common supertype exists.
func WidestCommonType(types []DataType) (DataType, bool) {
	if len(types) == 0 {
		return nil, false
	}
	widest := types[0]
	for _, t := range types[1:] {
		w, ok := widen(widest, t)
		if !ok {
			return nil, false
		}
		widest = w
	}
	return widest, true
}

func widen(a, b DataType) (DataType, bool) {
	if a.Equals(b) {
		return a, true
	}
	if a == Null {
		return b, true
	}
	if b == Null {
		return a, true
	}
	ar, aNum := numericRank(a)
	br, bNum := numericRank(b)
	if aNum && bNum {
		if ar >= br {
			return a, true
		}
		return b, true
	}
	// The universal string coercion lets a string literal stand in for
	// any other scalar at the cost of the other operand's type winning.
	if a == String && isScalar(b) {
		return b, true
	}
	if b == String && isScalar(a) {
		return a, true
	}
	return nil, false
}
