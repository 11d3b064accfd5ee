// Package vals defines the closed family of runtime values mirroring the
// type family in pkg/types, along with the operations the evaluator needs:
// coercion, stringification, equality and a canonical JSON projection.
//
// Values are immutable. Operations are free functions with exhaustive
// switches over the family, so adding a variant fails loudly everywhere it
// matters.
package vals

import "src.wdl.dev/pkg/types"

// Value is implemented by all runtime values. The isValue method restricts
// the family to the variants defined in this package.
type Value interface {
	isValue()
}

// Bool is a truth value.
type Bool bool

// Int is a 64-bit signed integer.
type Int int64

// Float is a 64-bit floating point number.
type Float float64

// String is a text string.
type String string

// Array is an array of values. Item records the array's item type; it is nil
// only for an empty array whose item type is unknown.
type Array struct {
	Item  types.Type
	Items []Value
}

func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Float) isValue()  {}
func (String) isValue() {}
func (Array) isValue()  {}

// TypeOf returns the type of a value.
func TypeOf(v Value) types.Type {
	switch v := v.(type) {
	case Bool:
		return types.Boolean{}
	case Int:
		return types.Int{}
	case Float:
		return types.Float{}
	case String:
		return types.String{}
	case Array:
		return types.Array{Item: v.Item}
	default:
		panic("code bug: unknown value variant")
	}
}
