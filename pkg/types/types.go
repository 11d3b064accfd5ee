// Package types defines the closed family of data types that expressions
// evaluate to. Types are immutable values; compare them with [Equal] rather
// than ==, since Array holds an interface field.
package types

// Type is implemented by all types in the family. The isType method restricts
// the family to the types defined in this package, so that switches over Type
// can be exhaustive.
type Type interface {
	isType()
	String() string
}

// Boolean is the type of truth values.
type Boolean struct{}

// Int is the type of 64-bit signed integers.
type Int struct{}

// Float is the type of 64-bit floating point numbers.
type Float struct{}

// String is the type of text strings.
type String struct{}

// Array is the type of arrays. A nil Item means the item type is unknown,
// which arises only from an empty array literal.
type Array struct {
	Item Type
}

func (Boolean) isType() {}
func (Int) isType()     {}
func (Float) isType()   {}
func (String) isType()  {}
func (Array) isType()   {}

func (Boolean) String() string { return "Boolean" }
func (Int) String() string     { return "Int" }
func (Float) String() string   { return "Float" }
func (String) String() string  { return "String" }

func (t Array) String() string {
	if t.Item == nil {
		return "Array[Any]"
	}
	return "Array[" + t.Item.String() + "]"
}

// Equal reports whether two types are structurally equal. Two Array types are
// equal when their item types are equal, or when both item types are unknown.
func Equal(x, y Type) bool {
	if xa, ok := x.(Array); ok {
		ya, ok := y.(Array)
		if !ok {
			return false
		}
		if xa.Item == nil || ya.Item == nil {
			return xa.Item == nil && ya.Item == nil
		}
		return Equal(xa.Item, ya.Item)
	}
	return x == y
}

// Primitive reports whether t is one of the non-composite types.
func Primitive(t Type) bool {
	switch t.(type) {
	case Boolean, Int, Float, String:
		return true
	default:
		return false
	}
}
