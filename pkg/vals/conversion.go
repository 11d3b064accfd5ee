package vals

import (
	"fmt"

	"src.wdl.dev/pkg/types"
)

type cannotCoerce struct {
	from types.Type
	to   types.Type
}

func (err cannotCoerce) Error() string {
	return fmt.Sprintf("cannot coerce %s to %s", err.from, err.to)
}

// Coerce converts a value to the given type. The only permitted conversions
// are the identity, Int to Float widening, and item-wise coercion of arrays;
// anything else fails with an error naming both types.
//
// Coercing an array to an array type with an unknown item type leaves the
// array unchanged.
func Coerce(v Value, to types.Type) (Value, error) {
	if types.Equal(TypeOf(v), to) {
		return v, nil
	}
	switch v := v.(type) {
	case Int:
		if (to == types.Float{}) {
			return Float(v), nil
		}
	case Array:
		if to, ok := to.(types.Array); ok {
			if to.Item == nil {
				return v, nil
			}
			items := make([]Value, len(v.Items))
			for i, item := range v.Items {
				coerced, err := Coerce(item, to.Item)
				if err != nil {
					return nil, err
				}
				items[i] = coerced
			}
			return Array{Item: to.Item, Items: items}, nil
		}
	}
	return nil, cannotCoerce{TypeOf(v), to}
}

// Expect asserts that a value has the given type, coercing it if permitted.
// It is used where the evaluator consumes a value in a typed position, like
// the condition of a conditional.
func Expect(v Value, t types.Type) (Value, error) {
	return Coerce(v, t)
}
