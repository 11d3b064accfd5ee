package vals

import (
	"fmt"

	"src.wdl.dev/pkg/types"
)

// ToJSON returns the canonical JSON projection of a value: bool, int64,
// float64, string, or []any. Every value the evaluator can produce is
// projectable, and reconstructible from the projection given its type.
func ToJSON(v Value) any {
	switch v := v.(type) {
	case Bool:
		return bool(v)
	case Int:
		return int64(v)
	case Float:
		return float64(v)
	case String:
		return string(v)
	case Array:
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			items[i] = ToJSON(item)
		}
		return items
	default:
		panic("code bug: unknown value variant")
	}
}

// FromJSON reconstructs a value of the given type from its canonical JSON
// projection. Numbers may arrive as int64 or float64 depending on the JSON
// decoder; an Int is accepted from a float64 only when it is integral.
func FromJSON(x any, t types.Type) (Value, error) {
	switch t := t.(type) {
	case types.Boolean:
		if b, ok := x.(bool); ok {
			return Bool(b), nil
		}
	case types.Int:
		switch x := x.(type) {
		case int64:
			return Int(x), nil
		case float64:
			if x == float64(int64(x)) {
				return Int(int64(x)), nil
			}
		}
	case types.Float:
		switch x := x.(type) {
		case float64:
			return Float(x), nil
		case int64:
			return Float(x), nil
		}
	case types.String:
		if s, ok := x.(string); ok {
			return String(s), nil
		}
	case types.Array:
		items, ok := x.([]any)
		if !ok {
			break
		}
		if t.Item == nil && len(items) > 0 {
			break
		}
		values := make([]Value, len(items))
		for i, item := range items {
			v, err := FromJSON(item, t.Item)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return Array{Item: t.Item, Items: values}, nil
	}
	return nil, fmt.Errorf("cannot interpret JSON value %v as %s", x, t)
}
