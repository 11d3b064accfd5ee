package expr

import (
	"src.wdl.dev/pkg/diag"
	"src.wdl.dev/pkg/errs"
	"src.wdl.dev/pkg/types"
	"src.wdl.dev/pkg/vals"
)

// Array is an array literal, containing an expression for each item. It may
// be empty, in which case its item type is unknown.
type Array struct {
	node
	Items []Expr
}

// NewArray creates a new Array literal node.
func NewArray(pos diag.Ranging, items []Expr) *Array {
	return &Array{node{Ranging: pos}, items}
}

func (x *Array) inferType(tenv *TypeEnv) (types.Type, error) {
	if len(x.Items) == 0 {
		return types.Array{}, nil
	}
	for _, item := range x.Items {
		if _, err := Infer(item, tenv); err != nil {
			return nil, err
		}
	}
	// Use the type of the first item as the assumed item type, except that a
	// mixture of Int and Float makes an Array[Float].
	item := TypeOf(x.Items[0])
	if (item == types.Int{}) {
		for _, it := range x.Items {
			if (TypeOf(it) == types.Float{}) {
				item = types.Float{}
			}
		}
	}
	for _, it := range x.Items {
		if Typecheck(it, item) != nil {
			return nil, errs.StaticTypeMismatch{
				Ranging: x.Range(), Expected: item, Actual: TypeOf(it),
				Message: "inconsistent types within array"}
		}
	}
	return types.Array{Item: item}, nil
}

func (x *Array) eval(ev *Env) (vals.Value, error) {
	t := TypeOf(x).(types.Array)
	items := make([]vals.Value, len(x.Items))
	for i, item := range x.Items {
		v, err := Eval(item, ev)
		if err != nil {
			return nil, err
		}
		if t.Item != nil {
			if v, err = vals.Coerce(v, t.Item); err != nil {
				return nil, err
			}
		}
		items[i] = v
	}
	return vals.Array{Item: t.Item, Items: items}, nil
}
