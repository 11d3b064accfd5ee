package expr

import (
	"src.wdl.dev/pkg/diag"
	"src.wdl.dev/pkg/types"
	"src.wdl.dev/pkg/vals"
)

// Boolean is a boolean literal.
type Boolean struct {
	node
	Value bool
}

// NewBoolean creates a new Boolean literal node.
func NewBoolean(pos diag.Ranging, value bool) *Boolean {
	return &Boolean{node{Ranging: pos}, value}
}

func (x *Boolean) inferType(tenv *TypeEnv) (types.Type, error) {
	return types.Boolean{}, nil
}

func (x *Boolean) eval(ev *Env) (vals.Value, error) {
	return vals.Bool(x.Value), nil
}

// Int is an integer literal.
type Int struct {
	node
	Value int64
}

// NewInt creates a new Int literal node.
func NewInt(pos diag.Ranging, value int64) *Int {
	return &Int{node{Ranging: pos}, value}
}

func (x *Int) inferType(tenv *TypeEnv) (types.Type, error) {
	return types.Int{}, nil
}

func (x *Int) eval(ev *Env) (vals.Value, error) {
	return vals.Int(x.Value), nil
}

// Float is a floating point literal.
type Float struct {
	node
	Value float64
}

// NewFloat creates a new Float literal node.
func NewFloat(pos diag.Ranging, value float64) *Float {
	return &Float{node{Ranging: pos}, value}
}

func (x *Float) inferType(tenv *TypeEnv) (types.Type, error) {
	return types.Float{}, nil
}

func (x *Float) eval(ev *Env) (vals.Value, error) {
	return vals.Float(x.Value), nil
}
