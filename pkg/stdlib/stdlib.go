// Package stdlib provides a registry of standard library functions for use
// with function application nodes. The catalog is deliberately small; it
// exists to exercise the dispatch contract, and the surrounding system is
// expected to extend the registry before constructing any expressions.
package stdlib

import (
	"math"
	"regexp"

	"src.wdl.dev/pkg/errs"
	"src.wdl.dev/pkg/expr"
	"src.wdl.dev/pkg/types"
	"src.wdl.dev/pkg/vals"
)

// New builds a registry with the standard catalog.
func New() *expr.Registry {
	reg := expr.NewRegistry()
	reg.Register("length", lengthFn{})
	reg.Register("floor", roundFn{"floor", math.Floor})
	reg.Register("ceil", roundFn{"ceil", math.Ceil})
	reg.Register("sub", subFn{})
	reg.Register("prefix", prefixFn{})
	return reg
}

func checkArity(call *expr.Apply, n int) error {
	if len(call.Args) != n {
		return errs.ArityMismatch{
			Ranging: call.Range(), What: "arguments to " + call.Name,
			ValidLow: n, ValidHigh: n, Actual: len(call.Args)}
	}
	return nil
}

func evalArgs(call *expr.Apply, ev *expr.Env) ([]vals.Value, error) {
	args := make([]vals.Value, len(call.Args))
	for i, arg := range call.Args {
		v, err := expr.Eval(arg, ev)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// length(Array[X]) -> Int
type lengthFn struct{}

func (lengthFn) InferType(call *expr.Apply) (types.Type, error) {
	if err := checkArity(call, 1); err != nil {
		return nil, err
	}
	arg := call.Args[0]
	if _, ok := expr.TypeOf(arg).(types.Array); !ok {
		return nil, errs.StaticTypeMismatch{
			Ranging: arg.Range(), Expected: types.Array{}, Actual: expr.TypeOf(arg),
			Message: "in length argument"}
	}
	return types.Int{}, nil
}

func (lengthFn) Call(call *expr.Apply, ev *expr.Env) (vals.Value, error) {
	args, err := evalArgs(call, ev)
	if err != nil {
		return nil, err
	}
	return vals.Int(len(args[0].(vals.Array).Items)), nil
}

// floor(Float) -> Int and ceil(Float) -> Int; an Int argument widens.
type roundFn struct {
	name string
	f    func(float64) float64
}

func (fn roundFn) InferType(call *expr.Apply) (types.Type, error) {
	if err := checkArity(call, 1); err != nil {
		return nil, err
	}
	if err := expr.Typecheck(call.Args[0], types.Float{}); err != nil {
		return nil, err
	}
	return types.Int{}, nil
}

func (fn roundFn) Call(call *expr.Apply, ev *expr.Env) (vals.Value, error) {
	args, err := evalArgs(call, ev)
	if err != nil {
		return nil, err
	}
	v, err := vals.Coerce(args[0], types.Float{})
	if err != nil {
		return nil, err
	}
	return vals.Int(int64(fn.f(float64(v.(vals.Float))))), nil
}

// sub(String, String, String) -> String, replacing all matches of the
// pattern (second argument) in the input (first argument) with the
// replacement (third argument).
type subFn struct{}

func (subFn) InferType(call *expr.Apply) (types.Type, error) {
	if err := checkArity(call, 3); err != nil {
		return nil, err
	}
	for _, arg := range call.Args {
		if err := expr.Typecheck(arg, types.String{}); err != nil {
			return nil, err
		}
	}
	return types.String{}, nil
}

func (subFn) Call(call *expr.Apply, ev *expr.Env) (vals.Value, error) {
	args, err := evalArgs(call, ev)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(string(args[1].(vals.String)))
	if err != nil {
		return nil, err
	}
	input := string(args[0].(vals.String))
	repl := string(args[2].(vals.String))
	return vals.String(re.ReplaceAllString(input, repl)), nil
}

// prefix(String, Array[primitive]) -> Array[String], prepending the prefix
// to the stringification of each item.
type prefixFn struct{}

func (prefixFn) InferType(call *expr.Apply) (types.Type, error) {
	if err := checkArity(call, 2); err != nil {
		return nil, err
	}
	if err := expr.Typecheck(call.Args[0], types.String{}); err != nil {
		return nil, err
	}
	t := expr.TypeOf(call.Args[1])
	arr, ok := t.(types.Array)
	if !ok || (arr.Item != nil && !types.Primitive(arr.Item)) {
		return nil, errs.StaticTypeMismatch{
			Ranging: call.Args[1].Range(), Expected: types.Array{}, Actual: t,
			Message: "in prefix argument"}
	}
	return types.Array{Item: types.String{}}, nil
}

func (prefixFn) Call(call *expr.Apply, ev *expr.Env) (vals.Value, error) {
	args, err := evalArgs(call, ev)
	if err != nil {
		return nil, err
	}
	p := string(args[0].(vals.String))
	items := args[1].(vals.Array).Items
	out := make([]vals.Value, len(items))
	for i, item := range items {
		out[i] = vals.String(p + vals.ToString(item))
	}
	return vals.Array{Item: types.String{}, Items: out}, nil
}
