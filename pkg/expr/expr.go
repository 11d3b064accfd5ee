// Package expr defines the expression AST and its two-pass pipeline. A node
// is inferred exactly once with [Infer], which memoizes its type; the typed
// node may then be evaluated any number of times with [Eval], each time
// against a different value environment.
//
// Since inference settles all node state, a typed expression may be evaluated
// concurrently by independent callers, provided the Infer call is visibly
// ordered before any Eval.
package expr

import (
	"src.wdl.dev/pkg/diag"
	"src.wdl.dev/pkg/env"
	"src.wdl.dev/pkg/errs"
	"src.wdl.dev/pkg/types"
	"src.wdl.dev/pkg/vals"
)

// TypeEnv resolves identifiers to types during inference.
type TypeEnv = env.Scope[types.Type]

// Env resolves identifiers to values during evaluation.
type Env = env.Scope[vals.Value]

// Expr is implemented by all expression nodes. The unexported methods
// restrict the set of nodes to the ones defined in this package; use the
// package functions [Infer], [TypeOf], [Typecheck] and [Eval] to operate on
// a node.
type Expr interface {
	diag.Ranger
	base() *node
	inferType(tenv *TypeEnv) (types.Type, error)
	eval(ev *Env) (vals.Value, error)
}

// node is embedded in every expression node. It carries the source range and
// the one-time memoized type.
type node struct {
	diag.Ranging
	t types.Type
}

func (n *node) base() *node { return n }

// Infer infers the type of the expression within the given type environment,
// memoizing it on the node. It must be called exactly once per node before
// any other use; a second call panics. On failure the type slot is left
// unset, and the node must not be evaluated.
func Infer(e Expr, tenv *TypeEnv) (types.Type, error) {
	n := e.base()
	if n.t != nil {
		panic("Infer called twice on the same expression")
	}
	t, err := e.inferType(tenv)
	if err != nil {
		return nil, err
	}
	n.t = t
	return t, nil
}

// TypeOf returns the memoized type of the expression. It panics when called
// before a successful Infer.
func TypeOf(e Expr) types.Type {
	n := e.base()
	if n.t == nil {
		panic("type of expression read before Infer")
	}
	return n.t
}

// Typecheck checks that the expression's inferred type equals the expected
// type. Two coercions are admitted: an Int expression satisfies an expected
// Float, and an empty array literal satisfies any expected array type.
func Typecheck(e Expr, expected types.Type) error {
	t := TypeOf(e)
	if types.Equal(t, expected) {
		return nil
	}
	if (t == types.Int{} && expected == types.Float{}) {
		return nil
	}
	if a, ok := e.(*Array); ok && len(a.Items) == 0 {
		if _, ok := expected.(types.Array); ok {
			return nil
		}
	}
	return errs.StaticTypeMismatch{Ranging: e.Range(), Expected: expected, Actual: t}
}

// Eval evaluates the expression in the given value environment. The
// expression must have been inferred first; Eval may then be called any
// number of times, with different environments.
func Eval(e Expr, ev *Env) (vals.Value, error) {
	// Reading the type here enforces the infer-before-eval contract for
	// every node, since evaluation of composite nodes needs their type.
	_ = TypeOf(e)
	return e.eval(ev)
}
