package expr

import (
	"src.wdl.dev/pkg/diag"
	"src.wdl.dev/pkg/errs"
	"src.wdl.dev/pkg/types"
	"src.wdl.dev/pkg/vals"
)

// Function is the contract a standard library function must satisfy. A
// Function is independent of any single call site: the same object is handed
// every Apply node that names it.
type Function interface {
	// InferType typechecks the call site, whose argument expressions have
	// already been inferred, and returns the type of the value the function
	// will return.
	InferType(call *Apply) (types.Type, error)
	// Call evaluates the function at the call site, evaluating argument
	// expressions as needed within the given environment.
	Call(call *Apply, ev *Env) (vals.Value, error)
}

// Registry maps standard library function names to their implementations. It
// is write-once-before-use: all registrations must happen before any Apply
// node referencing the registry is constructed, and a Registry must not be
// mutated thereafter.
type Registry struct {
	fns map[string]Function
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]Function)}
}

// Register adds a function under the given name. Registering the same name
// twice panics.
func (r *Registry) Register(name string, fn Function) {
	if _, ok := r.fns[name]; ok {
		panic("function registered twice: " + name)
	}
	r.fns[name] = fn
}

// Apply is the application of a standard library function to argument
// expressions. The function name is resolved against the registry when the
// node is constructed, not when it is inferred or evaluated.
type Apply struct {
	node
	Name string
	Args []Expr
	fn   Function
}

// NewApply creates a new function application node, resolving the name in
// the registry. An unregistered name fails with NoSuchFunction.
func NewApply(pos diag.Ranging, name string, args []Expr, reg *Registry) (*Apply, error) {
	fn, ok := reg.fns[name]
	if !ok {
		return nil, errs.NoSuchFunction{Ranging: pos, Name: name}
	}
	return &Apply{node{Ranging: pos}, name, args, fn}, nil
}

func (x *Apply) inferType(tenv *TypeEnv) (types.Type, error) {
	for _, arg := range x.Args {
		if _, err := Infer(arg, tenv); err != nil {
			return nil, err
		}
	}
	return x.fn.InferType(x)
}

func (x *Apply) eval(ev *Env) (vals.Value, error) {
	return x.fn.Call(x, ev)
}
