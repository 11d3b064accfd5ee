package expr

import (
	"strings"

	"src.wdl.dev/pkg/diag"
	"src.wdl.dev/pkg/errs"
	"src.wdl.dev/pkg/types"
	"src.wdl.dev/pkg/vals"
)

// Ident is an identifier expected to resolve in the environment supplied
// during inference or evaluation.
type Ident struct {
	node
	Name string
}

// NewIdent creates a new identifier node. Namespaced (dotted) identifiers
// are not supported and panic; the binding environment understands
// namespaces, but identifier resolution through them is deliberately
// unfinished.
func NewIdent(pos diag.Ranging, name string) *Ident {
	if name == "" || strings.ContainsRune(name, '.') {
		panic("namespaced identifiers are not supported: " + name)
	}
	return &Ident{node{Ranging: pos}, name}
}

func (x *Ident) inferType(tenv *TypeEnv) (types.Type, error) {
	t, err := tenv.Lookup(x.Name)
	if err != nil {
		return nil, errs.UnknownIdentifier{Ranging: x.Range(), Name: x.Name}
	}
	return t, nil
}

func (x *Ident) eval(ev *Env) (vals.Value, error) {
	v, err := ev.Lookup(x.Name)
	if err != nil {
		return nil, errs.UnknownIdentifier{Ranging: x.Range(), Name: x.Name}
	}
	return v, nil
}
