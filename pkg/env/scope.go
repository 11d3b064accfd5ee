package env

import "src.wdl.dev/pkg/errs"

// Scope is a lexical scope resolving a single identifier, represented as an
// immutable chain of frames. Each frame holds one binding and a reference to
// its parent; the nil *Scope is the empty root. Lookup walks toward the root
// and the nearest frame wins, so a child scope shadows its ancestors without
// affecting them.
//
// A child does not own its parent: the chain mirrors the static nesting of
// scopes in the calling system, where an enclosing scope outlives the scopes
// nested within it.
type Scope[T any] struct {
	name    string
	payload T
	parent  *Scope[T]
}

// Bind returns a child scope with an additional binding, leaving s unchanged.
func (s *Scope[T]) Bind(name string, payload T) *Scope[T] {
	return &Scope[T]{name, payload, s}
}

// Lookup resolves the name in the innermost frame that binds it, or fails
// with NotFound once the root is reached.
func (s *Scope[T]) Lookup(name string) (T, error) {
	for f := s; f != nil; f = f.parent {
		if f.name == name {
			return f.payload, nil
		}
	}
	var zero T
	return zero, errs.NotFound{What: "identifier", Name: name}
}
