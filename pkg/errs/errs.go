// Package errs declares the error types produced by the environment and the
// expression pipeline. They are declared in a leaf package so that both the
// producers and any consumers that want to test against them can import them
// without cycles.
package errs

import (
	"fmt"
	"strconv"

	"src.wdl.dev/pkg/diag"
	"src.wdl.dev/pkg/types"
)

// Contextualize attaches named source text to a positioned error, wrapping
// it in a [*diag.Error] that renders the error against the document it came
// from. The error type names the phase reporting the error, like "type
// error" or "evaluation error". Errors that carry no range are returned
// unchanged.
func Contextualize(errType, name, source string, err error) error {
	if err == nil {
		return nil
	}
	r, ok := err.(diag.Ranger)
	if !ok {
		return err
	}
	return &diag.Error{
		Type:    errType,
		Message: err.Error(),
		Context: *diag.NewContext(name, source, r),
	}
}

// Collision is thrown when a name is bound or declared more than once in a
// binding environment, or when a key clashes with a namespace of the same
// name.
type Collision struct {
	Name string
}

// Error implements the error interface.
func (e Collision) Error() string {
	return "name collision: " + e.Name
}

// NotFound is thrown when a key, namespace or identifier is absent from the
// environment it is looked up in.
type NotFound struct {
	What string
	Name string
}

// Error implements the error interface.
func (e NotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.What, e.Name)
}

// StaticTypeMismatch is thrown when type inference or a typecheck fails. It
// carries the range of the offending expression, the expected and actual
// types, and optionally a reason.
type StaticTypeMismatch struct {
	diag.Ranging
	Expected types.Type
	Actual   types.Type
	Message  string
}

// Error implements the error interface.
func (e StaticTypeMismatch) Error() string {
	s := fmt.Sprintf("static type mismatch: expected %s, got %s", e.Expected, e.Actual)
	if e.Message != "" {
		s += " (" + e.Message + ")"
	}
	return s
}

// UnknownIdentifier is thrown when an identifier resolves in neither the type
// environment (during inference) nor the value environment (during
// evaluation).
type UnknownIdentifier struct {
	diag.Ranging
	Name string
}

// Error implements the error interface.
func (e UnknownIdentifier) Error() string {
	return "unknown identifier: " + e.Name
}

// NoSuchFunction is thrown when a function application names a function
// absent from the registry. It is detected when the application node is
// constructed, before any type inference.
type NoSuchFunction struct {
	diag.Ranging
	Name string
}

// Error implements the error interface.
func (e NoSuchFunction) Error() string {
	return "no such function: " + e.Name
}

// ArityMismatch is thrown by function implementations when the number of
// argument expressions at a call site is wrong.
//
// If ValidLow == ValidHigh, the call site must have exactly that many
// arguments; otherwise an inclusive range is reported, with ValidHigh == -1
// meaning unbounded.
type ArityMismatch struct {
	diag.Ranging
	What      string
	ValidLow  int
	ValidHigh int
	Actual    int
}

func (e ArityMismatch) valid() string {
	switch {
	case e.ValidHigh == e.ValidLow:
		return strconv.Itoa(e.ValidLow)
	case e.ValidHigh == -1:
		return fmt.Sprintf("%d or more", e.ValidLow)
	default:
		return fmt.Sprintf("%d to %d", e.ValidLow, e.ValidHigh)
	}
}

// Error implements the error interface.
func (e ArityMismatch) Error() string {
	return fmt.Sprintf("arity mismatch: %s must be %s, but is %d",
		e.What, e.valid(), e.Actual)
}
