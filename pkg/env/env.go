// Package env provides the two environment structures used for name
// resolution: Bindings, a persistent associative structure mapping unique
// dot-qualified names to values with explicit namespace tracking, and Scope,
// a parent-chained lexical scope.
//
// Both structures are persistent: every mutating operation returns a new
// environment sharing structure with the receiver, which is left untouched.
// This makes it safe to share and fork a base environment across concurrent
// scopes without locking.
package env

import (
	"sort"
	"strings"

	"src.elv.sh/pkg/persistent/hash"
	"src.elv.sh/pkg/persistent/hashmap"

	"src.wdl.dev/pkg/errs"
)

func equalKey(k1, k2 interface{}) bool { return k1 == k2 }
func hashKey(k interface{}) uint32     { return hash.String(k.(string)) }

var emptyMap = hashmap.New(equalKey, hashKey)

func hasKey(m hashmap.Map, k interface{}) bool {
	_, ok := m.Index(k)
	return ok
}

// Bindings is an environment of name to value bindings. Names are unique, and
// may be prefixed by dot-separated namespaces; binding a namespaced name
// implicitly declares its namespaces. A namespace may also be declared
// explicitly with no bindings under it, and a name may never collide with a
// namespace.
//
// The zero value is not usable; construct with [New] or [FromMap].
type Bindings[T any] struct {
	// Both maps have string keys. items maps a bound name to its T;
	// namespaces maps a declared namespace to true, serving as a set.
	items      hashmap.Map
	namespaces hashmap.Map
}

// New returns an empty environment.
func New[T any]() Bindings[T] {
	return Bindings[T]{emptyMap, emptyMap}
}

// FromMap returns an environment with a binding for each entry of m. Entries
// are bound in sorted key order; a Collision can still arise when a key is a
// namespace of another.
func FromMap[T any](m map[string]T) (Bindings[T], error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	e := New[T]()
	for _, k := range keys {
		var err error
		e, err = e.Bind(k, m[k])
		if err != nil {
			return Bindings[T]{}, err
		}
	}
	return e, nil
}

// Len returns the number of bindings, not counting namespaces.
func (e Bindings[T]) Len() int {
	return e.items.Len()
}

// Contains reports whether the name is bound.
func (e Bindings[T]) Contains(name string) bool {
	return hasKey(e.items, name)
}

// Get returns the value bound to the name, or a NotFound error.
func (e Bindings[T]) Get(name string) (T, error) {
	if v, ok := e.items.Index(name); ok {
		return v.(T), nil
	}
	var zero T
	return zero, errs.NotFound{What: "binding", Name: name}
}

// Each calls f for each binding, in unspecified order.
func (e Bindings[T]) Each(f func(name string, value T)) {
	for it := e.items.Iterator(); it.HasElem(); it.Next() {
		k, v := it.Elem()
		f(k.(string), v.(T))
	}
}

// Bind returns a new environment with an additional binding. The namespaces
// of the name are declared implicitly. It fails with a Collision when the
// name is already bound or is a declared namespace.
func (e Bindings[T]) Bind(name string, value T) (Bindings[T], error) {
	if name == "" || strings.HasSuffix(name, ".") {
		panic("code bug: malformed binding name: " + name)
	}
	if hasKey(e.items, name) || hasKey(e.namespaces, name) {
		return Bindings[T]{}, errs.Collision{Name: name}
	}
	namespaces := e.namespaces
	if i := strings.LastIndex(name, "."); i > 0 {
		var err error
		namespaces, err = declare(e.items, namespaces, name[:i], true)
		if err != nil {
			return Bindings[T]{}, err
		}
	}
	return Bindings[T]{e.items.Assoc(name, value), namespaces}, nil
}

// declare adds a namespace, and its ancestors, to the namespace set. It fails
// with a Collision when the namespace is a bound name, or when it is already
// declared and existOK is false.
func declare(items, namespaces hashmap.Map, name string, existOK bool) (hashmap.Map, error) {
	if name == "" {
		panic("code bug: empty namespace")
	}
	if hasKey(items, name) {
		return nil, errs.Collision{Name: name}
	}
	if hasKey(namespaces, name) {
		if !existOK {
			return nil, errs.Collision{Name: name}
		}
		return namespaces, nil
	}
	if i := strings.LastIndex(name, "."); i > 0 {
		var err error
		namespaces, err = declare(items, namespaces, name[:i], true)
		if err != nil {
			return nil, err
		}
	}
	return namespaces.Assoc(name, true), nil
}

// AddNamespace returns a new environment with the namespace, and its
// ancestors, declared. A trailing separator on the name is accepted and
// stripped. It fails with a Collision when the name is already bound, or when
// it is already a namespace and existOK is false.
func (e Bindings[T]) AddNamespace(name string, existOK bool) (Bindings[T], error) {
	name = strings.TrimSuffix(name, ".")
	namespaces, err := declare(e.items, e.namespaces, name, existOK)
	if err != nil {
		return Bindings[T]{}, err
	}
	return Bindings[T]{e.items, namespaces}, nil
}

// ContainsNamespace reports whether the namespace is declared, irrespective
// of whether any bindings exist under it.
func (e Bindings[T]) ContainsNamespace(name string) bool {
	return hasKey(e.namespaces, strings.TrimSuffix(name, "."))
}

// EnterNamespace returns the environment obtained by entering the namespace:
// every binding whose name is prefixed by it is re-rooted with the prefix
// stripped, and so is every empty sub-namespace. It fails with NotFound when
// the namespace is not declared.
func (e Bindings[T]) EnterNamespace(name string) (Bindings[T], error) {
	name = strings.TrimSuffix(name, ".")
	if !e.ContainsNamespace(name) {
		return Bindings[T]{}, errs.NotFound{What: "namespace", Name: name}
	}
	prefix := name + "."
	ans := New[T]()
	for it := e.items.Iterator(); it.HasElem(); it.Next() {
		k, v := it.Elem()
		if key := k.(string); strings.HasPrefix(key, prefix) {
			var err error
			ans, err = ans.Bind(key[len(prefix):], v.(T))
			if err != nil {
				// The source environment upholds the collision invariants, so
				// re-rooting a subset of it cannot collide.
				panic("code bug: " + err.Error())
			}
		}
	}
	for it := e.namespaces.Iterator(); it.HasElem(); it.Next() {
		k, _ := it.Elem()
		if ns := k.(string); strings.HasPrefix(ns, prefix) {
			ans.namespaces = ans.namespaces.Assoc(ns[len(prefix):], true)
		}
	}
	return ans, nil
}

// Filter returns an environment keeping only the bindings for which pred
// holds. The namespace set is preserved verbatim when keepEmptyNamespaces is
// true, and dropped entirely otherwise.
func (e Bindings[T]) Filter(pred func(name string, value T) bool, keepEmptyNamespaces bool) Bindings[T] {
	items := emptyMap
	for it := e.items.Iterator(); it.HasElem(); it.Next() {
		k, v := it.Elem()
		if pred(k.(string), v.(T)) {
			items = items.Assoc(k, v)
		}
	}
	namespaces := emptyMap
	if keepEmptyNamespaces {
		namespaces = e.namespaces
	}
	return Bindings[T]{items, namespaces}
}

// Merge returns an environment containing the union of the bindings of e and
// rhs. When disjointNamespaces is true it fails with a Collision as soon as
// the two namespace sets intersect, whether or not any bound names clash;
// when false, shared namespaces are allowed and only a shared bound name is a
// Collision.
func (e Bindings[T]) Merge(rhs Bindings[T], disjointNamespaces bool) (Bindings[T], error) {
	if disjointNamespaces {
		for it := e.namespaces.Iterator(); it.HasElem(); it.Next() {
			k, _ := it.Elem()
			if hasKey(rhs.namespaces, k) {
				return Bindings[T]{}, errs.Collision{Name: k.(string)}
			}
		}
	}
	ans := New[T]()
	var err error
	bind := func(name string, value T) {
		if err == nil {
			ans, err = ans.Bind(name, value)
		}
	}
	e.Each(bind)
	rhs.Each(bind)
	if err != nil {
		return Bindings[T]{}, err
	}
	namespaces := e.namespaces
	for it := rhs.namespaces.Iterator(); it.HasElem(); it.Next() {
		k, _ := it.Elem()
		namespaces = namespaces.Assoc(k, true)
	}
	ans.namespaces = namespaces
	return ans, nil
}

// Map returns an environment with the value in each binding of e replaced by
// fn(name, value). The namespace set is preserved unchanged.
//
// This is a package function rather than a method because the result value
// type differs from the receiver's.
func Map[T, U any](e Bindings[T], fn func(name string, value T) U) Bindings[U] {
	items := emptyMap
	for it := e.items.Iterator(); it.HasElem(); it.Next() {
		k, v := it.Elem()
		items = items.Assoc(k, fn(k.(string), v.(T)))
	}
	return Bindings[U]{items, e.namespaces}
}
