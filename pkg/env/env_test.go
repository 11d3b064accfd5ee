package env

import (
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"src.wdl.dev/pkg/errs"
)

func mustBind(t *testing.T, e Bindings[int], name string, value int) Bindings[int] {
	t.Helper()
	e, err := e.Bind(name, value)
	if err != nil {
		t.Fatalf("Bind(%q, %d) -> error %v", name, value, err)
	}
	return e
}

func names(e Bindings[int]) []string {
	var ns []string
	e.Each(func(name string, _ int) { ns = append(ns, name) })
	sort.Strings(ns)
	return ns
}

func TestBindings_BindAndGet(t *testing.T) {
	e := New[int]()
	e1 := mustBind(t, e, "fruit.banana", 17)

	if got, err := e1.Get("fruit.banana"); err != nil || got != 17 {
		t.Errorf("Get -> (%v, %v), want (17, nil)", got, err)
	}
	if !e1.Contains("fruit.banana") {
		t.Errorf("Contains -> false, want true")
	}
	// The base environment is untouched.
	if e.Contains("fruit.banana") || e.Len() != 0 {
		t.Errorf("base environment mutated by Bind")
	}

	_, err := e1.Get("fruit.apple")
	if !errors.As(err, &errs.NotFound{}) {
		t.Errorf("Get of absent name -> %v, want NotFound", err)
	}
}

func TestBindings_Collisions(t *testing.T) {
	e := mustBind(t, New[int](), "fruit.banana", 17)

	// Binding a bound name.
	if _, err := e.Bind("fruit.banana", 18); !errors.As(err, &errs.Collision{}) {
		t.Errorf("rebinding -> %v, want Collision", err)
	}
	// Binding a name that is a declared namespace.
	if _, err := e.Bind("fruit", 1); !errors.As(err, &errs.Collision{}) {
		t.Errorf("binding namespace name -> %v, want Collision", err)
	}
	// Declaring a namespace over a bound name.
	if _, err := e.AddNamespace("fruit.banana", true); !errors.As(err, &errs.Collision{}) {
		t.Errorf("namespace over binding -> %v, want Collision", err)
	}
	// Re-declaring a namespace with existOK=false.
	if _, err := e.AddNamespace("fruit", false); !errors.As(err, &errs.Collision{}) {
		t.Errorf("redeclaring namespace -> %v, want Collision", err)
	}
	// Re-declaring with existOK=true is fine.
	if _, err := e.AddNamespace("fruit", true); err != nil {
		t.Errorf("redeclaring namespace with existOK -> %v, want nil", err)
	}
}

func TestBindings_MalformedName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("binding a name with a trailing separator did not panic")
		}
	}()
	New[int]().Bind("fruit.", 1)
}

func TestBindings_NamespaceClosure(t *testing.T) {
	e, err := New[int]().AddNamespace("a.b.c", false)
	if err != nil {
		t.Fatalf("AddNamespace -> %v", err)
	}
	for _, ns := range []string{"a", "a.b", "a.b.c", "a.b.c."} {
		if !e.ContainsNamespace(ns) {
			t.Errorf("ContainsNamespace(%q) -> false, want true", ns)
		}
	}
	if e.ContainsNamespace("a.b.c.d") {
		t.Errorf("ContainsNamespace(a.b.c.d) -> true, want false")
	}

	// Binding a namespaced name implicitly declares its namespaces.
	e2 := mustBind(t, New[int](), "x.y.k", 1)
	if !e2.ContainsNamespace("x") || !e2.ContainsNamespace("x.y") {
		t.Errorf("implicit namespaces not declared")
	}
}

func TestBindings_EnterNamespace(t *testing.T) {
	e := mustBind(t, New[int](), "fruit.banana", 1)
	e = mustBind(t, e, "fruit.apple.green", 2)
	e = mustBind(t, e, "veg.carrot", 3)
	var err error
	if e, err = e.AddNamespace("fruit.empty", false); err != nil {
		t.Fatalf("AddNamespace -> %v", err)
	}

	sub, err := e.EnterNamespace("fruit")
	if err != nil {
		t.Fatalf("EnterNamespace -> %v", err)
	}
	if diff := cmp.Diff([]string{"apple.green", "banana"}, names(sub)); diff != "" {
		t.Errorf("entered names (-want +got):\n%s", diff)
	}
	if got, _ := sub.Get("banana"); got != 1 {
		t.Errorf("Get(banana) -> %v, want 1", got)
	}
	if got, _ := sub.Get("apple.green"); got != 2 {
		t.Errorf("Get(apple.green) -> %v, want 2", got)
	}
	// Empty sub-namespaces are re-rooted too.
	if !sub.ContainsNamespace("empty") || !sub.ContainsNamespace("apple") {
		t.Errorf("sub-namespaces not re-rooted")
	}

	if _, err := e.EnterNamespace("grain"); !errors.As(err, &errs.NotFound{}) {
		t.Errorf("entering undeclared namespace -> %v, want NotFound", err)
	}
}

func TestBindings_Map(t *testing.T) {
	e := mustBind(t, New[int](), "a.k", 6)
	doubled := Map(e, func(name string, v int) int { return v * 2 })
	if got, _ := doubled.Get("a.k"); got != 12 {
		t.Errorf("Get after Map -> %v, want 12", got)
	}
	if !doubled.ContainsNamespace("a") {
		t.Errorf("Map dropped the namespace set")
	}

	// Mapping to a different value type.
	strs := Map(e, func(name string, v int) string { return name })
	if got, _ := strs.Get("a.k"); got != "a.k" {
		t.Errorf("Get after Map to string -> %q, want a.k", got)
	}
}

func TestBindings_Filter(t *testing.T) {
	e := mustBind(t, New[int](), "a.k", 1)
	e = mustBind(t, e, "a.l", 2)
	keepL := func(name string, v int) bool { return name == "a.l" }

	kept := e.Filter(keepL, true)
	if kept.Contains("a.k") || !kept.Contains("a.l") {
		t.Errorf("Filter kept the wrong bindings: %v", names(kept))
	}
	// keepEmptyNamespaces preserves the full namespace set.
	if !kept.ContainsNamespace("a") {
		t.Errorf("Filter(keepEmptyNamespaces=true) dropped a namespace")
	}

	// Without it, the namespace set is dropped entirely.
	dropped := e.Filter(keepL, false)
	if dropped.ContainsNamespace("a") {
		t.Errorf("Filter(keepEmptyNamespaces=false) kept a namespace")
	}
	if !dropped.Contains("a.l") {
		t.Errorf("Filter dropped a matching binding")
	}
}

func TestBindings_Merge(t *testing.T) {
	lhs := mustBind(t, New[int](), "fruit.banana", 1)
	rhs := mustBind(t, New[int](), "veg.carrot", 2)

	merged, err := lhs.Merge(rhs, true)
	if err != nil {
		t.Fatalf("Merge -> %v", err)
	}
	if diff := cmp.Diff([]string{"fruit.banana", "veg.carrot"}, names(merged)); diff != "" {
		t.Errorf("merged names (-want +got):\n%s", diff)
	}
	if !merged.ContainsNamespace("fruit") || !merged.ContainsNamespace("veg") {
		t.Errorf("merged namespace set incomplete")
	}

	// Disjoint merge fails on a shared namespace even with no shared names.
	rhs2 := mustBind(t, New[int](), "fruit.apple", 3)
	if _, err := lhs.Merge(rhs2, true); !errors.As(err, &errs.Collision{}) {
		t.Errorf("disjoint merge with shared namespace -> %v, want Collision", err)
	}
	// Allowing shared namespaces, the same merge succeeds.
	merged2, err := lhs.Merge(rhs2, false)
	if err != nil {
		t.Fatalf("Merge -> %v", err)
	}
	if merged2.Len() != 2 {
		t.Errorf("merged Len -> %d, want 2", merged2.Len())
	}
	// A shared bound name is a Collision either way.
	rhs3 := mustBind(t, New[int](), "fruit.banana", 4)
	if _, err := lhs.Merge(rhs3, false); !errors.As(err, &errs.Collision{}) {
		t.Errorf("merge with shared name -> %v, want Collision", err)
	}
}

func TestFromMap(t *testing.T) {
	e, err := FromMap(map[string]int{"a.k": 1, "b": 2})
	if err != nil {
		t.Fatalf("FromMap -> %v", err)
	}
	if got, _ := e.Get("a.k"); got != 1 {
		t.Errorf("Get(a.k) -> %v, want 1", got)
	}
	if e.Len() != 2 {
		t.Errorf("Len -> %d, want 2", e.Len())
	}

	// A key that is a namespace of another collides.
	if _, err := FromMap(map[string]int{"a": 1, "a.b": 2}); !errors.As(err, &errs.Collision{}) {
		t.Errorf("FromMap with clashing keys -> %v, want Collision", err)
	}
}
