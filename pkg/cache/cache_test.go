package cache

import (
	"os"
	"path/filepath"
	"testing"

	"src.wdl.dev/pkg/env"
	"src.wdl.dev/pkg/types"
	"src.wdl.dev/pkg/vals"
)

func outputsEnv(t *testing.T) env.Bindings[vals.Value] {
	t.Helper()
	e, err := env.FromMap(map[string]vals.Value{
		"out.count": vals.Int(3),
		"out.score": vals.Float(0.5),
		"out.names": vals.Array{Item: types.String{},
			Items: []vals.Value{vals.String("a"), vals.String("b")}},
		"ok": vals.Bool(true),
	})
	if err != nil {
		t.Fatalf("FromMap -> error %v", err)
	}
	return e
}

func TestDigest(t *testing.T) {
	e := outputsEnv(t)
	d1, err := Digest(e)
	if err != nil {
		t.Fatalf("Digest -> error %v", err)
	}
	d2, err := Digest(e)
	if err != nil || d1 != d2 {
		t.Errorf("Digest not deterministic: %s vs %s", d1, d2)
	}
	if len(d1) != 64 {
		t.Errorf("digest %q is not sha256 hex", d1)
	}

	changed, err := e.Bind("extra", vals.Int(1))
	if err != nil {
		t.Fatalf("Bind -> error %v", err)
	}
	d3, _ := Digest(changed)
	if d3 == d1 {
		t.Errorf("digest did not change with the bindings")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	st, cleanup := MustGetTempStore()
	defer cleanup()

	outputs := outputsEnv(t)
	key, err := Digest(outputs)
	if err != nil {
		t.Fatalf("Digest -> error %v", err)
	}

	typesOf := env.Map(outputs, func(name string, v vals.Value) types.Type {
		return vals.TypeOf(v)
	})

	// A miss reports found=false.
	if _, found, err := st.Get(key, typesOf); err != nil || found {
		t.Errorf("Get before Put -> (found=%v, err=%v), want miss", found, err)
	}

	if err := st.Put(key, outputs); err != nil {
		t.Fatalf("Put -> error %v", err)
	}
	got, found, err := st.Get(key, typesOf)
	if err != nil || !found {
		t.Fatalf("Get -> (found=%v, err=%v), want hit", found, err)
	}
	if got.Len() != outputs.Len() {
		t.Fatalf("Get -> %d bindings, want %d", got.Len(), outputs.Len())
	}
	outputs.Each(func(name string, want vals.Value) {
		v, err := got.Get(name)
		if err != nil {
			t.Errorf("reconstructed outputs missing %s", name)
			return
		}
		if !vals.Equal(v, want) {
			t.Errorf("reconstructed %s -> %v, want %v", name, v, want)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.yaml")
	err := os.WriteFile(path, []byte("path: /tmp/wdl.cache.db\nenabled: true\n"), 0o644)
	if err != nil {
		t.Fatalf("WriteFile -> error %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig -> error %v", err)
	}
	if cfg.Path != "/tmp/wdl.cache.db" || !cfg.Enabled {
		t.Errorf("LoadConfig -> %+v", cfg)
	}

	// A missing file yields the zero config.
	cfg, err = LoadConfig(filepath.Join(dir, "absent.yaml"))
	if err != nil || cfg != (Config{}) {
		t.Errorf("LoadConfig of missing file -> (%+v, %v)", cfg, err)
	}
}
