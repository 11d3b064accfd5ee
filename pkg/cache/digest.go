// Package cache persists evaluated output environments keyed by a
// content-derived digest, so that a call whose inputs hash to a known key can
// reuse stored outputs instead of re-running.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"src.wdl.dev/pkg/env"
	"src.wdl.dev/pkg/vals"
)

// marshalBindings returns the canonical JSON form of a value environment: a
// JSON object of the bindings' projections, with keys in sorted order.
// Namespace declarations do not participate.
func marshalBindings(e env.Bindings[vals.Value]) ([]byte, error) {
	m := make(map[string]any, e.Len())
	e.Each(func(name string, value vals.Value) {
		m[name] = vals.ToJSON(value)
	})
	// encoding/json writes map keys in sorted order, which makes the form
	// canonical.
	return json.Marshal(m)
}

// Digest returns the cache key for a value environment: the sha256 hex of
// its canonical JSON form.
func Digest(e env.Bindings[vals.Value]) (string, error) {
	data, err := marshalBindings(e)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
