package cache

import (
	"fmt"
	"os"
)

// MustGetTempStore returns a Store backed by a temporary file, and a cleanup
// function that should be called when the Store is no longer used.
func MustGetTempStore() (*Store, func()) {
	f, err := os.CreateTemp("", "wdl.cache.test")
	if err != nil {
		panic(fmt.Sprintf("failed to open temp file: %v", err))
	}
	f.Close()
	st, err := Open(f.Name())
	if err != nil {
		panic(fmt.Sprintf("failed to open cache store: %v", err))
	}
	return st, func() {
		st.Close()
		if err := os.Remove(f.Name()); err != nil {
			fmt.Fprintln(os.Stderr, "failed to remove temp file:", err)
		}
	}
}
