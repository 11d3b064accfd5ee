package cache

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"src.wdl.dev/pkg/env"
	"src.wdl.dev/pkg/types"
	"src.wdl.dev/pkg/vals"
)

const bucketOutputs = "outputs"

// Store is a cache of output environments backed by a bolt database file.
type Store struct {
	db *bolt.DB
}

// Open opens the database file, creating it and its buckets as needed.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketOutputs))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores an output environment under the given key, overwriting any
// previous entry.
func (s *Store) Put(key string, outputs env.Bindings[vals.Value]) error {
	data, err := marshalBindings(outputs)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketOutputs)).Put([]byte(key), data)
	})
}

// Get resolves a key to the stored output environment, reconstructing the
// values with the given type environment. The second return value reports
// whether the key was present.
func (s *Store) Get(key string, typesOf env.Bindings[types.Type]) (env.Bindings[vals.Value], bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketOutputs)).Get([]byte(key)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil || data == nil {
		return env.Bindings[vals.Value]{}, false, err
	}
	outputs, err := unmarshalBindings(data, typesOf)
	if err != nil {
		return env.Bindings[vals.Value]{}, false, err
	}
	return outputs, true, nil
}

// unmarshalBindings reconstructs a value environment from its canonical JSON
// form. Every name bound in the type environment must be present.
func unmarshalBindings(data []byte, typesOf env.Bindings[types.Type]) (env.Bindings[vals.Value], error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return env.Bindings[vals.Value]{}, err
	}
	outputs := env.New[vals.Value]()
	var firstErr error
	typesOf.Each(func(name string, t types.Type) {
		if firstErr != nil {
			return
		}
		x, ok := m[name]
		if !ok {
			firstErr = fmt.Errorf("cached outputs missing %s", name)
			return
		}
		v, err := vals.FromJSON(x, t)
		if err != nil {
			firstErr = err
			return
		}
		outputs, firstErr = outputs.Bind(name, v)
	})
	if firstErr != nil {
		return env.Bindings[vals.Value]{}, firstErr
	}
	return outputs, nil
}
