// file:artkv/servs/s_art/art_serv/store.go
package art_serv

import (
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rskv-p/artkv/pkg/x_art"
)

//---------------------
// Store
//---------------------

// KV is a copied key/value pair.
type KV struct {
	Key   []byte
	Value []byte
}

// Store serializes access to a tree: any number of readers or one writer.
// Values are copied on the way in and out.
type Store struct {
	mu   sync.RWMutex
	tree *x_art.Tree[[]byte]
	log  zerolog.Logger

	events *broker
}

// NewStore creates an empty store.
func NewStore(log zerolog.Logger, opts ...x_art.Option) *Store {
	opts = append([]x_art.Option{x_art.WithLogger(log)}, opts...)
	return &Store{
		tree:   x_art.New[[]byte](opts...),
		log:    log,
		events: newBroker(log),
	}
}

// Get returns a copy of the value stored under key.
func (s *Store) Get(key []byte) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.tree.Search(key)
	if !ok {
		return nil, false
	}
	return clone(v), true
}

// Put stores value under key and returns the replaced value. Events are
// published under the write lock so subscribers see mutation order.
func (s *Store) Put(key, value []byte) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, replaced, err := s.tree.Insert(key, clone(value))
	if err != nil {
		return nil, false, err
	}
	s.events.publish(Event{Type: EventPut, Key: key, Value: value})
	return old, replaced, nil
}

// Delete removes key and returns its value.
func (s *Store) Delete(key []byte) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.tree.Delete(key)
	if ok {
		s.events.publish(Event{Type: EventDelete, Key: key})
	}
	return old, ok
}

// Len returns the number of keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Size()
}

// List returns up to limit pairs whose key starts with prefix, in key
// order. A limit of zero or less means no limit.
func (s *Store) List(prefix []byte, limit int) []KV {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []KV
	s.tree.WalkPrefix(prefix, func(key []byte, val *[]byte) bool {
		out = append(out, KV{Key: clone(key), Value: clone(*val)})
		return limit <= 0 || len(out) < limit
	})
	return out
}

// Snapshot returns every pair in key order.
func (s *Store) Snapshot() []KV {
	return s.List(nil, 0)
}

// Load replaces the whole content with entries. On error the store keeps
// what was loaded so far.
func (s *Store) Load(entries []KV) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree.Empty()
	for _, e := range entries {
		if _, _, err := s.tree.Insert(e.Key, clone(e.Value)); err != nil {
			return err
		}
	}
	s.events.publish(Event{Type: EventReset})
	return nil
}

// Stats reports the tree shape.
func (s *Store) Stats() x_art.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.Stats()
}

// Dump writes the node structure to w.
func (s *Store) Dump(w io.Writer) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.tree.Dump(w)
}

// Subscribe returns a channel of mutation events and a cancel func.
func (s *Store) Subscribe(buffer int) (<-chan Event, func()) {
	return s.events.subscribe(buffer)
}

// Close destroys the tree and ends every subscription.
func (s *Store) Close() {
	s.mu.Lock()
	s.tree.Destroy()
	s.mu.Unlock()
	s.events.close()
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte{}, b...)
}
