// file:artkv/pkg/x_art/tree.go
package x_art

import (
	"github.com/rs/zerolog"
)

//---------------------
// Tree
//---------------------

// Tree is an adaptive radix tree mapping byte-string keys to values of type
// T. Keys are copied on insert. A Tree is not safe for concurrent use.
//
// An empty tree keeps an empty inner root, so the root is never nil while
// the tree is usable. The first insert swaps the placeholder for a leaf, so a
// budget of one node holds one key.
type Tree[T any] struct {
	root      node[T]
	size      int
	arena     arena[T]
	opts      Options
	log       zerolog.Logger
	destroyed bool
}

// New creates an empty tree.
func New[T any](opts ...Option) *Tree[T] {
	o := newOptions(opts...)
	t := &Tree[T]{
		opts: o,
		log:  o.Logger.With().Str("module", "x_art").Logger(),
	}
	t.arena.limit = o.MaxNodes
	t.root = t.arena.newNode4()
	return t
}

// Size returns the number of stored keys.
func (t *Tree[T]) Size() int { return t.size }

// Live returns the number of nodes currently held by the tree.
func (t *Tree[T]) Live() int { return t.arena.live }

//---------------------
// Insert
//---------------------

// Insert stores value under key. When the key already exists its value is
// replaced and the previous value is returned with replaced set. On error the
// tree is unchanged.
func (t *Tree[T]) Insert(key []byte, value T) (old T, replaced bool, err error) {
	if t.destroyed {
		return old, false, ErrDestroyed
	}
	if t.opts.MaxKeyLen > 0 && len(key) > t.opts.MaxKeyLen {
		return old, false, ErrInvalidKey
	}

	if t.size == 0 {
		t.insertFirst(key, value)
	} else {
		old, replaced, err = t.insert(&t.root, key, value, 0)
	}
	if err != nil {
		t.log.Warn().Err(err).
			Int("live", t.arena.live).
			Int("limit", t.arena.limit).
			Int("key_len", len(key)).
			Msg("insert refused")
		return old, false, err
	}
	if !replaced {
		t.size++
	}
	return old, replaced, nil
}

//---------------------
// Delete
//---------------------

// Delete removes key and returns its value. Deletion never fails; a missing
// key reports false and leaves the tree unchanged.
func (t *Tree[T]) Delete(key []byte) (T, bool) {
	var zero T
	if t.destroyed || t.size == 0 {
		return zero, false
	}

	var (
		val T
		ok  bool
	)
	if t.root.isLeaf() {
		val, ok = t.deleteRootLeaf(key)
	} else {
		val, ok = t.delete(&t.root, key, 0, true)
	}
	if !ok {
		return zero, false
	}

	t.size--
	if t.size == 0 && !t.root.isLeaf() {
		t.root.base().prefixLen = 0
	}
	return val, true
}

//---------------------
// Search
//---------------------

// Search returns the value stored under key.
func (t *Tree[T]) Search(key []byte) (T, bool) {
	var zero T
	if t.destroyed {
		return zero, false
	}

	n, depth := t.root, 0
	for {
		if l, ok := n.(*leaf[T]); ok {
			if l.match(key) {
				return l.value, true
			}
			return zero, false
		}

		m := n.base()
		depth = matchOptimistic(m, depth)
		if depth > len(key) {
			return zero, false
		}
		if depth == len(key) {
			if m.term != nil && m.term.match(key) {
				return m.term.value, true
			}
			return zero, false
		}

		child := n.findChild(key[depth])
		if child == nil {
			return zero, false
		}
		n = *child
		depth++
	}
}

//---------------------
// Lifecycle
//---------------------

// Empty removes every key and returns the tree to its freshly created state.
func (t *Tree[T]) Empty() {
	if t.destroyed {
		return
	}
	t.releaseAll(t.root)
	t.root = t.arena.newNode4()
	t.size = 0
	t.log.Debug().Int("live", t.arena.live).Msg("tree emptied")
}

// Destroy releases every node exactly once. Later mutations fail with
// ErrDestroyed and lookups report absence.
func (t *Tree[T]) Destroy() {
	if t.destroyed {
		return
	}
	t.releaseAll(t.root)
	t.root = nil
	t.size = 0
	t.destroyed = true
	t.arena.drop()
	t.log.Debug().Uint64("released", t.arena.released).Msg("tree destroyed")
}

// releaseAll hands every node under n back to the arena, children first.
func (t *Tree[T]) releaseAll(n node[T]) {
	if n == nil {
		return
	}
	if !n.isLeaf() {
		n.iter(func(_ byte, cn node[T]) bool {
			t.releaseAll(cn)
			return true
		})
		if term := n.base().term; term != nil {
			t.arena.release(term)
		}
	}
	t.arena.release(n)
}
