// file:artkv/pkg/x_art/iter.go
package x_art

import (
	"bytes"
)

//---------------------
// Iteration
//---------------------

// IterOrdered visits every key in ascending byte order until cb returns
// false. The key slice passed to cb belongs to the tree and must not be
// modified; the tree must not be mutated during the walk.
func (t *Tree[T]) IterOrdered(cb func(key []byte, val *T) bool) {
	if t.destroyed || t.size == 0 {
		return
	}
	t.iter(t.root, true, cb)
}

// IterFast visits every key in storage order until cb returns false.
func (t *Tree[T]) IterFast(cb func(key []byte, val *T) bool) {
	if t.destroyed || t.size == 0 {
		return
	}
	t.iter(t.root, false, cb)
}

// WalkPrefix visits, in ascending order, every key starting with prefix.
func (t *Tree[T]) WalkPrefix(prefix []byte, cb func(key []byte, val *T) bool) {
	if t.destroyed || t.size == 0 {
		return
	}
	filter := func(key []byte, val *T) bool {
		if !bytes.HasPrefix(key, prefix) {
			return true
		}
		return cb(key, val)
	}

	n, depth := t.root, 0
	for {
		if n.isLeaf() {
			t.iter(n, true, filter)
			return
		}
		m := n.base()
		if depth+m.prefixLen >= len(prefix) {
			t.iter(n, true, filter)
			return
		}
		depth = matchOptimistic(m, depth)
		child := n.findChild(prefix[depth])
		if child == nil {
			return
		}
		n = *child
		depth++
	}
}

func (t *Tree[T]) iter(n node[T], ordered bool, cb func(key []byte, val *T) bool) bool {
	if l, ok := n.(*leaf[T]); ok {
		return cb(l.key, &l.value)
	}
	if term := n.base().term; term != nil {
		if !cb(term.key, &term.value) {
			return false
		}
	}
	next := true
	visit := func(_ byte, cn node[T]) bool {
		next = t.iter(cn, ordered, cb)
		return next
	}
	if ordered {
		n.iterOrdered(visit)
	} else {
		n.iter(visit)
	}
	return next
}

//---------------------
// Bounds
//---------------------

// Minimum returns the smallest key and its value.
func (t *Tree[T]) Minimum() ([]byte, T, bool) {
	return t.bound(minLeaf[T])
}

// Maximum returns the largest key and its value.
func (t *Tree[T]) Maximum() ([]byte, T, bool) {
	return t.bound(maxLeaf[T])
}

func (t *Tree[T]) bound(find func(node[T]) *leaf[T]) ([]byte, T, bool) {
	var zero T
	if t.destroyed || t.size == 0 {
		return nil, zero, false
	}
	l := find(t.root)
	if l == nil {
		return nil, zero, false
	}
	return copyBytes(l.key), l.value, true
}
