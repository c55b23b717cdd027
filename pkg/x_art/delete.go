// file:artkv/pkg/x_art/delete.go
package x_art

//---------------------
// Delete Internals
//---------------------

// deleteRootLeaf removes a root that is itself a leaf and puts the empty
// placeholder back.
func (t *Tree[T]) deleteRootLeaf(key []byte) (T, bool) {
	var zero T
	l := t.root.(*leaf[T])
	if !l.match(key) {
		return zero, false
	}
	val := l.value
	t.arena.release(l)
	t.root = t.arena.newNode4()
	return val, true
}

// delete removes key from below the slot np, whose inner node starts at
// depth. Prefixes are compared exactly on the way down.
func (t *Tree[T]) delete(np *node[T], key []byte, depth int, isRoot bool) (T, bool) {
	var zero T
	n := *np
	m := n.base()

	if m.prefixLen > 0 {
		if prefixMismatch(n, key, depth) < m.prefixLen {
			return zero, false
		}
		depth += m.prefixLen
	}

	if depth == len(key) {
		l := m.term
		if l == nil || !l.match(key) {
			return zero, false
		}
		m.term = nil
		val := l.value
		t.arena.release(l)
		t.compact(np, isRoot)
		return val, true
	}

	c := key[depth]
	child := n.findChild(c)
	if child == nil {
		return zero, false
	}
	l, ok := (*child).(*leaf[T])
	if !ok {
		return t.delete(child, key, depth+1, false)
	}
	if !l.match(key) {
		return zero, false
	}
	n.deleteChild(c)
	val := l.value
	t.arena.release(l)
	t.compact(np, isRoot)
	return val, true
}

// compact restores the structural rules at np after an entry was removed:
// a non-root node left with only its terminal leaf becomes that leaf, a
// non-root node left with one child merges into it, anything else shrinks
// when its occupancy fits the next smaller class.
func (t *Tree[T]) compact(np *node[T], isRoot bool) {
	n := *np
	m := n.base()

	if !isRoot {
		switch {
		case m.size == 0 && m.term != nil:
			*np = m.term
			t.arena.release(n)
			return
		case m.size == 1 && m.term == nil:
			t.merge(np, n)
			return
		}
	}

	if !n.canShrink() {
		return
	}
	// A leaf was just released, so this fits the budget.
	if err := t.arena.reserve(1); err != nil {
		t.log.Debug().Err(err).Str("kind", n.kind().String()).Msg("shrink skipped")
		return
	}
	*np = t.arena.migrate(n, shrunkKind(n.kind()))
	t.arena.release(n)
}

// merge replaces n by its only child. An inner child takes n's prefix, the
// byte it was indexed under and its own prefix, in that order, as its new
// prefix.
func (t *Tree[T]) merge(np *node[T], n node[T]) {
	var (
		c     byte
		child node[T]
	)
	n.iter(func(b byte, cn node[T]) bool {
		c, child = b, cn
		return false
	})

	if !child.isLeaf() {
		pm, cm := n.base(), child.base()

		var buf [maxPrefixLen]byte
		p := append(buf[:0], pm.storedPrefix()...)
		if len(p) < maxPrefixLen {
			p = append(p, c)
		}
		if rest := maxPrefixLen - len(p); rest > 0 {
			cs := cm.storedPrefix()
			p = append(p, cs[:min(len(cs), rest)]...)
		}
		cm.setPrefixLen(p, pm.prefixLen+1+cm.prefixLen)
	}

	*np = child
	t.arena.release(n)
}
