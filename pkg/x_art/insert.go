// file:artkv/pkg/x_art/insert.go
package x_art

//---------------------
// Insert Internals
//---------------------

// insertFirst replaces the empty placeholder root with a single leaf. The
// placeholder goes back first, so the swap never grows the live count.
func (t *Tree[T]) insertFirst(key []byte, value T) {
	t.arena.release(t.root)
	t.root = t.arena.newLeaf(key, value)
}

// insert places key below the slot np, whose node starts at depth. Every
// restructuring step reserves its nodes first, so a refused allocation
// returns before anything is modified.
func (t *Tree[T]) insert(np *node[T], key []byte, value T, depth int) (T, bool, error) {
	var zero T
	n := *np

	if l, ok := n.(*leaf[T]); ok {
		if l.match(key) {
			old := l.value
			l.value = value
			return old, true, nil
		}
		return zero, false, t.splitLeaf(np, l, key, value, depth)
	}

	m := n.base()
	if m.prefixLen > 0 {
		if idx := prefixMismatch(n, key, depth); idx < m.prefixLen {
			return zero, false, t.splitPrefix(np, n, idx, key, value, depth)
		}
		depth += m.prefixLen
	}

	if depth == len(key) {
		if m.term != nil {
			old := m.term.value
			m.term.value = value
			return old, true, nil
		}
		if err := t.arena.reserve(1); err != nil {
			return zero, false, err
		}
		m.term = t.arena.newLeaf(key, value)
		return zero, false, nil
	}

	c := key[depth]
	if child := n.findChild(c); child != nil {
		return t.insert(child, key, value, depth+1)
	}
	return zero, false, t.addLeaf(np, n, c, key, value)
}

// splitLeaf turns the leaf at np into a Node4 holding both the old leaf and
// a new one for key. The Node4 takes the shared run past depth as its prefix.
func (t *Tree[T]) splitLeaf(np *node[T], l *leaf[T], key []byte, value T, depth int) error {
	if err := t.arena.reserve(2); err != nil {
		return err
	}
	lcp := commonPrefixLen(l.key[depth:], key[depth:])

	nn := t.arena.newNode4()
	nn.setPrefix(key[depth : depth+lcp])
	nl := t.arena.newLeaf(key, value)

	attach(nn, l, depth+lcp)
	attach(nn, nl, depth+lcp)
	*np = nn
	return nil
}

// splitPrefix inserts a Node4 above n where the prefix of n first differs
// from key, at prefix offset idx. n keeps the part of its prefix past the
// diverging byte and hangs below the new node under that byte.
func (t *Tree[T]) splitPrefix(np *node[T], n node[T], idx int, key []byte, value T, depth int) error {
	if err := t.arena.reserve(2); err != nil {
		return err
	}
	m := n.base()
	full := fullPrefix(n, depth)
	c := full[idx]

	nn := t.arena.newNode4()
	nn.setPrefix(full[:idx])
	nl := t.arena.newLeaf(key, value)

	m.setPrefixLen(full[idx+1:], m.prefixLen-idx-1)
	nn.addChild(c, n)
	attach(nn, nl, depth+idx)
	*np = nn
	return nil
}

// addLeaf adds a leaf for key under n, growing n into the next class first
// when it is full.
func (t *Tree[T]) addLeaf(np *node[T], n node[T], c byte, key []byte, value T) error {
	if !n.isFull() {
		if err := t.arena.reserve(1); err != nil {
			return err
		}
		n.addChild(c, t.arena.newLeaf(key, value))
		return nil
	}

	if err := t.arena.reserve(2); err != nil {
		return err
	}
	nl := t.arena.newLeaf(key, value)
	nn := t.arena.migrate(n, grownKind(n.kind()))
	nn.addChild(c, nl)
	*np = nn
	t.arena.release(n)
	return nil
}

// attach hangs l below n, whose children are indexed at depth. A key that
// ends at depth becomes the terminal leaf.
func attach[T any](n node[T], l *leaf[T], depth int) {
	if len(l.key) == depth {
		n.base().term = l
		return
	}
	n.addChild(l.key[depth], l)
}
