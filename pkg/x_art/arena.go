// file:artkv/pkg/x_art/arena.go
package x_art

//---------------------
// Node Arena
//---------------------

// maxFree bounds every per-class free list.
const maxFree = 64

// arena hands out nodes of fixed-size classes and takes them back. A node
// budget turns into ErrAllocation once exhausted; callers reserve every node
// a restructuring step needs before creating any of them.
type arena[T any] struct {
	limit int // 0 means unlimited
	live  int

	free4   []*node4[T]
	free16  []*node16[T]
	free48  []*node48[T]
	free256 []*node256[T]

	allocs   uint64
	reused   uint64
	released uint64
}

// reserve checks that n more nodes fit the budget.
func (a *arena[T]) reserve(n int) error {
	if a.limit > 0 && a.live+n > a.limit {
		return ErrAllocation
	}
	return nil
}

func (a *arena[T]) track() {
	a.live++
	a.allocs++
}

func (a *arena[T]) newLeaf(key []byte, value T) *leaf[T] {
	a.track()
	return &leaf[T]{value: value, key: copyBytes(key)}
}

func (a *arena[T]) newNode4() *node4[T] {
	a.track()
	if l := len(a.free4); l > 0 {
		n := a.free4[l-1]
		a.free4[l-1] = nil
		a.free4 = a.free4[:l-1]
		a.reused++
		return n
	}
	return &node4[T]{}
}

func (a *arena[T]) newNode16() *node16[T] {
	a.track()
	if l := len(a.free16); l > 0 {
		n := a.free16[l-1]
		a.free16[l-1] = nil
		a.free16 = a.free16[:l-1]
		a.reused++
		return n
	}
	return &node16[T]{}
}

func (a *arena[T]) newNode48() *node48[T] {
	a.track()
	var n *node48[T]
	if l := len(a.free48); l > 0 {
		n = a.free48[l-1]
		a.free48[l-1] = nil
		a.free48 = a.free48[:l-1]
		a.reused++
	} else {
		n = &node48[T]{}
	}
	n.initIndex()
	return n
}

func (a *arena[T]) newNode256() *node256[T] {
	a.track()
	if l := len(a.free256); l > 0 {
		n := a.free256[l-1]
		a.free256[l-1] = nil
		a.free256 = a.free256[:l-1]
		a.reused++
		return n
	}
	return &node256[T]{}
}

// newInner allocates an empty node of class k.
func (a *arena[T]) newInner(k nodeKind) node[T] {
	switch k {
	case kindNode4:
		return a.newNode4()
	case kindNode16:
		return a.newNode16()
	case kindNode48:
		return a.newNode48()
	case kindNode256:
		return a.newNode256()
	default:
		panic("newInner: not an inner class: " + k.String())
	}
}

// release resets a node that is no longer reachable from the tree. Only the
// node itself is released, not its children.
func (a *arena[T]) release(n node[T]) {
	a.live--
	a.released++
	n.reset()
	switch nn := n.(type) {
	case *node4[T]:
		if len(a.free4) < maxFree {
			a.free4 = append(a.free4, nn)
		}
	case *node16[T]:
		if len(a.free16) < maxFree {
			a.free16 = append(a.free16, nn)
		}
	case *node48[T]:
		if len(a.free48) < maxFree {
			a.free48 = append(a.free48, nn)
		}
	case *node256[T]:
		if len(a.free256) < maxFree {
			a.free256 = append(a.free256, nn)
		}
	}
}

// drop forgets every pooled node.
func (a *arena[T]) drop() {
	a.free4, a.free16, a.free48, a.free256 = nil, nil, nil, nil
}

//---------------------
// Class Migration
//---------------------

// grownKind returns the next larger class of a full inner node.
func grownKind(k nodeKind) nodeKind {
	switch k {
	case kindNode4:
		return kindNode16
	case kindNode16:
		return kindNode48
	case kindNode48:
		return kindNode256
	default:
		panic("grow: no larger class than " + k.String())
	}
}

// shrunkKind returns the next smaller class.
func shrunkKind(k nodeKind) nodeKind {
	switch k {
	case kindNode16:
		return kindNode4
	case kindNode48:
		return kindNode16
	case kindNode256:
		return kindNode48
	default:
		panic("shrink: no smaller class than " + k.String())
	}
}

// migrate builds a node of class k holding everything n holds. The node for
// class k must already be reserved; n is left untouched and still owns its
// children until the caller splices the result in and releases n.
func (a *arena[T]) migrate(n node[T], k nodeKind) node[T] {
	nn := a.newInner(k)
	copyMeta(nn.base(), n.base())
	n.copyTo(nn)
	return nn
}
