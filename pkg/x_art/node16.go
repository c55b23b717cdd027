// file:artkv/pkg/x_art/node16.go
package x_art

//---------------------
// Node16 (5-16 children)
//---------------------

// node16 keeps its keys sorted ascending so lookup can binary search or
// broadcast-compare, and ordered iteration needs no sorting.
type node16[T any] struct {
	child [16]node[T]
	meta[T]
	key [16]byte
}

//---------------------
// Node Interface Impl
//---------------------

func (n *node16[T]) kind() nodeKind  { return kindNode16 }
func (n *node16[T]) isFull() bool    { return n.size >= 16 }
func (n *node16[T]) canShrink() bool { return n.size <= 4 }
func (n *node16[T]) reset()          { *n = node16[T]{} }

func (n *node16[T]) addChild(c byte, nn node[T]) {
	if n.size >= 16 {
		panic("node16 full")
	}
	pos := insertPos16(&n.key, int(n.size), c)
	copy(n.key[pos+1:n.size+1], n.key[pos:n.size])
	copy(n.child[pos+1:n.size+1], n.child[pos:n.size])
	n.key[pos] = c
	n.child[pos] = nn
	n.size++
}

func (n *node16[T]) findChild(c byte) *node[T] {
	if i := findIndex16(&n.key, int(n.size), c); i >= 0 {
		return &n.child[i]
	}
	return nil
}

func (n *node16[T]) deleteChild(c byte) {
	i := findIndex16(&n.key, int(n.size), c)
	if i < 0 {
		return
	}
	last := int(n.size) - 1
	copy(n.key[i:last], n.key[i+1:last+1])
	copy(n.child[i:last], n.child[i+1:last+1])
	n.key[last] = 0
	n.child[last] = nil
	n.size--
}

func (n *node16[T]) copyTo(dst node[T]) {
	for i := uint16(0); i < n.size; i++ {
		dst.addChild(n.key[i], n.child[i])
	}
}

func (n *node16[T]) iter(f func(c byte, n node[T]) bool) {
	for i := uint16(0); i < n.size; i++ {
		if !f(n.key[i], n.child[i]) {
			return
		}
	}
}

func (n *node16[T]) iterOrdered(f func(c byte, n node[T]) bool) { n.iter(f) }
