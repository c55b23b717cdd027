// file:artkv/pkg/x_art/node48.go
package x_art

//---------------------
// Node48 (17-48 children)
//---------------------

// empty48 marks an unused entry of the node48 slot table. It lives in the
// slot-index domain (0..47), so every key byte stays usable.
const empty48 = byte(0xFF)

// node48 maps every byte value to a slot in a compact child array.
type node48[T any] struct {
	child [48]node[T]
	meta[T]
	index [256]byte // slot of the child for a byte, or empty48
}

// initIndex must run before the first addChild.
func (n *node48[T]) initIndex() {
	for i := range n.index {
		n.index[i] = empty48
	}
}

//---------------------
// Node Interface Impl
//---------------------

func (n *node48[T]) kind() nodeKind  { return kindNode48 }
func (n *node48[T]) isFull() bool    { return n.size >= 48 }
func (n *node48[T]) canShrink() bool { return n.size <= 16 }
func (n *node48[T]) reset()          { *n = node48[T]{} }

func (n *node48[T]) addChild(c byte, nn node[T]) {
	if n.size >= 48 {
		panic("node48 full")
	}
	n.child[n.size] = nn
	n.index[c] = byte(n.size)
	n.size++
}

func (n *node48[T]) findChild(c byte) *node[T] {
	i := n.index[c]
	if i == empty48 {
		return nil
	}
	return &n.child[i]
}

func (n *node48[T]) deleteChild(c byte) {
	i := n.index[c]
	if i == empty48 {
		return
	}
	last := byte(n.size - 1)
	if i < last {
		n.child[i] = n.child[last]
		for b := range n.index {
			if n.index[b] == last {
				n.index[b] = i
				break
			}
		}
	}
	n.child[last] = nil
	n.index[c] = empty48
	n.size--
}

func (n *node48[T]) copyTo(dst node[T]) {
	for c, i := range n.index {
		if i != empty48 {
			dst.addChild(byte(c), n.child[i])
		}
	}
}

func (n *node48[T]) iter(f func(c byte, n node[T]) bool) {
	for c, i := range n.index {
		if i != empty48 && !f(byte(c), n.child[i]) {
			return
		}
	}
}

func (n *node48[T]) iterOrdered(f func(c byte, n node[T]) bool) { n.iter(f) }
