// file:artkv/pkg/x_art/node256.go
package x_art

//---------------------
// Node256 (49-256 children)
//---------------------

// node256 indexes children directly by byte value; nil means absent.
type node256[T any] struct {
	child [256]node[T]
	meta[T]
}

//---------------------
// Node Interface Impl
//---------------------

func (n *node256[T]) kind() nodeKind  { return kindNode256 }
func (n *node256[T]) isFull() bool    { return false }
func (n *node256[T]) canShrink() bool { return n.size <= 48 }
func (n *node256[T]) reset()          { *n = node256[T]{} }

func (n *node256[T]) addChild(c byte, nn node[T]) {
	n.child[c] = nn
	n.size++
}

func (n *node256[T]) findChild(c byte) *node[T] {
	if n.child[c] != nil {
		return &n.child[c]
	}
	return nil
}

func (n *node256[T]) deleteChild(c byte) {
	if n.child[c] != nil {
		n.child[c] = nil
		n.size--
	}
}

func (n *node256[T]) copyTo(dst node[T]) {
	for c, child := range n.child {
		if child != nil {
			dst.addChild(byte(c), child)
		}
	}
}

func (n *node256[T]) iter(f func(c byte, n node[T]) bool) {
	for c, child := range n.child {
		if child != nil && !f(byte(c), child) {
			return
		}
	}
}

func (n *node256[T]) iterOrdered(f func(c byte, n node[T]) bool) { n.iter(f) }
