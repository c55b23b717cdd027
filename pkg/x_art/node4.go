// file:artkv/pkg/x_art/node4.go
package x_art

import (
	"sort"
)

//---------------------
// Node4 (up to 4 children)
//---------------------

// node4 keeps unordered parallel key/child arrays searched linearly.
type node4[T any] struct {
	child [4]node[T]
	meta[T]
	key [4]byte
}

//---------------------
// Node Interface Impl
//---------------------

func (n *node4[T]) kind() nodeKind  { return kindNode4 }
func (n *node4[T]) isFull() bool    { return n.size >= 4 }
func (n *node4[T]) canShrink() bool { return false }
func (n *node4[T]) reset()          { *n = node4[T]{} }

func (n *node4[T]) addChild(c byte, nn node[T]) {
	if n.size >= 4 {
		panic("node4 full")
	}
	n.key[n.size] = c
	n.child[n.size] = nn
	n.size++
}

func (n *node4[T]) findChild(c byte) *node[T] {
	for i := uint16(0); i < n.size; i++ {
		if n.key[i] == c {
			return &n.child[i]
		}
	}
	return nil
}

func (n *node4[T]) deleteChild(c byte) {
	for i, last := uint16(0), n.size-1; i < n.size; i++ {
		if n.key[i] == c {
			if i < last {
				n.key[i] = n.key[last]
				n.child[i] = n.child[last]
			}
			n.key[last] = 0
			n.child[last] = nil
			n.size--
			return
		}
	}
}

func (n *node4[T]) copyTo(dst node[T]) {
	for i := uint16(0); i < n.size; i++ {
		dst.addChild(n.key[i], n.child[i])
	}
}

func (n *node4[T]) iter(f func(c byte, n node[T]) bool) {
	for i := uint16(0); i < n.size; i++ {
		if !f(n.key[i], n.child[i]) {
			return
		}
	}
}

func (n *node4[T]) iterOrdered(f func(c byte, n node[T]) bool) {
	var order [4]int
	idx := order[:n.size]
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return n.key[idx[a]] < n.key[idx[b]] })
	for _, i := range idx {
		if !f(n.key[i], n.child[i]) {
			return
		}
	}
}
