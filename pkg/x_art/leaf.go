// file:artkv/pkg/x_art/leaf.go
package x_art

import (
	"bytes"
)

//---------------------
// Leaf Node
//---------------------

// leaf holds the complete original key, not only the unconsumed suffix, so
// optimistic descent can always be verified here.
type leaf[T any] struct {
	value T
	key   []byte
}

// match reports whether the stored key equals key.
func (n *leaf[T]) match(key []byte) bool { return bytes.Equal(n.key, key) }

//---------------------
// Interface Implementation
//---------------------

func (n *leaf[T]) kind() nodeKind                             { return kindLeaf }
func (n *leaf[T]) isLeaf() bool                               { return true }
func (n *leaf[T]) base() *meta[T]                             { return nil }
func (n *leaf[T]) isFull() bool                               { return true }
func (n *leaf[T]) numChildren() int                           { return 0 }
func (n *leaf[T]) canShrink() bool                            { return false }
func (n *leaf[T]) iter(f func(c byte, n node[T]) bool)        {}
func (n *leaf[T]) iterOrdered(f func(c byte, n node[T]) bool) {}
func (n *leaf[T]) reset()                                     { *n = leaf[T]{} }

//---------------------
// Unsupported Operations
//---------------------

func (n *leaf[T]) findChild(_ byte) *node[T]  { panic("findChild called on leaf") }
func (n *leaf[T]) addChild(_ byte, _ node[T]) { panic("addChild called on leaf") }
func (n *leaf[T]) deleteChild(_ byte)         { panic("deleteChild called on leaf") }
func (n *leaf[T]) copyTo(_ node[T])           { panic("copyTo called on leaf") }
