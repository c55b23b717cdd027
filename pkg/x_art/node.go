// file:artkv/pkg/x_art/node.go
package x_art

//---------------------
// Node Kinds
//---------------------

// nodeKind tags every node class. Dispatch on the class goes through the
// node interface or an explicit switch on kind(), never through pointer casts.
type nodeKind uint8

const (
	kindLeaf nodeKind = iota
	kindNode4
	kindNode16
	kindNode48
	kindNode256
)

func (k nodeKind) String() string {
	switch k {
	case kindLeaf:
		return "LEAF"
	case kindNode4:
		return "NODE4"
	case kindNode16:
		return "NODE16"
	case kindNode48:
		return "NODE48"
	case kindNode256:
		return "NODE256"
	default:
		return "UNKNOWN"
	}
}

// maxPrefixLen caps the stored part of a compressed prefix. Longer shared
// runs keep their full logical length in prefixLen and are verified at the leaf.
const maxPrefixLen = 32

//---------------------
// Node Interface
//---------------------

// node is either a *leaf[T] or one of the inner classes.
type node[T any] interface {
	kind() nodeKind
	isLeaf() bool
	base() *meta[T]
	// findChild returns the slot holding the child for c, or nil.
	findChild(c byte) *node[T]
	// addChild assumes the node is not full and c is not present.
	addChild(c byte, n node[T])
	deleteChild(c byte)
	isFull() bool
	numChildren() int
	// canShrink reports whether the occupancy fits the next-smaller class.
	canShrink() bool
	// copyTo moves every child into dst, which must have room for them.
	copyTo(dst node[T])
	// iter visits children in storage order.
	iter(f func(c byte, n node[T]) bool)
	// iterOrdered visits children in ascending indexing byte order.
	iterOrdered(f func(c byte, n node[T]) bool)
	reset()
}

//---------------------
// Node Metadata (Shared)
//---------------------

// meta is embedded by every inner node class.
type meta[T any] struct {
	prefix    [maxPrefixLen]byte
	prefixLen int      // logical prefix length, may exceed maxPrefixLen
	size      uint16   // occupied child slots
	term      *leaf[T] // key exhausted exactly at this node
}

func (m *meta[T]) isLeaf() bool     { return false }
func (m *meta[T]) base() *meta[T]   { return m }
func (m *meta[T]) numChildren() int { return int(m.size) }

// storedPrefix returns the bytes of the prefix that are actually kept.
func (m *meta[T]) storedPrefix() []byte {
	return m.prefix[:min(m.prefixLen, maxPrefixLen)]
}

// setPrefix keeps the logical length of p but stores at most maxPrefixLen bytes.
func (m *meta[T]) setPrefix(p []byte) {
	m.prefixLen = len(p)
	copy(m.prefix[:], p)
}

// setPrefixLen records a logical length whose first bytes are taken from p.
func (m *meta[T]) setPrefixLen(p []byte, logical int) {
	m.prefixLen = logical
	copy(m.prefix[:], p[:min(len(p), maxPrefixLen, logical)])
}

// entries counts children plus the terminal leaf.
func (m *meta[T]) entries() int {
	if m.term != nil {
		return int(m.size) + 1
	}
	return int(m.size)
}

// copyMeta moves the prefix and terminal leaf from src to dst.
func copyMeta[T any](dst, src *meta[T]) {
	dst.prefix = src.prefix
	dst.prefixLen = src.prefixLen
	dst.term = src.term
}
