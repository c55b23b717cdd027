// file:artkv/pkg/x_art/prefix.go
package x_art

//---------------------
// Prefix Matching
//---------------------

// matchOptimistic consumes the whole prefix of m without comparing it and
// returns the new depth. A wrong turn taken this way is caught by the
// full-key comparison at the leaf.
func matchOptimistic[T any](m *meta[T], depth int) int {
	return depth + m.prefixLen
}

// prefixMismatch compares the prefix of n against key[depth:] byte by byte
// and returns the length of the common run, which equals prefixLen only when
// the whole prefix matched. Bytes past the stored part come from a leaf below
// n, since every leaf there carries the full path.
func prefixMismatch[T any](n node[T], key []byte, depth int) int {
	m := n.base()
	limit := min(m.prefixLen, len(key)-depth)
	stored := min(limit, maxPrefixLen)
	i := commonPrefixLen(m.prefix[:stored], key[depth:depth+stored])
	if i < stored || stored == limit {
		return i
	}
	full := minLeaf(n).key[depth : depth+m.prefixLen]
	return maxPrefixLen + commonPrefixLen(full[maxPrefixLen:limit], key[depth+maxPrefixLen:depth+limit])
}

// fullPrefix returns the complete logical prefix of n, which starts at depth.
// The result may alias node or leaf storage and must not be modified.
func fullPrefix[T any](n node[T], depth int) []byte {
	m := n.base()
	if m.prefixLen <= maxPrefixLen {
		return m.prefix[:m.prefixLen]
	}
	return minLeaf(n).key[depth : depth+m.prefixLen]
}

//---------------------
// Leaf Lookup
//---------------------

// minLeaf returns the leaf with the smallest key under n.
func minLeaf[T any](n node[T]) *leaf[T] {
	for n != nil {
		if l, ok := n.(*leaf[T]); ok {
			return l
		}
		m := n.base()
		if m.term != nil {
			return m.term
		}
		var next node[T]
		n.iterOrdered(func(_ byte, cn node[T]) bool {
			next = cn
			return false
		})
		n = next
	}
	return nil
}

// maxLeaf returns the leaf with the largest key under n.
func maxLeaf[T any](n node[T]) *leaf[T] {
	for n != nil {
		if l, ok := n.(*leaf[T]); ok {
			return l
		}
		var next node[T]
		n.iterOrdered(func(_ byte, cn node[T]) bool {
			next = cn
			return true
		})
		if next == nil {
			return n.base().term
		}
		n = next
	}
	return nil
}
