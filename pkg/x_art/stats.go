// file:artkv/pkg/x_art/stats.go
package x_art

//---------------------
// Tree Statistics
//---------------------

// Stats describes the shape of a tree and the activity of its node arena.
type Stats struct {
	Keys     int `json:"keys"`
	Leaves   int `json:"leaves"`
	Node4    int `json:"node4"`
	Node16   int `json:"node16"`
	Node48   int `json:"node48"`
	Node256  int `json:"node256"`
	MaxDepth int `json:"max_depth"`

	Live     int    `json:"live"`
	Limit    int    `json:"limit"`
	Allocs   uint64 `json:"allocs"`
	Reused   uint64 `json:"reused"`
	Released uint64 `json:"released"`
}

// Inner returns the number of inner nodes.
func (s Stats) Inner() int { return s.Node4 + s.Node16 + s.Node48 + s.Node256 }

// Stats walks the tree and counts nodes per class.
func (t *Tree[T]) Stats() Stats {
	s := Stats{
		Keys:     t.size,
		Live:     t.arena.live,
		Limit:    t.arena.limit,
		Allocs:   t.arena.allocs,
		Reused:   t.arena.reused,
		Released: t.arena.released,
	}
	if !t.destroyed {
		countNodes(&s, t.root, 1)
	}
	return s
}

func countNodes[T any](s *Stats, n node[T], level int) {
	s.MaxDepth = max(s.MaxDepth, level)
	switch n.kind() {
	case kindLeaf:
		s.Leaves++
		return
	case kindNode4:
		s.Node4++
	case kindNode16:
		s.Node16++
	case kindNode48:
		s.Node48++
	case kindNode256:
		s.Node256++
	}
	if n.base().term != nil {
		s.Leaves++
		s.MaxDepth = max(s.MaxDepth, level+1)
	}
	n.iter(func(_ byte, cn node[T]) bool {
		countNodes(s, cn, level+1)
		return true
	})
}
