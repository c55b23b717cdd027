// file:artkv/pkg/x_art/dump.go
package x_art

import (
	"fmt"
	"io"
	"strings"
)

//---------------------
// Tree Dump (Debug)
//---------------------

// Dump writes a visual tree representation to w.
func (t *Tree[T]) Dump(w io.Writer) {
	if t.destroyed {
		fmt.Fprintln(w, "DESTROYED")
		return
	}
	if t.size == 0 {
		fmt.Fprintln(w, "EMPTY")
		return
	}
	t.dump(w, t.root, -1, 0)
	fmt.Fprintln(w)
}

// dump writes a single node (recursive). c is the indexing byte in the
// parent, or -1 for the root and terminal leaves.
func (t *Tree[T]) dump(w io.Writer, n node[T], c int, depth int) {
	edge := ""
	if c >= 0 {
		edge = fmt.Sprintf("[%q] ", byte(c))
	}
	if l, ok := n.(*leaf[T]); ok {
		fmt.Fprintf(w, "%s%sLEAF: Key: %q Value: %+v\n", dumpPre(depth), edge, l.key, l.value)
		return
	}

	m := n.base()
	fmt.Fprintf(w, "%s%s%s Prefix: %q", dumpPre(depth), edge, n.kind(), m.storedPrefix())
	if m.prefixLen > maxPrefixLen {
		fmt.Fprintf(w, " (+%d)", m.prefixLen-maxPrefixLen)
	}
	fmt.Fprintln(w)
	depth++
	if m.term != nil {
		t.dump(w, m.term, -1, depth)
	}
	n.iterOrdered(func(b byte, cn node[T]) bool {
		t.dump(w, cn, int(b), depth)
		return true
	})
}

//---------------------
// Indentation Helper
//---------------------

func dumpPre(depth int) string {
	if depth == 0 {
		return "-- "
	}
	var b strings.Builder
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
	b.WriteString("|__ ")
	return b.String()
}
