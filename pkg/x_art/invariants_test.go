package x_art

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//---------------------
// Structural Checker
//---------------------

// checkTree walks the whole tree and fails on any broken structural rule.
func checkTree[T any](t *testing.T, tr *Tree[T]) {
	t.Helper()
	require.False(t, tr.destroyed)
	require.NotNil(t, tr.root)

	if tr.size == 0 {
		require.False(t, tr.root.isLeaf(), "empty tree must keep an inner root")
		require.Equal(t, 0, tr.root.base().entries())
		require.Equal(t, 1, tr.arena.live)
		return
	}

	var inner int
	leaves := checkNode(t, tr.root, nil, true, &inner)
	require.Len(t, leaves, tr.size)
	require.Equal(t, len(leaves)+inner, tr.arena.live, "live nodes")

	seen := make(map[string]bool, len(leaves))
	for _, l := range leaves {
		require.False(t, seen[string(l.key)], "duplicate key %q", l.key)
		seen[string(l.key)] = true
	}
}

func checkNode[T any](t *testing.T, n node[T], path []byte, isRoot bool, inner *int) []*leaf[T] {
	t.Helper()
	if l, ok := n.(*leaf[T]); ok {
		require.True(t, bytes.HasPrefix(l.key, path), "leaf %q outside path %q", l.key, path)
		return []*leaf[T]{l}
	}

	*inner++
	m := n.base()
	depth := len(path)
	if !isRoot {
		require.GreaterOrEqual(t, m.entries(), 2, "non-root %s at %q", n.kind(), path)
	}
	checkOccupancy(t, n)

	first := minLeaf(n)
	require.NotNil(t, first)
	require.GreaterOrEqual(t, len(first.key), depth+m.prefixLen)
	full := first.key[depth : depth+m.prefixLen]
	require.Equal(t, full[:min(len(full), maxPrefixLen)], m.storedPrefix(), "stored prefix at %q", path)

	here := append(append([]byte{}, path...), full...)
	var out []*leaf[T]
	if m.term != nil {
		require.Equal(t, here, m.term.key, "terminal leaf at %q", here)
		out = append(out, m.term)
	}
	n.iter(func(c byte, cn node[T]) bool {
		sub := append(append([]byte{}, here...), c)
		out = append(out, checkNode(t, cn, sub, false, inner)...)
		return true
	})
	return out
}

func checkOccupancy[T any](t *testing.T, n node[T]) {
	t.Helper()
	switch nn := n.(type) {
	case *node4[T]:
		require.LessOrEqual(t, int(nn.size), 4)
		for i := 0; i < 4; i++ {
			require.Equal(t, i < int(nn.size), nn.child[i] != nil, "node4 slot %d", i)
			for j := 0; j < i && i < int(nn.size); j++ {
				require.NotEqual(t, nn.key[j], nn.key[i])
			}
		}
	case *node16[T]:
		require.GreaterOrEqual(t, int(nn.size), 5)
		require.LessOrEqual(t, int(nn.size), 16)
		for i := 0; i < 16; i++ {
			require.Equal(t, i < int(nn.size), nn.child[i] != nil, "node16 slot %d", i)
			if i > 0 && i < int(nn.size) {
				require.Less(t, nn.key[i-1], nn.key[i], "node16 keys unsorted")
			}
		}
	case *node48[T]:
		require.GreaterOrEqual(t, int(nn.size), 17)
		require.LessOrEqual(t, int(nn.size), 48)
		var used [48]bool
		count := 0
		for _, i := range nn.index {
			if i == empty48 {
				continue
			}
			require.Less(t, int(i), int(nn.size))
			require.False(t, used[i], "node48 slot %d shared", i)
			used[i] = true
			count++
		}
		require.Equal(t, int(nn.size), count)
		for i := 0; i < 48; i++ {
			require.Equal(t, i < int(nn.size), nn.child[i] != nil, "node48 slot %d", i)
		}
	case *node256[T]:
		require.GreaterOrEqual(t, int(nn.size), 49)
		count := 0
		for _, c := range nn.child {
			if c != nil {
				count++
			}
		}
		require.Equal(t, int(nn.size), count)
	default:
		t.Fatalf("unexpected node %T", n)
	}
}

//---------------------
// Randomized Operations
//---------------------

// randomKey draws from a tiny alphabet so keys share prefixes, are prefixes
// of each other and sometimes run past the stored prefix length.
func randomKey(rng *rand.Rand) []byte {
	alphabet := []byte{'a', 'b', 0x00, 0xFF}
	var key []byte
	switch rng.Intn(4) {
	case 0:
		key = bytes.Repeat([]byte{'x'}, 30+rng.Intn(10))
	case 1:
		key = []byte("prefix/")
	}
	for n := rng.Intn(6); n > 0; n-- {
		key = append(key, alphabet[rng.Intn(len(alphabet))])
	}
	return key
}

func TestTree_RandomizedAgainstMap(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tr := New[int]()
	ref := make(map[string]int)

	for op := 0; op < 4000; op++ {
		key := randomKey(rng)
		if rng.Intn(3) == 0 {
			want, had := ref[string(key)]
			got, ok := tr.Delete(key)
			require.Equal(t, had, ok, "delete %q", key)
			require.Equal(t, want, got)
			delete(ref, string(key))
		} else {
			want, had := ref[string(key)]
			old, replaced, err := tr.Insert(key, op)
			require.NoError(t, err)
			require.Equal(t, had, replaced, "insert %q", key)
			require.Equal(t, want, old)
			ref[string(key)] = op
		}
		require.Equal(t, len(ref), tr.Size())
		checkTree(t, tr)
	}

	for k, v := range ref {
		got, ok := tr.Search([]byte(k))
		require.True(t, ok, "search %q", k)
		require.Equal(t, v, got)
	}

	want := make([]string, 0, len(ref))
	for k := range ref {
		want = append(want, k)
	}
	sort.Strings(want)
	var got []string
	tr.IterOrdered(func(key []byte, _ *int) bool {
		got = append(got, string(key))
		return true
	})
	assert.Equal(t, want, got)

	// drain
	for k := range ref {
		_, ok := tr.Delete([]byte(k))
		require.True(t, ok)
		checkTree(t, tr)
	}
	assert.Equal(t, 0, tr.Size())
	assert.Equal(t, 1, tr.Live())
}

func TestTree_RandomizedWithBudget(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tr := New[int](WithMaxNodes(60))
	ref := make(map[string]int)
	refused := 0

	for op := 0; op < 2000; op++ {
		key := randomKey(rng)
		if rng.Intn(3) == 0 {
			_, had := ref[string(key)]
			_, ok := tr.Delete(key)
			require.Equal(t, had, ok)
			delete(ref, string(key))
		} else {
			before := fmt.Sprint(tr.Stats())
			_, _, err := tr.Insert(key, op)
			if err != nil {
				require.ErrorIs(t, err, ErrAllocation)
				require.Equal(t, before, fmt.Sprint(tr.Stats()), "refused insert changed the tree")
				refused++
			} else {
				ref[string(key)] = op
			}
		}
		require.LessOrEqual(t, tr.Live(), 60)
		require.Equal(t, len(ref), tr.Size())
		checkTree(t, tr)
	}
	assert.Positive(t, refused)

	for k, v := range ref {
		got, ok := tr.Search([]byte(k))
		require.True(t, ok)
		require.Equal(t, v, got)
	}
}
