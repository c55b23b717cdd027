// file:artkv/cmd/cmd_art/bench.go
package cmd_art

import (
	"fmt"
	"io"
	"time"

	"github.com/nats-io/nuid"
	"github.com/rskv-p/artkv/pkg/x_art"
	"github.com/spf13/cobra"
)

// benchCmd times insert, search and delete over random keys
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Measure tree operations on random keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("keys")
		if n <= 0 {
			return fmt.Errorf("--keys must be positive")
		}
		res, err := runBench(n)
		if err != nil {
			return err
		}
		res.print(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	benchCmd.Flags().IntP("keys", "n", 100000, "Number of keys")
}

type benchResult struct {
	Keys   int
	Insert time.Duration
	Search time.Duration
	Delete time.Duration
	Stats  x_art.Stats // taken before the deletes
}

// runBench inserts n nuid keys, looks each up, then deletes them all.
func runBench(n int) (benchResult, error) {
	gen := nuid.New()
	keys := make([][]byte, n)
	for i := range keys {
		keys[i] = []byte(gen.Next())
	}

	tree := x_art.New[int]()
	defer tree.Destroy()
	res := benchResult{Keys: n}

	start := time.Now()
	for i, k := range keys {
		if _, _, err := tree.Insert(k, i); err != nil {
			return res, fmt.Errorf("insert %q: %w", k, err)
		}
	}
	res.Insert = time.Since(start)

	start = time.Now()
	for i, k := range keys {
		if v, ok := tree.Search(k); !ok || v != i {
			return res, fmt.Errorf("search %q: lost key", k)
		}
	}
	res.Search = time.Since(start)
	res.Stats = tree.Stats()

	start = time.Now()
	for _, k := range keys {
		if _, ok := tree.Delete(k); !ok {
			return res, fmt.Errorf("delete %q: lost key", k)
		}
	}
	res.Delete = time.Since(start)

	if tree.Size() != 0 {
		return res, fmt.Errorf("%d keys left after delete", tree.Size())
	}
	return res, nil
}

func (r benchResult) print(w io.Writer) {
	per := func(d time.Duration) time.Duration { return d / time.Duration(r.Keys) }
	fmt.Fprintf(w, "keys:    %d\n", r.Keys)
	fmt.Fprintf(w, "insert:  %v (%v/op)\n", r.Insert, per(r.Insert))
	fmt.Fprintf(w, "search:  %v (%v/op)\n", r.Search, per(r.Search))
	fmt.Fprintf(w, "delete:  %v (%v/op)\n", r.Delete, per(r.Delete))
	fmt.Fprintf(w, "nodes:   n4=%d n16=%d n48=%d n256=%d depth=%d\n",
		r.Stats.Node4, r.Stats.Node16, r.Stats.Node48, r.Stats.Node256, r.Stats.MaxDepth)
}
