// file:artkv/cmd/cmd_art/shell.go
package cmd_art

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/rs/zerolog"
	"github.com/rskv-p/artkv/pkg/x_art"
	"github.com/rskv-p/artkv/pkg/x_log"
	"github.com/rskv-p/artkv/servs/s_art/art_serv"
	"github.com/spf13/cobra"
)

// shellCmd opens an interactive session on an in-memory tree
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive tree shell",
	RunE: func(cmd *cobra.Command, args []string) error {
		maxNodes, _ := cmd.Flags().GetInt("max-nodes")
		maxKey, _ := cmd.Flags().GetInt("max-key")
		theme, _ := cmd.Flags().GetString("style")

		store := art_serv.NewStore(zerolog.Nop(), x_art.WithMaxNodes(maxNodes), x_art.WithMaxKeyLen(maxKey))
		defer store.Close()

		sh := newShell(store, cmd.OutOrStdout(), x_log.DefaultStylesByName(theme))
		return sh.run(cmd.InOrStdin())
	},
}

func init() {
	shellCmd.Flags().Int("max-nodes", 0, "Node budget (0 = unlimited)")
	shellCmd.Flags().Int("max-key", 0, "Longest accepted key (0 = unlimited)")
	shellCmd.Flags().String("style", "dark", "Colour theme (dark, light)")
}

//---------------------
// Shell
//---------------------

var errQuit = errors.New("quit")

const shellHelp = `commands:
  put <key> <value>   insert or replace
  get <key>           look up
  del <key>           remove
  len                 number of keys
  list [prefix] [n]   keys in order
  stats               node counts
  dump                node structure
  help, quit`

type shell struct {
	store  *art_serv.Store
	out    io.Writer
	styles *x_log.Styles
}

func newShell(store *art_serv.Store, out io.Writer, styles *x_log.Styles) *shell {
	return &shell{store: store, out: out, styles: styles}
}

// run reads commands from in until EOF or quit.
func (s *shell) run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	prompt := s.styles.Prompt.Render("art> ")
	for {
		fmt.Fprint(s.out, prompt)
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		err := s.exec(sc.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(s.out, s.styles.Field("err", err.Error()))
		}
	}
}

// exec runs one command line.
func (s *shell) exec(line string) error {
	args, err := shlex.Split(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}

	switch cmd, rest := strings.ToLower(args[0]), args[1:]; cmd {
	case "put", "set":
		if len(rest) != 2 {
			return errors.New("usage: put <key> <value>")
		}
		old, replaced, err := s.store.Put([]byte(rest[0]), []byte(rest[1]))
		if err != nil {
			return err
		}
		if replaced {
			fmt.Fprintln(s.out, "replaced", s.styles.Field("old", string(old)))
		} else {
			fmt.Fprintln(s.out, "inserted")
		}
	case "get":
		if len(rest) != 1 {
			return errors.New("usage: get <key>")
		}
		v, ok := s.store.Get([]byte(rest[0]))
		if !ok {
			fmt.Fprintln(s.out, "(not found)")
			return nil
		}
		fmt.Fprintln(s.out, s.styles.Field("key", rest[0]), s.styles.Field("value", string(v)))
	case "del", "delete":
		if len(rest) != 1 {
			return errors.New("usage: del <key>")
		}
		old, ok := s.store.Delete([]byte(rest[0]))
		if !ok {
			fmt.Fprintln(s.out, "(not found)")
			return nil
		}
		fmt.Fprintln(s.out, "deleted", s.styles.Field("value", string(old)))
	case "len":
		fmt.Fprintln(s.out, s.store.Len())
	case "list", "ls":
		return s.list(rest)
	case "stats":
		st := s.store.Stats()
		fmt.Fprintln(s.out,
			s.styles.Field("keys", strconv.Itoa(st.Keys)),
			s.styles.Field("node4", strconv.Itoa(st.Node4)),
			s.styles.Field("node16", strconv.Itoa(st.Node16)),
			s.styles.Field("node48", strconv.Itoa(st.Node48)),
			s.styles.Field("node256", strconv.Itoa(st.Node256)),
			s.styles.Field("depth", strconv.Itoa(st.MaxDepth)),
			s.styles.Field("live", strconv.Itoa(st.Live)))
	case "dump":
		var buf bytes.Buffer
		s.store.Dump(&buf)
		fmt.Fprint(s.out, s.styles.Dump(buf.String()))
	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

func (s *shell) list(args []string) error {
	var prefix []byte
	limit := 0
	if len(args) > 0 {
		prefix = []byte(args[0])
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("limit: %w", err)
		}
		limit = n
	}
	for _, kv := range s.store.List(prefix, limit) {
		fmt.Fprintln(s.out, s.styles.Field("key", string(kv.Key)), s.styles.Field("value", string(kv.Value)))
	}
	return nil
}
