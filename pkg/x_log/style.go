// file:artkv/pkg/x_log/style.go
package x_log

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

//---------------------
// Palette
//---------------------

// palette is the handful of colours a theme is built from.
type palette struct {
	accent string // keys, prompt
	tree   string // node headers in dumps
	muted  string // timestamps, separators
	text   string // messages
	debug  string
	info   string
	warn   string
	err    string
}

var (
	darkPalette = palette{
		accent: "#78a9ff",
		tree:   "#3ddbd9",
		muted:  "#8d8d8d",
		text:   "#f4f4f4",
		debug:  "#3ddbd9",
		info:   "#4589ff",
		warn:   "#ff832b",
		err:    "#da1e28",
	}
	lightPalette = palette{
		accent: "#0f62fe",
		tree:   "#007d79",
		muted:  "#8d8d8d",
		text:   "#262626",
		debug:  "#007d79",
		info:   "#0043ce",
		warn:   "#ff832b",
		err:    "#da1e28",
	}
)

// Field groups share a look across the log stream and the shell.
var (
	treeFields  = []string{"key", "key_len", "kind", "live", "limit", "released", "keys"}
	routeFields = []string{"addr", "subject", "sub", "user", "module"}
	errorFields = []string{"err", "error"}
)

//---------------------
// Styles
//---------------------

// Styles renders log lines, shell fields and tree dumps.
type Styles struct {
	Out       io.Writer
	Timestamp lipgloss.Style
	Message   lipgloss.Style
	Separator lipgloss.Style
	Levels    map[Level]lipgloss.Style // level badges

	Keys              map[string]lipgloss.Style
	Values            map[string]lipgloss.Style
	DefaultKeyStyle   lipgloss.Style
	DefaultValueStyle lipgloss.Style

	Node   lipgloss.Style // inner node lines of a dump
	Leaf   lipgloss.Style // leaf lines of a dump
	Prompt lipgloss.Style
}

// DefaultStylesByName returns a theme by name ("dark", "light").
func DefaultStylesByName(name string) *Styles {
	if strings.EqualFold(strings.TrimSpace(name), "light") {
		return DefaultStylesLight()
	}
	return DefaultStylesDark()
}

func DefaultStylesDark() *Styles  { return newStyles(darkPalette) }
func DefaultStylesLight() *Styles { return newStyles(lightPalette) }

func newStyles(p palette) *Styles {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	badge := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color(c)).Padding(0, 1)
	}

	s := &Styles{
		Timestamp: fg(p.muted).Width(16),
		Message:   fg(p.text),
		Separator: fg(p.muted),
		Levels: map[Level]lipgloss.Style{
			DebugLevel: badge(p.debug),
			InfoLevel:  badge(p.info),
			WarnLevel:  badge(p.warn),
			ErrorLevel: badge(p.err),
			FatalLevel: badge(p.err).Bold(true),
		},
		Keys:              map[string]lipgloss.Style{},
		Values:            map[string]lipgloss.Style{},
		DefaultKeyStyle:   fg(p.accent),
		DefaultValueStyle: lipgloss.NewStyle(),
		Node:              fg(p.tree).Bold(true),
		Leaf:              fg(p.accent),
		Prompt:            fg(p.info).Bold(true),
	}
	for _, k := range treeFields {
		s.Keys[k] = fg(p.tree)
	}
	s.Values["key"] = lipgloss.NewStyle().Italic(true)
	s.Values["kind"] = lipgloss.NewStyle().Bold(true)
	for _, k := range routeFields {
		s.Keys[k] = fg(p.accent)
	}
	for _, k := range errorFields {
		s.Keys[k] = fg(p.err)
		s.Values[k] = lipgloss.NewStyle().Bold(true)
	}
	return s
}

//---------------------
// Rendering
//---------------------

// ConsoleWriterWithStyles builds a zerolog.ConsoleWriter drawing with styles.
func ConsoleWriterWithStyles(styles *Styles) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        styles.Out,
		TimeFormat: zerolog.TimeFieldFormat,

		FormatLevel: func(i any) string {
			name := strings.ToLower(fmt.Sprint(i))
			badge, ok := styles.Levels[ParseLevel(name)]
			if !ok {
				badge = lipgloss.NewStyle().Padding(0, 1)
			}
			return badge.Render(strings.ToUpper(name[:min(3, len(name))]))
		},
		FormatTimestamp: func(i any) string {
			return styles.Timestamp.Render(fmt.Sprintf("[%s]", i))
		},
		FormatFieldName: func(i any) string {
			return styles.key(fmt.Sprint(i)).Render(fmt.Sprint(i)) + styles.Separator.Render("=")
		},
		FormatMessage: func(i any) string {
			return styles.Message.Render(fmt.Sprint(i))
		},
	}
}

func (s *Styles) key(name string) lipgloss.Style {
	if st, ok := s.Keys[name]; ok {
		return st
	}
	return s.DefaultKeyStyle
}

// Field renders key=value with the key and value styles of the theme.
func (s *Styles) Field(key, value string) string {
	vs, ok := s.Values[key]
	if !ok {
		vs = s.DefaultValueStyle
	}
	return s.key(key).Render(key) + s.Separator.Render("=") + vs.Render(value)
}

// Dump colours the output of a tree dump: inner node lines with Node, leaf
// lines with Leaf. Line breaks are kept as they are.
func (s *Styles) Dump(text string) string {
	var b strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		body, nl := strings.CutSuffix(line, "\n")
		switch {
		case body == "":
		case strings.Contains(body, "LEAF:"):
			b.WriteString(s.Leaf.Render(body))
		default:
			b.WriteString(s.Node.Render(body))
		}
		if nl {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
