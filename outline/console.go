package outline

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/flattree"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// PrinterConfig configures a Printer.
type PrinterConfig struct {
	Width   int            // line width in fixed-width ‘en’s, 0 for unbounded
	Indent  int            // indentation per level of depth
	Context *uax11.Context // context for measuring text widths
	Colors  bool           // colorize markers and the selected row
}

// Markers are the prefixes for rows: folded nodes, unfolded nodes with
// children, and leaves.
type Markers struct {
	Folded, Unfolded, Leaf string
}

// DefaultMarkers is the default set of row markers.
var DefaultMarkers = Markers{
	Folded:   "▸ ",
	Unfolded: "▾ ",
	Leaf:     "  ",
}

// Printer outputs rows of a view to a console with a fixed width font.
type Printer[V any] struct {
	Markers  *Markers
	config   PrinterConfig
	label    func(V) string
	marker   *color.Color
	folded   *color.Color
	selected *color.Color
}

// NewPrinter creates a printer, which will use label to create the text of
// a row. If config is nil, a config will be derived from the terminal
// properties (if stdout is a terminal) and from the user environment.
func NewPrinter[V any](label func(V) string, config *PrinterConfig) *Printer[V] {
	if config == nil {
		config = ConfigFromTerminal()
		config.Context = uax11.ContextFromEnvironment()
	}
	grapheme.SetupGraphemeClasses()
	p := &Printer[V]{
		Markers:  &DefaultMarkers,
		config:   *config,
		label:    label,
		marker:   color.New(color.FgBlue),
		folded:   color.New(color.FgHiBlack),
		selected: color.New(color.ReverseVideo),
	}
	if p.config.Context == nil {
		p.config.Context = uax11.LatinContext
	}
	if p.config.Indent <= 0 {
		p.config.Indent = 2
	}
	if p.label == nil {
		p.label = func(v V) string { return fmt.Sprint(v) }
	}
	if !p.config.Colors {
		p.marker.DisableColor()
		p.folded.DisableColor()
		p.selected.DisableColor()
	} else {
		p.marker.EnableColor()
		p.folded.EnableColor()
		p.selected.EnableColor()
	}
	return p
}

// Print outputs all rows of view to w.
func (p *Printer[V]) Print(w io.Writer, view *View[V]) error {
	return p.PrintRows(w, view, 0, view.Len())
}

// PrintRows outputs up to count rows of view to w, starting at row from.
func (p *Printer[V]) PrintRows(w io.Writer, view *View[V], from, count int) error {
	sel, _, _ := view.Selection()
	for _, row := range view.Rows(from, count) {
		if err := p.printRow(w, view.Tree(), row, row.Pos == sel); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer[V]) printRow(w io.Writer, tree *flattree.Tree[V], row Row, selected bool) error {
	indent := strings.Repeat(" ", row.Depth*p.config.Indent)
	marker := p.Markers.Leaf
	if row.Folded {
		marker = p.Markers.Folded
	} else if !row.Leaf {
		marker = p.Markers.Unfolded
	}
	avail := 0
	if p.config.Width > 0 {
		avail = p.config.Width - p.width(indent) - p.width(marker)
		if avail < 1 {
			avail = 1
		}
	}
	text := p.fit(p.label(tree.Value(row.Node)), avail)
	if _, err := io.WriteString(w, indent); err != nil {
		return err
	}
	if _, err := p.marker.Fprint(w, marker); err != nil {
		return err
	}
	var err error
	switch {
	case selected:
		_, err = p.selected.Fprint(w, text)
	case row.Folded:
		_, err = p.folded.Fprint(w, text)
	default:
		_, err = io.WriteString(w, text)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func (p *Printer[V]) width(s string) int {
	if s == "" {
		return 0
	}
	return uax11.StringWidth(grapheme.StringFromString(s), p.config.Context)
}

// fit truncates s to at most avail ‘en’s, marking truncation with an
// ellipsis. avail = 0 leaves s untouched.
func (p *Printer[V]) fit(s string, avail int) string {
	if avail == 0 || p.width(s) <= avail {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && p.width(string(runes)+"…") > avail {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating a printer config.
// It checks wether stdout is a terminal, and if so it reads the terminal's
// width and enables colors.
func ConfigFromTerminal() *PrinterConfig {
	config := &PrinterConfig{Indent: 2}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		config.Colors = true
		w, _, err := term.GetSize(fd)
		if err != nil {
			config.Width = 80
		} else if w > 10 {
			config.Width = w - 1
		} else {
			config.Width = 10
		}
	}
	tracer().P("format", "console").Infof("setting line width to %d en", config.Width)
	return config
}
