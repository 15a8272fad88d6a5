package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/flattree"
	"github.com/npillmayer/flattree/broadcast"
	"github.com/npillmayer/flattree/html"
	"github.com/npillmayer/flattree/jsontree"
	"github.com/npillmayer/flattree/outline"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/text/language"
)

// session is a document loaded as an outline, independent of the
// document's format.
type session interface {
	print(w io.Writer, from, count int) error
	describe(pos int) (string, error)
	toggle(pos int) error
	move(from, to int, into bool) error
	sort(lang language.Tag)
	dot(w io.Writer) error
	foldAt(depth int) int
	// close stops event reporting and waits until all events are written.
	close()
}

// document implements session for trees with payloads of type V.
type document[V any] struct {
	tree    *flattree.Tree[V]
	root    flattree.NodeID
	view    *outline.View[V]
	printer *outline.Printer[V]
	label   func(V) string
	path    func(flattree.NodeID) string
	events  *broadcast.Sink
	done    chan struct{}
}

// openSession reads the document named by arg ("-" for stdin) and loads it
// as a tree. Change events are written to out if flag --events is set.
func openSession(ctx context.Context, arg string, in io.Reader, out io.Writer) (session, error) {
	var data []byte
	var err error
	if arg == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(arg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", arg, err)
	}
	kind, err := detectFormat(arg, data)
	if err != nil {
		return nil, err
	}
	printVerbose(out, "Loading %s as %s\n", arg, kind)
	switch kind {
	case "json":
		var tree *jsontree.Tree
		var root flattree.NodeID
		if jsonPath != "" {
			tree, root, err = jsontree.LoadPath(data, jsonPath, flattree.Config{})
		} else {
			tree, root, err = jsontree.Load(data, flattree.Config{})
		}
		if err != nil {
			return nil, err
		}
		doc, err := newDocument(ctx, tree, root, jsontree.Entry.Label, out)
		if err != nil {
			return nil, err
		}
		doc.path = func(n flattree.NodeID) string { return jsontree.Path(tree, n) }
		return doc, nil
	default:
		tree, root, err := html.Load(bytes.NewReader(data), flattree.Config{})
		if err != nil {
			return nil, err
		}
		return newDocument(ctx, tree, root, html.Label, out)
	}
}

func newDocument[V any](ctx context.Context, tree *flattree.Tree[V], root flattree.NodeID,
	label func(V) string, out io.Writer) (*document[V], error) {
	//
	view, err := outline.NewView(tree, root)
	if err != nil {
		return nil, err
	}
	config := outline.ConfigFromTerminal()
	config.Context = uax11.ContextFromEnvironment()
	if width > 0 {
		config.Width = width
	}
	if noColor {
		config.Colors = false
	}
	doc := &document[V]{
		tree:    tree,
		root:    root,
		view:    view,
		printer: outline.NewPrinter(label, config),
		label:   label,
	}
	if foldDepth >= 0 {
		n := doc.foldAt(foldDepth)
		printVerbose(out, "Folded %d nodes at depth %d\n", n, foldDepth)
	}
	if !events {
		tree.SetSink(view)
		return doc, nil
	}
	doc.events = broadcast.New(ctx)
	sub, err := doc.events.Subscribe(ctx, 0)
	if err != nil {
		return nil, err
	}
	doc.done = make(chan struct{})
	go func() {
		defer close(doc.done)
		for c := range sub.C {
			fmt.Fprintf(out, "event: %s\n", c)
		}
	}()
	tree.SetSink(flattree.Sinks{view, doc.events})
	return doc, nil
}

// detectFormat decides on the input format, either from flag --format, from
// the file extension or from the first non-blank byte of the data.
func detectFormat(name string, data []byte) (string, error) {
	switch format {
	case "html", "json":
		return format, nil
	case "auto", "":
	default:
		return "", fmt.Errorf("unknown format %q, must be one of auto, html, json", format)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return "json", nil
	case ".html", ".htm", ".xhtml":
		return "html", nil
	}
	if t := bytes.TrimSpace(data); len(t) > 0 && (t[0] == '{' || t[0] == '[') {
		return "json", nil
	}
	return "html", nil
}

func (d *document[V]) print(w io.Writer, from, count int) error {
	if count < 0 {
		count = d.view.Len()
	}
	return d.printer.PrintRows(w, d.view, from, count)
}

func (d *document[V]) describe(pos int) (string, error) {
	row, err := d.view.Row(pos)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "row:      %d\n", row.Pos)
	fmt.Fprintf(&b, "node:     %d\n", row.Node)
	fmt.Fprintf(&b, "label:    %s\n", d.label(d.tree.Value(row.Node)))
	fmt.Fprintf(&b, "depth:    %d\n", row.Depth)
	fmt.Fprintf(&b, "children: %d\n", d.tree.ChildCount(row.Node))
	fmt.Fprintf(&b, "size:     %d\n", d.tree.Size(row.Node))
	fmt.Fprintf(&b, "folded:   %v\n", row.Folded)
	if d.path != nil {
		fmt.Fprintf(&b, "path:     %s\n", d.path(row.Node))
	}
	return b.String(), nil
}

func (d *document[V]) toggle(pos int) error {
	return d.view.Toggle(pos)
}

// move moves the node at row from in front of the node at row to. If into is
// set, the node becomes the last child of the node at row to.
func (d *document[V]) move(from, to int, into bool) error {
	n, err := d.tree.Get(d.root, from)
	if err != nil {
		return err
	}
	target, err := d.tree.Get(d.root, to)
	if err != nil {
		return err
	}
	p := d.tree.Parent(n)
	if n == d.root || p == flattree.None {
		return fmt.Errorf("cannot move the root row")
	}
	i := d.tree.IndexOf(p, n)
	if into {
		return d.tree.Move(d.root, p, i, i, target, d.tree.ChildCount(target))
	}
	q := d.tree.Parent(target)
	if target == d.root || q == flattree.None {
		return fmt.Errorf("cannot move a row in front of the root row")
	}
	return d.tree.Move(d.root, p, i, i, q, d.tree.IndexOf(q, target))
}

func (d *document[V]) sort(lang language.Tag) {
	outline.SortAll(d.tree, d.root, outline.Collated(d.tree, lang, d.label))
}

func (d *document[V]) dot(w io.Writer) error {
	return flattree.ToDot(d.tree, d.root, w, d.label)
}

// foldAt folds every node with children at the given depth below the root.
func (d *document[V]) foldAt(depth int) int {
	var nodes []flattree.NodeID
	d.tree.Each(d.root, func(n flattree.NodeID, dp int) bool {
		if dp == depth && d.tree.ChildCount(n) > 0 {
			nodes = append(nodes, n)
		}
		return true
	})
	for _, n := range nodes {
		d.tree.Fold(n, true)
	}
	return len(nodes)
}

func (d *document[V]) close() {
	if d.events == nil {
		return
	}
	d.events.Close()
	<-d.done
	d.events = nil
}
