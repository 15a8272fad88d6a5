/*
Package html builds flattrees from HTML documents.

Element nodes of the document become nodes of the tree, and text nodes
carrying more than white space become leaves. Comments, doctypes and
white space are skipped. The payload of every tree node is the
corresponding *html.Node, which clients may inspect for tags, attributes
and text.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package html

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/flattree"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer writes to trace with key 'flattree'
func tracer() tracing.Trace {
	return tracing.Select("flattree")
}

// Tree is a flattree of HTML nodes.
type Tree = flattree.Tree[*html.Node]

// Load parses a complete HTML document and builds a tree from it. The root of
// the tree holds the document node.
//
// The tree is created with cfg. cfg.Sink will not be notified of the
// changes which build up the tree.
func Load(input io.Reader, cfg flattree.Config) (*Tree, flattree.NodeID, error) {
	doc, err := html.Parse(input)
	if err != nil {
		return nil, flattree.None, fmt.Errorf("html: cannot parse document: %w", err)
	}
	return build(cfg, doc, nil)
}

// LoadFragment parses an HTML fragment in the context of a <body> element
// and builds a tree from it. The root of the tree holds a synthetic document
// node, the top-level nodes of the fragment are its children.
func LoadFragment(input io.Reader, cfg flattree.Config) (*Tree, flattree.NodeID, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(input, body)
	if err != nil {
		return nil, flattree.None, fmt.Errorf("html: cannot parse fragment: %w", err)
	}
	return build(cfg, &html.Node{Type: html.DocumentNode}, nodes)
}

func build(cfg flattree.Config, root *html.Node, top []*html.Node) (*Tree, flattree.NodeID, error) {
	sink := cfg.Sink
	cfg.Sink = nil
	tree, err := flattree.New[*html.Node](cfg)
	if err != nil {
		return nil, flattree.None, err
	}
	var r flattree.NodeID
	if top == nil {
		r, err = mirror(tree, root)
	} else {
		r = tree.NewNode(root)
		children := make([]flattree.NodeID, 0, len(top))
		for _, n := range top {
			if !relevant(n) {
				continue
			}
			c, err := mirror(tree, n)
			if err != nil {
				return nil, flattree.None, err
			}
			children = append(children, c)
		}
		err = tree.Append(r, children...)
	}
	if err != nil {
		return nil, flattree.None, err
	}
	tree.SetSink(sink)
	tracer().Debugf("html: loaded %d nodes", tree.AggregateCount(r))
	return tree, r, nil
}

// mirror creates a tree node for n and its relevant descendants, bottom up.
func mirror(tree *Tree, n *html.Node) (flattree.NodeID, error) {
	var children []flattree.NodeID
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !relevant(c) {
			continue
		}
		child, err := mirror(tree, c)
		if err != nil {
			return flattree.None, err
		}
		children = append(children, child)
	}
	id := tree.NewNode(n)
	if err := tree.Append(id, children...); err != nil {
		return flattree.None, err
	}
	return id, nil
}

func relevant(n *html.Node) bool {
	switch n.Type {
	case html.ElementNode, html.DocumentNode:
		return true
	case html.TextNode:
		return strings.TrimSpace(n.Data) != ""
	}
	return false
}

// Label returns a short display text for an HTML node: elements are shown
// as tag with id and classes, e.g. "div#main.wide", text nodes with their
// collapsed text.
func Label(n *html.Node) string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case html.DocumentNode:
		return "#document"
	case html.TextNode:
		return fmt.Sprintf("%q", strings.Join(strings.Fields(n.Data), " "))
	case html.ElementNode:
		var b strings.Builder
		b.WriteString(n.Data)
		for _, a := range n.Attr {
			if a.Key == "id" {
				b.WriteString("#" + a.Val)
			}
		}
		for _, a := range n.Attr {
			if a.Key == "class" {
				for _, c := range strings.Fields(a.Val) {
					b.WriteString("." + c)
				}
			}
		}
		return b.String()
	}
	return ""
}

// InnerText returns the textual content of an HTML node and all its
// descendents. It resembles the text produced by
//
//	document.getElementById("myNode").innerText
//
// in JavaScript (except that InnerText cannot respect CSS styling suppressing
// the visibility of the node's descendents).
func InnerText(n *html.Node) string {
	var b strings.Builder
	collectText(n, &b)
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// Find returns the first node in pre-order within the subtree at root
// whose element has the given id.
func Find(tree *Tree, root flattree.NodeID, id string) (flattree.NodeID, bool) {
	found := flattree.None
	tree.Each(root, func(n flattree.NodeID, _ int) bool {
		for _, a := range tree.Value(n).Attr {
			if a.Key == "id" && a.Val == id {
				found = n
				return false
			}
		}
		return true
	})
	return found, found != flattree.None
}
