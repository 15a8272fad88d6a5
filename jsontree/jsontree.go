/*
Package jsontree builds flattrees from JSON documents.

Every JSON value becomes a node of the tree. Members of objects and elements
of arrays become children of the node for their container, in document
order. Payloads are of type Entry, holding the member name (or array index)
and the scalar value.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package jsontree

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/npillmayer/flattree"
	"github.com/npillmayer/schuko/tracing"
	"github.com/tidwall/gjson"
)

// tracer writes to trace with key 'flattree'
func tracer() tracing.Trace {
	return tracing.Select("flattree")
}

var (
	// ErrInvalidJSON is returned for input which is not well-formed JSON.
	ErrInvalidJSON = errors.New("jsontree: invalid JSON")
	// ErrNoMatch is returned if a path does not match any value.
	ErrNoMatch = errors.New("jsontree: path does not match")
)

// Entry is the payload of a tree node.
type Entry struct {
	Key   string     // member name or array index, empty for the root
	Kind  gjson.Type // gjson.JSON for objects and arrays
	Array bool       // value is an array
	Value string     // scalar value, empty for objects and arrays
}

// Label returns a short display text for an entry, e.g. `name: "x"` for
// scalars or `items []` for an array. The root is labelled "$".
func (e Entry) Label() string {
	key := e.Key
	if key == "" {
		key = "$"
	}
	switch {
	case e.Kind != gjson.JSON:
		return key + ": " + e.Value
	case e.Array:
		return key + " []"
	}
	return key + " {}"
}

// Tree is a flattree of JSON entries.
type Tree = flattree.Tree[Entry]

// Load builds a tree from a JSON document. The tree is created with cfg.
// cfg.Sink will not be notified of the changes which build up the tree.
func Load(json []byte, cfg flattree.Config) (*Tree, flattree.NodeID, error) {
	if !gjson.ValidBytes(json) {
		return nil, flattree.None, ErrInvalidJSON
	}
	return build(gjson.ParseBytes(json), cfg)
}

// LoadPath builds a tree from the value at path within a JSON document.
// Paths use gjson syntax, e.g. "store.books.1".
func LoadPath(json []byte, path string, cfg flattree.Config) (*Tree, flattree.NodeID, error) {
	if !gjson.ValidBytes(json) {
		return nil, flattree.None, ErrInvalidJSON
	}
	r := gjson.GetBytes(json, path)
	if !r.Exists() {
		return nil, flattree.None, fmt.Errorf("%w: %q", ErrNoMatch, path)
	}
	return build(r, cfg)
}

func build(r gjson.Result, cfg flattree.Config) (*Tree, flattree.NodeID, error) {
	sink := cfg.Sink
	cfg.Sink = nil
	tree, err := flattree.New[Entry](cfg)
	if err != nil {
		return nil, flattree.None, err
	}
	root, err := mirror(tree, "", r)
	if err != nil {
		return nil, flattree.None, err
	}
	tree.SetSink(sink)
	tracer().Debugf("jsontree: loaded %d values", tree.AggregateCount(root))
	return tree, root, nil
}

// mirror creates a tree node for r and its nested values, bottom up.
func mirror(tree *Tree, key string, r gjson.Result) (flattree.NodeID, error) {
	e := Entry{Key: key, Kind: r.Type}
	if r.Type != gjson.JSON {
		e.Value = r.Raw
		return tree.NewNode(e), nil
	}
	e.Array = r.IsArray()
	var children []flattree.NodeID
	var err error
	i := 0
	r.ForEach(func(k, v gjson.Result) bool {
		name := k.String()
		if e.Array {
			name = strconv.Itoa(i)
		}
		i++
		var c flattree.NodeID
		if c, err = mirror(tree, name, v); err != nil {
			return false
		}
		children = append(children, c)
		return true
	})
	if err != nil {
		return flattree.None, err
	}
	id := tree.NewNode(e)
	if err := tree.Append(id, children...); err != nil {
		return flattree.None, err
	}
	return id, nil
}

// Path returns the gjson path of n, relative to the root of its tree.
// Path components are escaped.
func Path(tree *Tree, n flattree.NodeID) string {
	var parts []string
	for ; tree.Parent(n) != flattree.None; n = tree.Parent(n) {
		parts = append(parts, escape(tree.Value(n).Key))
	}
	path := ""
	for i := len(parts) - 1; i >= 0; i-- {
		if path != "" {
			path += "."
		}
		path += parts[i]
	}
	return path
}

func escape(key string) string {
	var b []byte
	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.', '*', '?', '|', '#', '@', '\\', '!', '=', '<', '>', '%':
			b = append(b, '\\')
		}
		b = append(b, key[i])
	}
	return string(b)
}
