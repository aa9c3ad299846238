/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package template

import (
	"errors"
	"fmt"
)

// ErrReplace indicates a replacement node that does not fit its slot.
var ErrReplace = errors.New("cannot replace node")

// Path links a node to the slot it occupies in its parent.
type Path struct {
	// Node is the node being visited.
	Node Node
	// Parent is the path of the parent node, nil at the root.
	Parent *Path
	// Key names the parent field holding Node, e.g. "children" or "value".
	Key string
	// Index is the position within Key for list fields, -1 otherwise.
	Index int
}

// ParentNode returns the parent node, or nil at the root.
func (p *Path) ParentNode() Node {
	if p.Parent == nil {
		return nil
	}
	return p.Parent.Node
}

// Replace swaps the visited node for replacement in its parent.
// The whole node is replaced; nothing is edited in place.
func (p *Path) Replace(replacement Node) error {
	if p.Parent == nil {
		return fmt.Errorf("%w: %s is the root", ErrReplace, p.Node.Type())
	}
	if err := replaceChild(p.Parent.Node, p.Key, p.Index, replacement); err != nil {
		return err
	}
	p.Node = replacement
	return nil
}

func replaceChild(parent Node, key string, index int, replacement Node) error {
	mismatch := fmt.Errorf("%w: %s does not fit %s.%s", ErrReplace, replacement.Type(), parent.Type(), key)

	switch parent := parent.(type) {
	case *Template:
		stmt, ok := replacement.(Statement)
		if !ok || key != "body" {
			return mismatch
		}
		parent.Body[index] = stmt
	case *Block:
		stmt, ok := replacement.(Statement)
		if !ok || key != "body" {
			return mismatch
		}
		parent.Body[index] = stmt
	case *ElementNode:
		switch key {
		case "children":
			stmt, ok := replacement.(Statement)
			if !ok {
				return mismatch
			}
			parent.Children[index] = stmt
		case "attributes":
			attr, ok := replacement.(*AttrNode)
			if !ok {
				return mismatch
			}
			parent.Attributes[index] = attr
		case "modifiers":
			mod, ok := replacement.(*ElementModifierStatement)
			if !ok {
				return mismatch
			}
			parent.Modifiers[index] = mod
		default:
			return mismatch
		}
	case *AttrNode:
		value, ok := replacement.(AttrValue)
		if !ok || key != "value" {
			return mismatch
		}
		parent.Value = value
	case *ConcatStatement:
		part, ok := replacement.(ConcatPart)
		if !ok || key != "parts" {
			return mismatch
		}
		parent.Parts[index] = part
	default:
		return mismatch
	}
	return nil
}

// Visitor is called for every node in depth-first order.
// It may call Path.Replace; traversal continues into the replacement.
type Visitor func(path *Path) error

// Walk traverses the tree rooted at root.
func Walk(root Node, visit Visitor) error {
	return walk(&Path{Node: root, Index: -1}, visit)
}

func walk(path *Path, visit Visitor) error {
	if err := visit(path); err != nil {
		return err
	}
	for _, e := range edges(path.Node) {
		child := &Path{Node: e.node, Parent: path, Key: e.key, Index: e.index}
		if err := walk(child, visit); err != nil {
			return err
		}
	}
	return nil
}

// Children returns the direct children of n in source order of their fields.
func Children(n Node) []Node {
	es := edges(n)
	nodes := make([]Node, 0, len(es))
	for _, e := range es {
		nodes = append(nodes, e.node)
	}
	return nodes
}

type edge struct {
	key   string
	index int
	node  Node
}

func edges(n Node) []edge {
	var es []edge
	add := func(key string, index int, child Node) {
		es = append(es, edge{key: key, index: index, node: child})
	}
	addCall := func(path Expression, params []Expression, hash *Hash) {
		if path != nil {
			add("path", -1, path)
		}
		for i, param := range params {
			add("params", i, param)
		}
		if hash != nil {
			add("hash", -1, hash)
		}
	}

	switch n := n.(type) {
	case *Template:
		for i, s := range n.Body {
			add("body", i, s)
		}
	case *Block:
		for i, s := range n.Body {
			add("body", i, s)
		}
	case *ElementNode:
		for i, a := range n.Attributes {
			add("attributes", i, a)
		}
		for i, m := range n.Modifiers {
			add("modifiers", i, m)
		}
		for i, c := range n.Comments {
			add("comments", i, c)
		}
		for i, c := range n.Children {
			add("children", i, c)
		}
	case *AttrNode:
		if n.Value != nil {
			add("value", -1, n.Value)
		}
	case *ConcatStatement:
		for i, part := range n.Parts {
			add("parts", i, part)
		}
	case *MustacheStatement:
		addCall(n.Path, n.Params, n.Hash)
	case *BlockStatement:
		addCall(n.Path, n.Params, n.Hash)
		if n.Program != nil {
			add("program", -1, n.Program)
		}
		if n.Inverse != nil {
			add("inverse", -1, n.Inverse)
		}
	case *ElementModifierStatement:
		addCall(n.Path, n.Params, n.Hash)
	case *SubExpression:
		addCall(n.Path, n.Params, n.Hash)
	case *Hash:
		for i, pair := range n.Pairs {
			add("pairs", i, pair)
		}
	case *HashPair:
		if n.Value != nil {
			add("value", -1, n.Value)
		}
	}
	return es
}
