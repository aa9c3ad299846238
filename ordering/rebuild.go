/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ordering

import (
	"slices"

	"github.com/mattn/go-runewidth"

	"bennypowers.dev/attrorder/template"
)

// cursor hands out synthetic locations left to right on one line,
// separating tokens by a single space.
type cursor struct {
	line   int
	column int
}

func (c *cursor) place(text string) template.SourceLocation {
	width := runewidth.StringWidth(text)
	loc := template.Loc(c.line, c.column, c.line, c.column+width)
	c.column += width + 1
	return loc
}

func (c *cursor) skip(text string) {
	c.column += runewidth.StringWidth(text) + 1
}

func syntheticCopy(loc template.SourceLocation) template.SourceLocation {
	return template.Loc(loc.Start.Line, loc.Start.Column, loc.End.Line, loc.End.Column)
}

// RebuildElement returns a new element whose opening tag holds sorted.
// Tokens are placed on the element's first line starting after `<tag `.
// Tag, block params, children and self-closing state are kept.
func RebuildElement(el *template.ElementNode, sorted []*Token) *template.ElementNode {
	cur := &cursor{line: el.Loc().Start.Line, column: len(el.Tag) + 2}
	parts := template.ElementParts{
		BlockParams: slices.Clone(el.BlockParams),
		Children:    slices.Clone(el.Children),
		SelfClosing: el.SelfClosing,
	}

	for _, t := range sorted {
		loc := cur.place(t.Source)
		switch t.Category.SuperCategory() {
		case Attributes:
			n := t.Node.(*template.AttrNode)
			parts.Attributes = append(parts.Attributes, template.Attr(n.Name, n.Value, loc))
		case Modifiers:
			n := t.Node.(*template.ElementModifierStatement)
			parts.Modifiers = append(parts.Modifiers, template.ElementModifier(n.Path, n.Params, n.Hash, n.Strip, loc))
		case Comments:
			n := t.Node.(*template.MustacheCommentStatement)
			parts.Comments = append(parts.Comments, template.MustacheComment(n.Value, n.Long, loc))
		}
	}

	return template.Element(el.Tag, parts, syntheticCopy(el.Loc()))
}

// RebuildStatement returns a new mustache or block statement whose hash
// holds sorted. Pairs are placed after the callee and positional params.
func RebuildStatement(node template.Node, sorted []*Token, src Source) template.Node {
	switch n := node.(type) {
	case *template.MustacheStatement:
		hash := rebuildHash(n.Path, n.Params, n.Loc().Start.Line, sorted, src)
		return template.MustacheWithHash(n, hash, syntheticCopy(n.Loc()))
	case *template.BlockStatement:
		hash := rebuildHash(n.Path, n.Params, n.Loc().Start.Line, sorted, src)
		return template.BlockWithHash(n, hash, syntheticCopy(n.Loc()))
	}
	return node
}

func rebuildHash(path template.Expression, params []template.Expression, line int, sorted []*Token, src Source) *template.Hash {
	callee := src.Print(path)
	cur := &cursor{line: line, column: len(callee) + 2}
	for _, param := range params {
		cur.skip(src.Print(param))
	}

	start := cur.column
	pairs := make([]*template.HashPair, 0, len(sorted))
	for _, t := range sorted {
		pair, ok := t.Node.(*template.HashPair)
		if !ok {
			continue
		}
		pairs = append(pairs, template.Pair(pair.Key, pair.Value, cur.place(t.Source)))
	}
	return template.NewHash(pairs, template.Loc(line, start, line, max(start, cur.column-1)))
}
