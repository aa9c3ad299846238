/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package template

// Builders create synthetic nodes. Every node they return carries the
// explicit location it is given and no source text, so the printer
// renders it from its fields.

// Loc returns a synthetic location.
func Loc(startLine, startColumn, endLine, endColumn int) SourceLocation {
	return SyntheticLoc(
		Position{Line: startLine, Column: startColumn},
		Position{Line: endLine, Column: endColumn},
	)
}

// Attr builds an attribute, argument or ...attributes node.
func Attr(name string, value AttrValue, loc SourceLocation) *AttrNode {
	return &AttrNode{Name: name, Value: value, Location: loc}
}

// Text builds a text node.
func Text(chars string, loc SourceLocation) *TextNode {
	return &TextNode{Chars: chars, Location: loc}
}

// PathExpr builds a path expression.
func PathExpr(original string, loc SourceLocation) *PathExpression {
	return &PathExpression{Original: original, Location: loc}
}

// ElementModifier builds a modifier for an opening tag.
func ElementModifier(path Expression, params []Expression, hash *Hash, strip StripFlags, loc SourceLocation) *ElementModifierStatement {
	return &ElementModifierStatement{Path: path, Params: params, Hash: hash, Strip: strip, Location: loc}
}

// MustacheComment builds a `{{! }}` comment, or `{{!-- --}}` when long is set.
func MustacheComment(value string, long bool, loc SourceLocation) *MustacheCommentStatement {
	return &MustacheCommentStatement{Value: value, Long: long, Location: loc}
}

// Pair builds a hash pair.
func Pair(key string, value Expression, loc SourceLocation) *HashPair {
	return &HashPair{Key: key, Value: value, Location: loc}
}

// NewHash builds a hash from pairs.
func NewHash(pairs []*HashPair, loc SourceLocation) *Hash {
	return &Hash{Pairs: pairs, Location: loc}
}

// ElementParts are the constituents of an element.
type ElementParts struct {
	Attributes  []*AttrNode
	Modifiers   []*ElementModifierStatement
	Comments    []*MustacheCommentStatement
	BlockParams []string
	Children    []Statement
	SelfClosing bool
}

// Element builds an element from its parts.
func Element(tag string, parts ElementParts, loc SourceLocation) *ElementNode {
	return &ElementNode{
		Tag:         tag,
		SelfClosing: parts.SelfClosing,
		Attributes:  parts.Attributes,
		Modifiers:   parts.Modifiers,
		Comments:    parts.Comments,
		BlockParams: parts.BlockParams,
		Children:    parts.Children,
		Location:    loc,
	}
}

// MustacheWithHash builds a copy of m whose hash is replaced.
func MustacheWithHash(m *MustacheStatement, hash *Hash, loc SourceLocation) *MustacheStatement {
	return &MustacheStatement{
		Path:     m.Path,
		Params:   m.Params,
		Hash:     hash,
		Trusting: m.Trusting,
		Strip:    m.Strip,
		Location: loc,
	}
}

// BlockWithHash builds a copy of bs whose hash is replaced. The program,
// inverse and original else/close tags are kept.
func BlockWithHash(bs *BlockStatement, hash *Hash, loc SourceLocation) *BlockStatement {
	return &BlockStatement{
		Path:        bs.Path,
		Params:      bs.Params,
		Hash:        hash,
		Program:     bs.Program,
		Inverse:     bs.Inverse,
		OpenStrip:   bs.OpenStrip,
		CloseStrip:  bs.CloseStrip,
		Chained:     bs.Chained,
		Location:    loc,
		elseSource:  bs.elseSource,
		closeSource: bs.closeSource,
	}
}
