/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ordering

import (
	"cmp"
	"strings"
	"unicode"

	"bennypowers.dev/attrorder/template"
)

// Source renders host nodes, synthetic or not.
// *template.Printer implements it.
type Source interface {
	Print(n template.Node) string
}

// Token is one part of an opening tag or one hash pair.
type Token struct {
	// Category is the token's classification.
	Category Category
	// Name is the string compared when alphabetizing.
	Name string
	// Source is the rendered token text.
	Source string
	// Line and Column locate the token's start.
	Line   int
	Column int
	// Node is the host node the token was made from.
	Node template.Node

	index int
}

// Position returns line × column, the proxy for lexical order within a node.
// Distinct locations can collide; see compareSource for the tie-break.
func (t *Token) Position() int {
	return t.Line * t.Column
}

// Synthetic reports whether the token has no genuine source position.
func (t *Token) Synthetic() bool {
	return t.Node.Loc().IsSynthetic()
}

func (t *Token) normalizedName() string {
	return normalize(t.Name)
}

// normalize strips leading non-letters, so "@foo" and "...foo" compare as "foo".
func normalize(name string) string {
	return strings.TrimLeftFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}

// compareSource orders tokens by position, then line, column and sequence index.
func compareSource(a, b *Token) int {
	return cmp.Or(
		cmp.Compare(a.Position(), b.Position()),
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Column, b.Column),
		cmp.Compare(a.index, b.index),
	)
}

// TokensFromElement converts the attributes, modifiers and comments of an
// opening tag into tokens, in the order they appear.
func TokensFromElement(el *template.ElementNode, src Source) []*Token {
	parts := template.TagParts(el)
	tokens := make([]*Token, 0, len(parts))
	for i, part := range parts {
		tokens = append(tokens, newToken(part, i, src))
	}
	return tokens
}

// TokensFromHash converts the pairs of a hash into tokens.
func TokensFromHash(hash *template.Hash, src Source) []*Token {
	if hash == nil {
		return nil
	}
	tokens := make([]*Token, 0, len(hash.Pairs))
	for i, pair := range hash.Pairs {
		tokens = append(tokens, newToken(pair, i, src))
	}
	return tokens
}

func newToken(node template.Node, index int, src Source) *Token {
	start := node.Loc().Start
	return &Token{
		Category: Classify(node),
		Name:     tokenName(node),
		Source:   src.Print(node),
		Line:     start.Line,
		Column:   start.Column,
		Node:     node,
		index:    index,
	}
}

func tokenName(node template.Node) string {
	switch n := node.(type) {
	case *template.AttrNode:
		return n.Name
	case *template.HashPair:
		return n.Key
	case *template.ElementModifierStatement:
		if path, ok := n.Path.(*template.PathExpression); ok {
			return path.Original
		}
	case *template.MustacheCommentStatement:
		return n.Value
	}
	return ""
}
