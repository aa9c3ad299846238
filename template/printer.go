/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package template

import (
	"slices"
	"strconv"
	"strings"
)

// Printer turns a syntax tree back into template source.
//
// Subtrees that still carry their parsed locations and contain no
// synthetic nodes are copied verbatim from the source, so untouched code
// keeps its exact formatting. Everything else is printed from node fields.
// The parts of an opening tag are emitted in order of their start
// positions, which is how rebuilt elements express their layout.
//
// A Printer remembers which nodes are pristine. Use a new one after the
// tree has been changed.
type Printer struct {
	source   string
	pristine map[Node]bool
}

// NewPrinter creates a printer for trees parsed from source.
func NewPrinter(source string) *Printer {
	return &Printer{source: source, pristine: make(map[Node]bool)}
}

// Print renders n as template source.
func Print(source string, n Node) string {
	return NewPrinter(source).Print(n)
}

// Print renders n as template source.
func (p *Printer) Print(n Node) string {
	var sb strings.Builder
	p.print(&sb, n)
	return sb.String()
}

// SourceFor returns the original source text of n.
// ok is false for synthetic nodes, which have none.
func (p *Printer) SourceFor(n Node) (string, bool) {
	start, end, ok := n.Loc().Offsets()
	if !ok || start > end || end > len(p.source) {
		return "", false
	}
	return p.source[start:end], true
}

// isPristine reports whether n and all its descendants can be copied from source.
func (p *Printer) isPristine(n Node) bool {
	if v, ok := p.pristine[n]; ok {
		return v
	}
	start, end, ok := n.Loc().Offsets()
	result := ok && start <= end && end <= len(p.source)
	if result {
		for _, child := range Children(n) {
			if !p.isPristine(child) {
				result = false
				break
			}
		}
	}
	p.pristine[n] = result
	return result
}

func (p *Printer) text(n Node) string {
	start, end, _ := n.Loc().Offsets()
	return p.source[start:end]
}

func (p *Printer) print(sb *strings.Builder, n Node) {
	if p.isPristine(n) {
		sb.WriteString(p.text(n))
		return
	}

	switch n := n.(type) {
	case *Template:
		p.printStatements(sb, n.Body)
	case *Block:
		p.printStatements(sb, n.Body)
	case *ElementNode:
		p.printElement(sb, n)
	case *AttrNode:
		p.printAttr(sb, n)
	case *TextNode:
		sb.WriteString(n.Chars)
	case *ConcatStatement:
		sb.WriteByte('"')
		for _, part := range n.Parts {
			if text, ok := part.(*TextNode); ok {
				sb.WriteString(text.Chars)
				continue
			}
			p.print(sb, part)
		}
		sb.WriteByte('"')
	case *MustacheStatement:
		opener, closer := "{{", "}}"
		if n.Trusting {
			opener, closer = "{{{", "}}}"
		}
		sb.WriteString(opener)
		if n.Strip.Open {
			sb.WriteByte('~')
		}
		p.printCall(sb, n.Path, n.Params, n.Hash)
		if n.Strip.Close {
			sb.WriteByte('~')
		}
		sb.WriteString(closer)
	case *BlockStatement:
		p.printBlock(sb, n)
	case *ElementModifierStatement:
		sb.WriteString("{{")
		if n.Strip.Open {
			sb.WriteByte('~')
		}
		p.printCall(sb, n.Path, n.Params, n.Hash)
		if n.Strip.Close {
			sb.WriteByte('~')
		}
		sb.WriteString("}}")
	case *MustacheCommentStatement:
		if n.Long {
			sb.WriteString("{{!--" + n.Value + "--}}")
		} else {
			sb.WriteString("{{!" + n.Value + "}}")
		}
	case *CommentStatement:
		sb.WriteString("<!--" + n.Value + "-->")
	case *PathExpression:
		sb.WriteString(n.Original)
	case *SubExpression:
		sb.WriteByte('(')
		p.printCall(sb, n.Path, n.Params, n.Hash)
		sb.WriteByte(')')
	case *Hash:
		for i, pair := range n.Pairs {
			if i > 0 {
				sb.WriteByte(' ')
			}
			p.print(sb, pair)
		}
	case *HashPair:
		sb.WriteString(n.Key)
		sb.WriteByte('=')
		p.print(sb, n.Value)
	case *StringLiteral:
		sb.WriteString(quote(n.Value))
	case *NumberLiteral:
		if n.Original != "" {
			sb.WriteString(n.Original)
		} else {
			sb.WriteString(strconv.FormatFloat(n.Value, 'f', -1, 64))
		}
	case *BooleanLiteral:
		sb.WriteString(strconv.FormatBool(n.Value))
	case *NullLiteral:
		sb.WriteString("null")
	case *UndefinedLiteral:
		sb.WriteString("undefined")
	}
}

func (p *Printer) printStatements(sb *strings.Builder, body []Statement) {
	for _, stmt := range body {
		p.print(sb, stmt)
	}
}

func (p *Printer) printCall(sb *strings.Builder, path Expression, params []Expression, hash *Hash) {
	p.print(sb, path)
	for _, param := range params {
		sb.WriteByte(' ')
		p.print(sb, param)
	}
	if hash != nil && len(hash.Pairs) > 0 {
		sb.WriteByte(' ')
		p.print(sb, hash)
	}
}

func (p *Printer) printAttr(sb *strings.Builder, a *AttrNode) {
	sb.WriteString(a.Name)
	if a.Value == nil {
		return
	}
	sb.WriteByte('=')
	if text, ok := a.Value.(*TextNode); ok && !p.isPristine(text) {
		sb.WriteString(quoteAttr(text.Chars))
		return
	}
	p.print(sb, a.Value)
}

func (p *Printer) printElement(sb *strings.Builder, el *ElementNode) {
	start, _, parsed := el.Loc().Offsets()
	if parsed && p.startTagPristine(el) {
		sb.WriteString(p.source[start:el.startTagEnd])
	} else {
		p.printStartTag(sb, el)
	}

	if el.SelfClosing || el.IsVoid() {
		return
	}
	p.printStatements(sb, el.Children)
	if parsed && el.endTag != "" {
		sb.WriteString(el.endTag)
		return
	}
	sb.WriteString("</" + el.Tag + ">")
}

func (p *Printer) startTagPristine(el *ElementNode) bool {
	for _, part := range TagParts(el) {
		if !p.isPristine(part) {
			return false
		}
	}
	return true
}

func (p *Printer) printStartTag(sb *strings.Builder, el *ElementNode) {
	sb.WriteString("<" + el.Tag)
	for _, part := range TagParts(el) {
		sb.WriteByte(' ')
		p.print(sb, part)
	}
	if len(el.BlockParams) > 0 {
		sb.WriteString(" as |" + strings.Join(el.BlockParams, " ") + "|")
	}
	if el.SelfClosing {
		sb.WriteString(" />")
		return
	}
	sb.WriteByte('>')
}

func (p *Printer) printBlock(sb *strings.Builder, bs *BlockStatement) {
	start, _, parsed := bs.Loc().Offsets()
	if parsed && bs.openEnd > start && p.blockOpenPristine(bs) {
		sb.WriteString(p.source[start:bs.openEnd])
	} else {
		p.printBlockOpen(sb, bs)
	}

	if bs.Program != nil {
		p.printStatements(sb, bs.Program.Body)
	}
	if bs.Inverse != nil {
		if !bs.Inverse.Chained {
			if bs.elseSource != "" {
				sb.WriteString(bs.elseSource)
			} else {
				sb.WriteString("{{else}}")
			}
		}
		p.printStatements(sb, bs.Inverse.Body)
	}
	if bs.Chained {
		return
	}

	if bs.closeSource != "" {
		sb.WriteString(bs.closeSource)
		return
	}
	sb.WriteString("{{/")
	p.print(sb, bs.Path)
	sb.WriteString("}}")
}

func (p *Printer) blockOpenPristine(bs *BlockStatement) bool {
	if !p.isPristine(bs.Path) {
		return false
	}
	for _, param := range bs.Params {
		if !p.isPristine(param) {
			return false
		}
	}
	return bs.Hash == nil || p.isPristine(bs.Hash)
}

func (p *Printer) printBlockOpen(sb *strings.Builder, bs *BlockStatement) {
	sb.WriteString("{{")
	if bs.OpenStrip.Open {
		sb.WriteByte('~')
	}
	if bs.Chained {
		sb.WriteString("else ")
	} else {
		sb.WriteByte('#')
	}
	p.printCall(sb, bs.Path, bs.Params, bs.Hash)
	if bs.Program != nil && len(bs.Program.BlockParams) > 0 {
		sb.WriteString(" as |" + strings.Join(bs.Program.BlockParams, " ") + "|")
	}
	if bs.OpenStrip.Close {
		sb.WriteByte('~')
	}
	sb.WriteString("}}")
}

// TagParts returns the attributes, modifiers and comments of an opening tag
// ordered by start position.
func TagParts(el *ElementNode) []Node {
	parts := make([]Node, 0, len(el.Attributes)+len(el.Modifiers)+len(el.Comments))
	for _, a := range el.Attributes {
		parts = append(parts, a)
	}
	for _, m := range el.Modifiers {
		parts = append(parts, m)
	}
	for _, c := range el.Comments {
		parts = append(parts, c)
	}
	slices.SortStableFunc(parts, func(a, b Node) int {
		as, bs := a.Loc().Start, b.Loc().Start
		switch {
		case as.Before(bs):
			return -1
		case bs.Before(as):
			return 1
		}
		return 0
	})
	return parts
}

// quoteAttr quotes an attribute value, preferring double quotes.
func quoteAttr(s string) string {
	if strings.Contains(s, `"`) && !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	return `"` + strings.ReplaceAll(s, `"`, "&quot;") + `"`
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
