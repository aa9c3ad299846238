/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package template

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseOptions configures parsing.
type ParseOptions struct {
	// StartLine is the line of the first byte of source. Defaults to 1.
	StartLine int

	// StartColumn is the column of the first byte of source.
	// Used for templates embedded in a larger file.
	StartColumn int
}

// Parse parses Glimmer template source.
func Parse(source string) (*Template, error) {
	return ParseWithOptions(source, ParseOptions{})
}

// ParseWithOptions parses Glimmer template source with position offsets.
func ParseWithOptions(source string, opts ParseOptions) (*Template, error) {
	line := opts.StartLine
	if line <= 0 {
		line = 1
	}
	p := &parser{src: source, line: line, col: opts.StartColumn}
	start := p.position()

	body, err := p.parseStatements(scope{kind: scopeTemplate})
	if err != nil {
		return nil, err
	}

	return &Template{Body: body, Location: p.loc(start, 0)}, nil
}

type scopeKind int

const (
	scopeTemplate scopeKind = iota
	scopeElement
	scopeBlock
)

type scope struct {
	kind scopeKind
	tag  string
}

type mustacheKind int

const (
	notMustache mustacheKind = iota
	mustacheOpen
	mustacheTriple
	mustacheBlock
	mustacheClose
	mustacheElse
	mustacheComment
)

// rawTextElements hold text that is not parsed for markup or mustaches.
var rawTextElements = map[string]bool{
	"script": true,
	"style":  true,
}

type parser struct {
	src  string
	pos  int
	line int
	col  int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	return p.peekAt(0)
}

func (p *parser) peekAt(n int) byte {
	if p.pos+n >= len(p.src) {
		return 0
	}
	return p.src[p.pos+n]
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

// advance moves forward n bytes, tracking line and column.
// Columns count runes, not bytes.
func (p *parser) advance(n int) {
	end := min(p.pos+n, len(p.src))
	for ; p.pos < end; p.pos++ {
		c := p.src[p.pos]
		switch {
		case c == '\n':
			p.line++
			p.col = 0
		case c&0xC0 != 0x80:
			p.col++
		}
	}
}

func (p *parser) position() Position {
	return Position{Line: p.line, Column: p.col}
}

func (p *parser) loc(start Position, startOffset int) SourceLocation {
	return sourceLoc(start, p.position(), startOffset, p.pos)
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Line: p.line, Column: p.col, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.advance(1)
	}
}

func (p *parser) expect(s string) error {
	if !p.hasPrefix(s) {
		if p.eof() {
			return p.errorf("expected %q, found end of input", s)
		}
		return p.errorf("expected %q, found %q", s, p.peek())
	}
	p.advance(len(s))
	return nil
}

// peekMustache classifies the mustache at the current position, if any.
func (p *parser) peekMustache() mustacheKind {
	if !p.hasPrefix("{{") {
		return notMustache
	}
	i := p.pos + 2
	if i < len(p.src) && p.src[i] == '{' {
		return mustacheTriple
	}
	if i < len(p.src) && p.src[i] == '~' {
		i++
	}
	if i >= len(p.src) {
		return mustacheOpen
	}
	switch p.src[i] {
	case '!':
		return mustacheComment
	case '#':
		return mustacheBlock
	case '/':
		return mustacheClose
	}
	for i < len(p.src) && isSpace(p.src[i]) {
		i++
	}
	if strings.HasPrefix(p.src[i:], "else") && (i+4 >= len(p.src) || !isIDChar(p.src[i+4])) {
		return mustacheElse
	}
	return mustacheOpen
}

func (p *parser) parseStatements(sc scope) ([]Statement, error) {
	var body []Statement
	for !p.eof() {
		var (
			stmt Statement
			err  error
		)
		switch p.peekMustache() {
		case mustacheClose, mustacheElse:
			switch sc.kind {
			case scopeBlock:
				return body, nil
			case scopeElement:
				return nil, p.errorf("unclosed element <%s>", sc.tag)
			default:
				return nil, p.errorf("unexpected block terminator outside of a block")
			}
		case mustacheComment:
			stmt, err = p.parseMustacheComment()
		case mustacheBlock:
			stmt, err = p.parseBlock()
		case mustacheOpen, mustacheTriple:
			stmt, err = p.parseMustache()
		default:
			switch {
			case p.hasPrefix("<!--"):
				stmt, err = p.parseHTMLComment()
			case p.hasPrefix("</"):
				if sc.kind == scopeElement {
					return body, nil
				}
				return nil, p.errorf("unexpected closing tag")
			case p.peek() == '<' && isTagStart(p.peekAt(1)):
				stmt, err = p.parseElement()
			default:
				stmt = p.parseText()
			}
		}
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	switch sc.kind {
	case scopeElement:
		return nil, p.errorf("unclosed element <%s>", sc.tag)
	case scopeBlock:
		return nil, p.errorf("unclosed block")
	}
	return body, nil
}

func (p *parser) parseText() *TextNode {
	start, off := p.position(), p.pos
	for !p.eof() {
		if p.hasPrefix("{{") {
			break
		}
		if p.peek() == '<' && (p.hasPrefix("<!--") || p.hasPrefix("</") || isTagStart(p.peekAt(1))) {
			break
		}
		p.advance(1)
	}
	return &TextNode{Chars: p.src[off:p.pos], Location: p.loc(start, off)}
}

func (p *parser) parseHTMLComment() (*CommentStatement, error) {
	start, off := p.position(), p.pos
	p.advance(len("<!--"))
	end := strings.Index(p.src[p.pos:], "-->")
	if end < 0 {
		return nil, p.errorf("unclosed HTML comment")
	}
	value := p.src[p.pos : p.pos+end]
	p.advance(end + len("-->"))
	return &CommentStatement{Value: value, Location: p.loc(start, off)}, nil
}

func (p *parser) parseMustacheComment() (*MustacheCommentStatement, error) {
	start, off := p.position(), p.pos
	p.advance(2)
	if p.peek() == '~' {
		p.advance(1)
	}
	p.advance(1) // '!'

	long := p.hasPrefix("--")
	terminators := []string{"}}"}
	if long {
		p.advance(2)
		terminators = []string{"--}}", "--~}}"}
	}

	end, term := -1, ""
	for _, t := range terminators {
		if i := strings.Index(p.src[p.pos:], t); i >= 0 && (end < 0 || i < end) {
			end, term = i, t
		}
	}
	if end < 0 {
		return nil, p.errorf("unclosed comment")
	}

	value := p.src[p.pos : p.pos+end]
	if !long {
		value = strings.TrimSuffix(value, "~")
	}
	p.advance(end + len(term))
	return &MustacheCommentStatement{Value: value, Long: long, Location: p.loc(start, off)}, nil
}

func (p *parser) parseMustache() (*MustacheStatement, error) {
	start, off := p.position(), p.pos
	p.advance(2)

	m := &MustacheStatement{}
	if p.peek() == '{' {
		m.Trusting = true
		p.advance(1)
	}
	if p.peek() == '~' {
		m.Strip.Open = true
		p.advance(1)
	}

	path, params, hash, _, err := p.parseCall(false)
	if err != nil {
		return nil, err
	}
	m.Path, m.Params, m.Hash = path, params, hash

	if m.Strip.Close, err = p.parseMustacheClose(m.Trusting); err != nil {
		return nil, err
	}
	m.Location = p.loc(start, off)
	return m, nil
}

// parseMustacheClose consumes `}}` (or `}}}`) with optional `~`,
// reporting whether whitespace control was present.
func (p *parser) parseMustacheClose(trusting bool) (bool, error) {
	p.skipSpace()
	strip := false
	if p.peek() == '~' {
		strip = true
		p.advance(1)
	}
	closer := "}}"
	if trusting {
		closer = "}}}"
	}
	return strip, p.expect(closer)
}

// parseCall parses `path params... key=value...` up to a closing
// `}}`, `~}}` or `)`.
func (p *parser) parseCall(allowBlockParams bool) (Expression, []Expression, *Hash, []string, error) {
	p.skipSpace()
	path, err := p.parseExpression()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	var (
		params      []Expression
		hash        *Hash
		blockParams []string
	)
	for {
		p.skipSpace()
		if p.eof() {
			return nil, nil, nil, nil, p.errorf("unexpected end of input in mustache")
		}
		if p.atCallEnd() {
			break
		}
		if allowBlockParams && p.atBlockParams() {
			if blockParams, err = p.parseBlockParams(); err != nil {
				return nil, nil, nil, nil, err
			}
			continue
		}
		if blockParams != nil {
			return nil, nil, nil, nil, p.errorf("block params must come last")
		}
		if p.atHashPair() {
			if hash != nil {
				return nil, nil, nil, nil, p.errorf("unexpected %q after named arguments", p.peek())
			}
			if hash, err = p.parseHash(); err != nil {
				return nil, nil, nil, nil, err
			}
			continue
		}
		if hash != nil {
			return nil, nil, nil, nil, p.errorf("positional params must come before named arguments")
		}
		param, err := p.parseExpression()
		if err != nil {
			return nil, nil, nil, nil, err
		}
		params = append(params, param)
	}
	return path, params, hash, blockParams, nil
}

func (p *parser) atCallEnd() bool {
	c := p.peek()
	return c == '}' || c == ')' || (c == '~' && p.peekAt(1) == '}')
}

func (p *parser) atHashPair() bool {
	i := p.pos
	for i < len(p.src) && isIDChar(p.src[i]) {
		i++
	}
	return i > p.pos && i < len(p.src) && p.src[i] == '='
}

func (p *parser) atBlockParams() bool {
	if !p.hasPrefix("as") || !isSpace(p.peekAt(2)) {
		return false
	}
	i := p.pos + 2
	for i < len(p.src) && isSpace(p.src[i]) {
		i++
	}
	return i < len(p.src) && p.src[i] == '|'
}

func (p *parser) parseBlockParams() ([]string, error) {
	p.advance(2)
	p.skipSpace()
	if err := p.expect("|"); err != nil {
		return nil, err
	}
	params := []string{}
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("unclosed block params")
		}
		if p.peek() == '|' {
			p.advance(1)
			return params, nil
		}
		nameStart := p.pos
		for !p.eof() && !isSpace(p.peek()) && p.peek() != '|' {
			p.advance(1)
		}
		params = append(params, p.src[nameStart:p.pos])
	}
}

func (p *parser) parseHash() (*Hash, error) {
	start, off := p.position(), p.pos
	end, endOff := start, off
	hash := &Hash{}
	for p.atHashPair() {
		pair, err := p.parseHashPair()
		if err != nil {
			return nil, err
		}
		hash.Pairs = append(hash.Pairs, pair)
		end, endOff = p.position(), p.pos
		p.skipSpace()
	}
	hash.Location = sourceLoc(start, end, off, endOff)
	return hash, nil
}

func (p *parser) parseHashPair() (*HashPair, error) {
	start, off := p.position(), p.pos
	keyStart := p.pos
	for isIDChar(p.peek()) {
		p.advance(1)
	}
	key := p.src[keyStart:p.pos]
	p.advance(1) // '='
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &HashPair{Key: key, Value: value, Location: p.loc(start, off)}, nil
}

func (p *parser) parseExpression() (Expression, error) {
	c := p.peek()
	switch {
	case c == '(':
		return p.parseSubExpression()
	case c == '"' || c == '\'':
		return p.parseString()
	case isDigit(c) || (c == '-' && isDigit(p.peekAt(1))):
		return p.parseNumber()
	default:
		return p.parsePath()
	}
}

func (p *parser) parseSubExpression() (*SubExpression, error) {
	start, off := p.position(), p.pos
	p.advance(1)
	path, params, hash, _, err := p.parseCall(false)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return &SubExpression{Path: path, Params: params, Hash: hash, Location: p.loc(start, off)}, nil
}

func (p *parser) parseString() (*StringLiteral, error) {
	start, off := p.position(), p.pos
	quote := p.peek()
	p.advance(1)

	var sb strings.Builder
	for {
		if p.eof() {
			return nil, p.errorf("unterminated string literal")
		}
		c := p.peek()
		if c == '\\' && p.peekAt(1) == quote {
			sb.WriteByte(quote)
			p.advance(2)
			continue
		}
		if c == quote {
			p.advance(1)
			break
		}
		sb.WriteByte(c)
		p.advance(1)
	}
	return &StringLiteral{Value: sb.String(), Location: p.loc(start, off)}, nil
}

func (p *parser) parseNumber() (*NumberLiteral, error) {
	start, off := p.position(), p.pos
	if p.peek() == '-' {
		p.advance(1)
	}
	for isDigit(p.peek()) {
		p.advance(1)
	}
	if p.peek() == '.' && isDigit(p.peekAt(1)) {
		p.advance(1)
		for isDigit(p.peek()) {
			p.advance(1)
		}
	}
	original := p.src[off:p.pos]
	value, err := strconv.ParseFloat(original, 64)
	if err != nil {
		return nil, p.errorf("invalid number %q", original)
	}
	return &NumberLiteral{Value: value, Original: original, Location: p.loc(start, off)}, nil
}

func (p *parser) parsePath() (Expression, error) {
	start, off := p.position(), p.pos
	for isPathChar(p.peek()) {
		p.advance(1)
	}
	original := p.src[off:p.pos]
	if original == "" {
		if p.eof() {
			return nil, p.errorf("unexpected end of input in mustache")
		}
		return nil, p.errorf("unexpected %q in mustache", p.peek())
	}

	loc := p.loc(start, off)
	switch original {
	case "true", "false":
		return &BooleanLiteral{Value: original == "true", Location: loc}, nil
	case "null":
		return &NullLiteral{Location: loc}, nil
	case "undefined":
		return &UndefinedLiteral{Location: loc}, nil
	}
	return &PathExpression{Original: original, Location: loc}, nil
}

func (p *parser) parseElement() (*ElementNode, error) {
	start, off := p.position(), p.pos
	p.advance(1)

	tagStart := p.pos
	for !p.eof() && !isSpace(p.peek()) && p.peek() != '>' && !p.hasPrefix("/>") && !p.hasPrefix("{{") {
		p.advance(1)
	}
	el := &ElementNode{Tag: p.src[tagStart:p.pos]}

	if err := p.parseStartTag(el); err != nil {
		return nil, err
	}
	el.startTagEnd = p.pos

	if el.SelfClosing || el.IsVoid() {
		el.Location = p.loc(start, off)
		return el, nil
	}

	if rawTextElements[el.Tag] {
		textStart, textOff := p.position(), p.pos
		end := strings.Index(p.src[p.pos:], "</"+el.Tag)
		if end < 0 {
			return nil, p.errorf("unclosed element <%s>", el.Tag)
		}
		p.advance(end)
		if end > 0 {
			el.Children = []Statement{&TextNode{Chars: p.src[textOff:p.pos], Location: p.loc(textStart, textOff)}}
		}
	} else {
		children, err := p.parseStatements(scope{kind: scopeElement, tag: el.Tag})
		if err != nil {
			return nil, err
		}
		el.Children = children
	}

	closeStart := p.pos
	if !p.hasPrefix("</" + el.Tag) {
		return nil, p.errorf("closing tag did not match last open tag <%s>", el.Tag)
	}
	p.advance(len("</") + len(el.Tag))
	p.skipSpace()
	if p.peek() != '>' {
		return nil, p.errorf("closing tag did not match last open tag <%s>", el.Tag)
	}
	p.advance(1)

	el.endTag = p.src[closeStart:p.pos]
	el.Location = p.loc(start, off)
	return el, nil
}

func (p *parser) parseStartTag(el *ElementNode) error {
	for {
		p.skipSpace()
		switch {
		case p.eof():
			return p.errorf("unclosed opening tag <%s>", el.Tag)
		case p.hasPrefix("/>"):
			p.advance(2)
			el.SelfClosing = true
			return nil
		case p.peek() == '>':
			p.advance(1)
			return nil
		case p.peekMustache() == mustacheComment:
			comment, err := p.parseMustacheComment()
			if err != nil {
				return err
			}
			el.Comments = append(el.Comments, comment)
		case p.hasPrefix("{{"):
			modifier, err := p.parseModifier()
			if err != nil {
				return err
			}
			el.Modifiers = append(el.Modifiers, modifier)
		case p.atBlockParams():
			params, err := p.parseBlockParams()
			if err != nil {
				return err
			}
			el.BlockParams = params
		default:
			attr, err := p.parseAttribute()
			if err != nil {
				return err
			}
			el.Attributes = append(el.Attributes, attr)
		}
	}
}

func (p *parser) parseModifier() (*ElementModifierStatement, error) {
	start, off := p.position(), p.pos
	mod := &ElementModifierStatement{}
	p.advance(2)
	if p.peek() == '~' {
		mod.Strip.Open = true
		p.advance(1)
	}
	var err error
	if mod.Path, mod.Params, mod.Hash, _, err = p.parseCall(false); err != nil {
		return nil, err
	}
	if mod.Strip.Close, err = p.parseMustacheClose(false); err != nil {
		return nil, err
	}
	mod.Location = p.loc(start, off)
	return mod, nil
}

func (p *parser) parseAttribute() (*AttrNode, error) {
	start, off := p.position(), p.pos
	for !p.eof() {
		c := p.peek()
		if isSpace(c) || c == '=' || c == '>' || p.hasPrefix("/>") || p.hasPrefix("{{") {
			break
		}
		p.advance(1)
	}
	name := p.src[off:p.pos]
	if name == "" {
		return nil, p.errorf("unexpected %q in opening tag", p.peek())
	}

	attr := &AttrNode{Name: name}
	if p.peek() == '=' {
		p.advance(1)
		value, err := p.parseAttrValue()
		if err != nil {
			return nil, err
		}
		attr.Value = value
	}
	attr.Location = p.loc(start, off)
	return attr, nil
}

func (p *parser) parseAttrValue() (AttrValue, error) {
	c := p.peek()
	switch {
	case c == '"' || c == '\'':
		return p.parseQuotedValue(c)
	case p.peekMustache() == mustacheComment:
		return nil, p.errorf("comments are not allowed as attribute values")
	case p.hasPrefix("{{"):
		return p.parseMustache()
	}

	start, off := p.position(), p.pos
	for !p.eof() && !isSpace(p.peek()) && p.peek() != '>' && !p.hasPrefix("/>") {
		p.advance(1)
	}
	if p.pos == off {
		return nil, p.errorf("missing attribute value")
	}
	return &TextNode{Chars: p.src[off:p.pos], Location: p.loc(start, off)}, nil
}

func (p *parser) parseQuotedValue(quote byte) (AttrValue, error) {
	start, off := p.position(), p.pos
	p.advance(1)

	var parts []ConcatPart
	dynamic := false
	for {
		if p.eof() {
			return nil, p.errorf("unterminated attribute value")
		}
		if p.peek() == quote {
			break
		}
		if p.hasPrefix("{{") {
			if p.peekMustache() == mustacheComment {
				return nil, p.errorf("comments are not allowed in attribute values")
			}
			m, err := p.parseMustache()
			if err != nil {
				return nil, err
			}
			parts = append(parts, m)
			dynamic = true
			continue
		}
		textStart, textOff := p.position(), p.pos
		for !p.eof() && p.peek() != quote && !p.hasPrefix("{{") {
			p.advance(1)
		}
		parts = append(parts, &TextNode{Chars: p.src[textOff:p.pos], Location: p.loc(textStart, textOff)})
	}
	p.advance(1)
	loc := p.loc(start, off)

	if !dynamic {
		chars := ""
		if len(parts) == 1 {
			chars = parts[0].(*TextNode).Chars
		}
		return &TextNode{Chars: chars, Location: loc}, nil
	}
	return &ConcatStatement{Parts: parts, Location: loc}, nil
}

func (p *parser) parseBlock() (*BlockStatement, error) {
	start, off := p.position(), p.pos
	p.advance(2)

	bs := &BlockStatement{}
	if p.peek() == '~' {
		bs.OpenStrip.Open = true
		p.advance(1)
	}
	p.advance(1) // '#'

	if err := p.parseBlockOpen(bs); err != nil {
		return nil, err
	}
	if err := p.parseBlockBody(bs); err != nil {
		return nil, err
	}

	if p.peekMustache() != mustacheClose {
		return nil, p.errorf("unclosed block")
	}
	closeStart := p.pos
	p.advance(2)
	if p.peek() == '~' {
		bs.CloseStrip.Open = true
		p.advance(1)
	}
	p.advance(1) // '/'
	p.skipSpace()
	nameStart := p.pos
	for isPathChar(p.peek()) {
		p.advance(1)
	}
	name := p.src[nameStart:p.pos]
	if path, ok := bs.Path.(*PathExpression); ok && path.Original != name {
		return nil, p.errorf("{{/%s}} does not match {{#%s}}", name, path.Original)
	}

	var err error
	if bs.CloseStrip.Close, err = p.parseMustacheClose(false); err != nil {
		return nil, err
	}
	bs.closeSource = p.src[closeStart:p.pos]
	bs.Location = p.loc(start, off)
	return bs, nil
}

func (p *parser) parseBlockOpen(bs *BlockStatement) error {
	path, params, hash, blockParams, err := p.parseCall(true)
	if err != nil {
		return err
	}
	bs.Path, bs.Params, bs.Hash = path, params, hash

	if bs.OpenStrip.Close, err = p.parseMustacheClose(false); err != nil {
		return err
	}
	bs.openEnd = p.pos
	bs.Program = &Block{BlockParams: blockParams}
	return nil
}

// parseBlockBody parses the program and any else branches of bs,
// stopping in front of the closing mustache.
func (p *parser) parseBlockBody(bs *BlockStatement) error {
	start, off := p.position(), p.pos
	body, err := p.parseStatements(scope{kind: scopeBlock})
	if err != nil {
		return err
	}
	bs.Program.Body = body
	bs.Program.Location = p.loc(start, off)

	if p.peekMustache() != mustacheElse {
		return nil
	}

	elseStart, elseOff := p.position(), p.pos
	p.advance(2)
	if p.peek() == '~' {
		p.advance(1)
	}
	p.skipSpace()
	p.advance(len("else"))
	p.skipSpace()

	if p.hasPrefix("}}") || p.hasPrefix("~}}") {
		if _, err := p.parseMustacheClose(false); err != nil {
			return err
		}
		bs.elseSource = p.src[elseOff:p.pos]

		inverseStart, inverseOff := p.position(), p.pos
		body, err := p.parseStatements(scope{kind: scopeBlock})
		if err != nil {
			return err
		}
		if p.peekMustache() == mustacheElse {
			return p.errorf("unexpected {{else}} after {{else}}")
		}
		bs.Inverse = &Block{Body: body, Location: p.loc(inverseStart, inverseOff)}
		return nil
	}

	inner := &BlockStatement{Chained: true}
	if err := p.parseBlockOpen(inner); err != nil {
		return err
	}
	if err := p.parseBlockBody(inner); err != nil {
		return err
	}
	inner.Location = p.loc(elseStart, elseOff)
	bs.Inverse = &Block{Body: []Statement{inner}, Chained: true, Location: inner.Location}
	return nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTagStart(c byte) bool {
	return isLetter(c) || c == '@' || c == ':'
}

// isIDChar reports whether c can appear in a hash key.
func isIDChar(c byte) bool {
	if c == 0 || isSpace(c) {
		return false
	}
	return !strings.ContainsRune("=~}{)(|\"'!#%&,./;<>@[\\]^`", rune(c))
}

// isPathChar reports whether c can appear in a path expression.
func isPathChar(c byte) bool {
	return isIDChar(c) || c == '.' || c == '@' || c == '/'
}
