/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package template provides a Glimmer template syntax tree together with the
// parser, printer, builders and traversal needed to lint and rewrite it.
package template

import "strings"

// NodeType names the kind of a syntax tree node.
type NodeType string

// Node types, named after their Glimmer counterparts.
const (
	TemplateType                 NodeType = "Template"
	BlockType                    NodeType = "Block"
	ElementNodeType              NodeType = "ElementNode"
	AttrNodeType                 NodeType = "AttrNode"
	TextNodeType                 NodeType = "TextNode"
	ConcatStatementType          NodeType = "ConcatStatement"
	MustacheStatementType        NodeType = "MustacheStatement"
	BlockStatementType           NodeType = "BlockStatement"
	ElementModifierStatementType NodeType = "ElementModifierStatement"
	MustacheCommentStatementType NodeType = "MustacheCommentStatement"
	CommentStatementType         NodeType = "CommentStatement"
	PathExpressionType           NodeType = "PathExpression"
	SubExpressionType            NodeType = "SubExpression"
	HashType                     NodeType = "Hash"
	HashPairType                 NodeType = "HashPair"
	StringLiteralType            NodeType = "StringLiteral"
	NumberLiteralType            NodeType = "NumberLiteral"
	BooleanLiteralType           NodeType = "BooleanLiteral"
	NullLiteralType              NodeType = "NullLiteral"
	UndefinedLiteralType         NodeType = "UndefinedLiteral"
)

// Node is any syntax tree node.
type Node interface {
	Type() NodeType
	Loc() SourceLocation
}

// Statement is a node that can appear in a template or element body.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that can appear as a callee, param or hash value.
type Expression interface {
	Node
	expressionNode()
}

// AttrValue is the value of an attribute: a TextNode, a MustacheStatement
// or a ConcatStatement.
type AttrValue interface {
	Node
	attrValueNode()
}

// ConcatPart is a part of a quoted attribute value.
type ConcatPart interface {
	Node
	concatPartNode()
}

// StripFlags records `~` whitespace control on either side of a mustache.
type StripFlags struct {
	Open  bool
	Close bool
}

// Template is the root of a parsed template.
type Template struct {
	Body     []Statement
	Location SourceLocation
}

// Block is the body of a block statement or one of its else branches.
type Block struct {
	Body        []Statement
	BlockParams []string
	// Chained is set for the inverse of an `{{else if ...}}` chain, whose
	// body is the single chained BlockStatement.
	Chained  bool
	Location SourceLocation
}

// ElementNode is an HTML element or component invocation.
// Attributes holds plain attributes, @arguments and ...attributes;
// their relative order with modifiers and comments is given by location.
type ElementNode struct {
	Tag         string
	SelfClosing bool
	Attributes  []*AttrNode
	Modifiers   []*ElementModifierStatement
	Comments    []*MustacheCommentStatement
	BlockParams []string
	Children    []Statement
	Location    SourceLocation

	startTagEnd int
	endTag      string
}

// AttrNode is a name=value pair in an opening tag.
// Value is nil for valueless attributes such as `disabled` or `...attributes`.
type AttrNode struct {
	Name     string
	Value    AttrValue
	Location SourceLocation
}

// TextNode is literal text, either in a body or as an attribute value.
type TextNode struct {
	Chars    string
	Location SourceLocation
}

// ConcatStatement is a quoted attribute value that interpolates mustaches.
type ConcatStatement struct {
	Parts    []ConcatPart
	Location SourceLocation
}

// MustacheStatement is `{{path params hash}}` or `{{{path ...}}}`.
type MustacheStatement struct {
	Path     Expression
	Params   []Expression
	Hash     *Hash
	Trusting bool
	Strip    StripFlags
	Location SourceLocation
}

// BlockStatement is `{{#path params hash as |x|}}...{{/path}}`.
type BlockStatement struct {
	Path       Expression
	Params     []Expression
	Hash       *Hash
	Program    *Block
	Inverse    *Block
	OpenStrip  StripFlags
	CloseStrip StripFlags
	// Chained marks the block opened by `{{else path ...}}` inside another
	// block's inverse. It has no close tag of its own.
	Chained  bool
	Location SourceLocation

	openEnd     int
	elseSource  string
	closeSource string
}

// ElementModifierStatement is a `{{modifier ...}}` in an opening tag.
type ElementModifierStatement struct {
	Path     Expression
	Params   []Expression
	Hash     *Hash
	Strip    StripFlags
	Location SourceLocation
}

// MustacheCommentStatement is `{{! ... }}` or `{{!-- ... --}}`.
type MustacheCommentStatement struct {
	Value    string
	Long     bool
	Location SourceLocation
}

// CommentStatement is an HTML `<!-- ... -->` comment.
type CommentStatement struct {
	Value    string
	Location SourceLocation
}

// PathExpression is a reference such as `this.foo`, `@bar` or `on`.
type PathExpression struct {
	Original string
	Location SourceLocation
}

// SubExpression is `(helper params hash)`.
type SubExpression struct {
	Path     Expression
	Params   []Expression
	Hash     *Hash
	Location SourceLocation
}

// Hash is the list of key=value pairs of a call.
type Hash struct {
	Pairs    []*HashPair
	Location SourceLocation
}

// HashPair is a single key=value pair.
type HashPair struct {
	Key      string
	Value    Expression
	Location SourceLocation
}

// StringLiteral is a quoted string.
type StringLiteral struct {
	Value    string
	Location SourceLocation
}

// NumberLiteral is a numeric literal; Original keeps its source spelling.
type NumberLiteral struct {
	Value    float64
	Original string
	Location SourceLocation
}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Value    bool
	Location SourceLocation
}

// NullLiteral is `null`.
type NullLiteral struct {
	Location SourceLocation
}

// UndefinedLiteral is `undefined`.
type UndefinedLiteral struct {
	Location SourceLocation
}

func (n *Template) Type() NodeType                 { return TemplateType }
func (n *Block) Type() NodeType                    { return BlockType }
func (n *ElementNode) Type() NodeType              { return ElementNodeType }
func (n *AttrNode) Type() NodeType                 { return AttrNodeType }
func (n *TextNode) Type() NodeType                 { return TextNodeType }
func (n *ConcatStatement) Type() NodeType          { return ConcatStatementType }
func (n *MustacheStatement) Type() NodeType        { return MustacheStatementType }
func (n *BlockStatement) Type() NodeType           { return BlockStatementType }
func (n *ElementModifierStatement) Type() NodeType { return ElementModifierStatementType }
func (n *MustacheCommentStatement) Type() NodeType { return MustacheCommentStatementType }
func (n *CommentStatement) Type() NodeType         { return CommentStatementType }
func (n *PathExpression) Type() NodeType           { return PathExpressionType }
func (n *SubExpression) Type() NodeType            { return SubExpressionType }
func (n *Hash) Type() NodeType                     { return HashType }
func (n *HashPair) Type() NodeType                 { return HashPairType }
func (n *StringLiteral) Type() NodeType            { return StringLiteralType }
func (n *NumberLiteral) Type() NodeType            { return NumberLiteralType }
func (n *BooleanLiteral) Type() NodeType           { return BooleanLiteralType }
func (n *NullLiteral) Type() NodeType              { return NullLiteralType }
func (n *UndefinedLiteral) Type() NodeType         { return UndefinedLiteralType }

func (n *Template) Loc() SourceLocation                 { return n.Location }
func (n *Block) Loc() SourceLocation                    { return n.Location }
func (n *ElementNode) Loc() SourceLocation              { return n.Location }
func (n *AttrNode) Loc() SourceLocation                 { return n.Location }
func (n *TextNode) Loc() SourceLocation                 { return n.Location }
func (n *ConcatStatement) Loc() SourceLocation          { return n.Location }
func (n *MustacheStatement) Loc() SourceLocation        { return n.Location }
func (n *BlockStatement) Loc() SourceLocation           { return n.Location }
func (n *ElementModifierStatement) Loc() SourceLocation { return n.Location }
func (n *MustacheCommentStatement) Loc() SourceLocation { return n.Location }
func (n *CommentStatement) Loc() SourceLocation         { return n.Location }
func (n *PathExpression) Loc() SourceLocation           { return n.Location }
func (n *SubExpression) Loc() SourceLocation            { return n.Location }
func (n *Hash) Loc() SourceLocation                     { return n.Location }
func (n *HashPair) Loc() SourceLocation                 { return n.Location }
func (n *StringLiteral) Loc() SourceLocation            { return n.Location }
func (n *NumberLiteral) Loc() SourceLocation            { return n.Location }
func (n *BooleanLiteral) Loc() SourceLocation           { return n.Location }
func (n *NullLiteral) Loc() SourceLocation              { return n.Location }
func (n *UndefinedLiteral) Loc() SourceLocation         { return n.Location }

func (*ElementNode) statementNode()              {}
func (*TextNode) statementNode()                 {}
func (*MustacheStatement) statementNode()        {}
func (*BlockStatement) statementNode()           {}
func (*MustacheCommentStatement) statementNode() {}
func (*CommentStatement) statementNode()         {}

func (*PathExpression) expressionNode()   {}
func (*SubExpression) expressionNode()    {}
func (*StringLiteral) expressionNode()    {}
func (*NumberLiteral) expressionNode()    {}
func (*BooleanLiteral) expressionNode()   {}
func (*NullLiteral) expressionNode()      {}
func (*UndefinedLiteral) expressionNode() {}

func (*TextNode) attrValueNode()          {}
func (*MustacheStatement) attrValueNode() {}
func (*ConcatStatement) attrValueNode()   {}

func (*TextNode) concatPartNode()          {}
func (*MustacheStatement) concatPartNode() {}

// Head returns the first segment of the path, e.g. "this" for "this.foo".
func (p *PathExpression) Head() string {
	head, _, _ := strings.Cut(p.Original, ".")
	return head
}

// IsArgument reports whether the path refers to a named argument (@foo).
func (p *PathExpression) IsArgument() bool {
	return strings.HasPrefix(p.Original, "@")
}

// IsComponent reports whether the tag looks like a component invocation
// rather than a plain HTML element.
func (e *ElementNode) IsComponent() bool {
	if e.Tag == "" {
		return false
	}
	c := e.Tag[0]
	return (c >= 'A' && c <= 'Z') || c == '@' || c == ':' || strings.Contains(e.Tag, ".")
}

// IsVoid reports whether the element is an HTML void element, which has
// neither children nor a closing tag.
func (e *ElementNode) IsVoid() bool {
	return voidElements[e.Tag]
}

var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}
