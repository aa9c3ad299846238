/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ordering

import (
	"fmt"
	"strings"

	"bennypowers.dev/attrorder/template"
)

// RuleName identifies the rule in configuration and diagnostics.
const RuleName = "attribute-order"

// Diagnostic is a reported violation.
type Diagnostic struct {
	Rule      string
	Message   string
	FilePath  string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
	// Source is the text of the node the rule inspected.
	Source    string
	IsFixable bool
	// Node is the offending token's host node.
	Node template.Node
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	var sb strings.Builder
	if d.FilePath != "" {
		sb.WriteString(d.FilePath)
		sb.WriteString(":")
	}
	fmt.Fprintf(&sb, "%d:%d: %s", d.Line, d.Column, d.Message)
	if d.Rule != "" {
		fmt.Fprintf(&sb, " (%s)", d.Rule)
	}
	return sb.String()
}

// Rule checks one node at a time. It keeps no state between nodes, so a
// single Rule may be shared by concurrent walks over different trees as
// long as each walk has its own Source.
type Rule struct {
	Config Config
	// Fix rewrites violating nodes instead of reporting them.
	Fix bool
	// Source renders token text for messages and layout.
	Source Source
}

// NewRule creates a rule for trees printed by src.
func NewRule(cfg Config, src Source, fix bool) *Rule {
	return &Rule{Config: cfg, Fix: fix, Source: src}
}

// nodeContext is everything computed for one node. It is discarded once
// the node has been handled.
type nodeContext struct {
	node   template.Node
	tokens []*Token
	groups Groups
	order  AppliedOrder
}

// Check inspects the node at p. In report mode it returns one diagnostic
// per violation. In fix mode it replaces the node with a compliant rebuild
// and returns no diagnostics. Nodes without source text, statements whose
// callee is not a plain path and sandwiched nodes are skipped.
func (r *Rule) Check(p *template.Path) ([]Diagnostic, error) {
	nc, ok := r.context(p.Node)
	if !ok {
		return nil, nil
	}

	violations := Detect(r.Config, nc.groups, nc.order)
	if len(violations) == 0 {
		return nil, nil
	}

	if r.Fix {
		return nil, r.fix(p, nc)
	}

	source := r.Source.Print(nc.node)
	diagnostics := make([]Diagnostic, 0, len(violations))
	for _, v := range violations {
		loc := v.Token.Node.Loc()
		diagnostics = append(diagnostics, Diagnostic{
			Rule:      RuleName,
			Message:   v.Message(),
			Line:      loc.Start.Line,
			Column:    loc.Start.Column,
			EndLine:   loc.End.Line,
			EndColumn: loc.End.Column,
			Source:    source,
			IsFixable: true,
			Node:      v.Token.Node,
		})
	}
	return diagnostics, nil
}

func (r *Rule) context(node template.Node) (*nodeContext, bool) {
	if node.Loc().IsSynthetic() {
		return nil, false
	}

	var tokens []*Token
	switch n := node.(type) {
	case *template.ElementNode:
		tokens = TokensFromElement(n, r.Source)
	case *template.MustacheStatement:
		if _, ok := n.Path.(*template.PathExpression); !ok {
			return nil, false
		}
		tokens = TokensFromHash(n.Hash, r.Source)
	case *template.BlockStatement:
		if _, ok := n.Path.(*template.PathExpression); !ok {
			return nil, false
		}
		tokens = TokensFromHash(n.Hash, r.Source)
	default:
		return nil, false
	}

	if len(tokens) == 0 {
		return nil, false
	}
	for _, t := range tokens {
		if t.Synthetic() {
			return nil, false
		}
	}

	groups := GroupTokens(tokens)
	if IsSandwiched(groups) {
		return nil, false
	}
	return &nodeContext{
		node:   node,
		tokens: tokens,
		groups: groups,
		order:  ResolveOrder(r.Config.Order, groups),
	}, true
}

func (r *Rule) fix(p *template.Path, nc *nodeContext) error {
	sorted := Sort(nc.tokens, nc.order, r.Config.Alphabetize)

	var replacement template.Node
	switch n := nc.node.(type) {
	case *template.ElementNode:
		replacement = RebuildElement(n, sorted)
	default:
		replacement = RebuildStatement(n, sorted, r.Source)
	}

	if err := p.Replace(replacement); err != nil {
		return fmt.Errorf("fixing %s at %s: %w", nc.node.Type(), nc.node.Loc().Start, err)
	}
	return nil
}

// Visitor returns a template.Visitor that runs the rule on every node and
// collects the diagnostics into out.
func (r *Rule) Visitor(out *[]Diagnostic) template.Visitor {
	return func(p *template.Path) error {
		diagnostics, err := r.Check(p)
		if err != nil {
			return err
		}
		*out = append(*out, diagnostics...)
		return nil
	}
}
