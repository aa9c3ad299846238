/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package ordering checks and fixes the order of the tokens in an element's
// opening tag and in the hash of a mustache or block statement.
//
// Tokens are grouped into categories (arguments, attributes, modifiers,
// ...attributes and comments). Categories must appear in a configured order,
// and tokens within a category must be alphabetized. Violations are either
// reported as diagnostics or fixed by rebuilding the node.
package ordering

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/attrorder/template"
)

// Category is the kind of a token in an opening tag or hash.
type Category string

// Token categories.
const (
	Arguments     Category = "arguments"
	Attributes    Category = "attributes"
	Modifiers     Category = "modifiers"
	Splattributes Category = "splattributes"
	Comments      Category = "comments"
)

// Categories lists every category.
var Categories = []Category{Arguments, Attributes, Modifiers, Splattributes, Comments}

// Title returns the capitalized category name used in messages.
func (c Category) Title() string {
	// Casers are stateful, so one is made per call.
	return cases.Title(language.English).String(string(c))
}

// SuperCategory returns the layout group of c. Arguments, attributes and
// ...attributes all live in an element's attribute list.
func (c Category) SuperCategory() Category {
	switch c {
	case Arguments, Attributes, Splattributes:
		return Attributes
	}
	return c
}

// Configurable reports whether c may appear in a configured order.
func (c Category) Configurable() bool {
	return c == Arguments || c == Attributes || c == Modifiers
}

// Classify maps a raw token node to its category by syntactic shape:
// comments first, then nameless tokens (modifiers), then by name prefix.
func Classify(node template.Node) Category {
	switch n := node.(type) {
	case *template.MustacheCommentStatement:
		return Comments
	case *template.AttrNode:
		return classifyName(n.Name)
	case *template.HashPair:
		return classifyName(n.Key)
	}
	return Modifiers
}

func classifyName(name string) Category {
	switch {
	case strings.HasPrefix(name, "@"):
		return Arguments
	case strings.HasPrefix(name, "..."):
		return Splattributes
	}
	return Attributes
}
