/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ordering

import "slices"

// Group is every token of one category within one node, in source order.
type Group struct {
	Category Category
	Tokens   []*Token
}

// Exists reports whether the group has any tokens.
func (g *Group) Exists() bool {
	return len(g.Tokens) > 0
}

// Positions returns the position index of each token.
func (g *Group) Positions() []int {
	positions := make([]int, len(g.Tokens))
	for i, t := range g.Tokens {
		positions[i] = t.Position()
	}
	return positions
}

// FirstPosition returns the smallest position; ok is false for an empty group.
func (g *Group) FirstPosition() (int, bool) {
	if !g.Exists() {
		return 0, false
	}
	return slices.Min(g.Positions()), true
}

// LastPosition returns the largest position; ok is false for an empty group.
func (g *Group) LastPosition() (int, bool) {
	if !g.Exists() {
		return 0, false
	}
	return slices.Max(g.Positions()), true
}

// First returns the token with the smallest position.
func (g *Group) First() *Token {
	var first *Token
	for _, t := range g.Tokens {
		if first == nil || compareSource(t, first) < 0 {
			first = t
		}
	}
	return first
}

// Last returns the token with the largest position.
func (g *Group) Last() *Token {
	var last *Token
	for _, t := range g.Tokens {
		if last == nil || compareSource(t, last) > 0 {
			last = t
		}
	}
	return last
}

// FirstUnalphabetizedIndex returns the index of the first token whose
// normalized name sorts before its predecessor's; ok is false when the
// group is alphabetized.
func (g *Group) FirstUnalphabetizedIndex() (int, bool) {
	for i := 1; i < len(g.Tokens); i++ {
		if g.Tokens[i].normalizedName() < g.Tokens[i-1].normalizedName() {
			return i, true
		}
	}
	return 0, false
}

// Groups holds one Group per category for a node.
type Groups map[Category]*Group

// GroupTokens splits tokens by category. Every category is present.
func GroupTokens(tokens []*Token) Groups {
	groups := make(Groups, len(Categories))
	for _, c := range Categories {
		groups[c] = &Group{Category: c}
	}
	for _, t := range tokens {
		g := groups[t.Category]
		g.Tokens = append(g.Tokens, t)
	}
	return groups
}

// span returns the smallest first position and the smallest and largest
// last positions over the non-empty groups, comments included.
func (gs Groups) span() (minFirst, minLast, maxLast int, ok bool) {
	for _, c := range Categories {
		g := gs[c]
		first, exists := g.FirstPosition()
		if !exists {
			continue
		}
		last, _ := g.LastPosition()
		if !ok {
			minFirst, minLast, maxLast, ok = first, last, last, true
			continue
		}
		minFirst = min(minFirst, first)
		minLast = min(minLast, last)
		maxLast = max(maxLast, last)
	}
	return minFirst, minLast, maxLast, ok
}
