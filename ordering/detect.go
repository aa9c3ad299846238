/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ordering

// ViolationKind distinguishes the two checks.
type ViolationKind int

const (
	// Unalphabetized means a category's tokens are out of alphabetical order.
	Unalphabetized ViolationKind = iota
	// Misordered means a category sits on the wrong side of another.
	Misordered
)

// Direction says where a misordered category has to move.
type Direction string

// Directions.
const (
	Before Direction = "before"
	After  Direction = "after"
)

// Violation is one finding for a node.
type Violation struct {
	Kind     ViolationKind
	Category Category
	// Token is the offending token.
	Token *Token
	// Direction and Others describe a Misordered violation.
	Direction Direction
	Others    []Category
}

// IsSandwiched reports whether ...attributes sits strictly inside the span
// of the node's other tokens. Reordering would then change which values the
// spread overrides, so the node is left alone.
func IsSandwiched(groups Groups) bool {
	s, ok := groups[Splattributes].LastPosition()
	if !ok {
		return false
	}
	minFirst, _, maxLast, _ := groups.span()
	return s > minFirst && s < maxLast
}

// Detect returns the violations of the configured categories, in
// configuration order. Empty categories never report.
func Detect(cfg Config, groups Groups, order AppliedOrder) []Violation {
	var violations []Violation
	for _, c := range cfg.Order {
		g := groups[c]
		if !g.Exists() {
			continue
		}
		if cfg.Alphabetize {
			if i, ok := g.FirstUnalphabetizedIndex(); ok {
				violations = append(violations, Violation{
					Kind:     Unalphabetized,
					Category: c,
					Token:    g.Tokens[i],
				})
			}
		}
		if v, ok := checkOrder(c, groups, order); ok {
			violations = append(violations, v)
		}
	}
	return violations
}

// checkOrder applies the per-rank placement predicates to category c.
func checkOrder(c Category, groups Groups, order AppliedOrder) (Violation, bool) {
	rank := order.Rank(c)
	g := groups[c]
	last, _ := g.LastPosition()

	at := func(r int) *Group {
		if r < 0 || r >= len(order) {
			return &Group{}
		}
		return groups[order[r]]
	}
	before := func(others ...Category) (Violation, bool) {
		return Violation{Kind: Misordered, Category: c, Token: g.Last(), Direction: Before, Others: others}, true
	}
	after := func(others ...Category) (Violation, bool) {
		return Violation{Kind: Misordered, Category: c, Token: g.First(), Direction: After, Others: others}, true
	}

	switch rank {
	case 0:
		var others []Category
		for r := 1; r < len(order); r++ {
			if first, ok := at(r).FirstPosition(); ok && last > first {
				others = append(others, order[r])
			}
		}
		if len(others) > 0 {
			return before(others...)
		}
	case 1:
		if first, ok := at(0).FirstPosition(); ok && last < first {
			return after(order[0])
		}
		if first, ok := at(2).FirstPosition(); ok && last > first {
			return before(order[2])
		}
	case 2:
		if prev, ok := at(1).LastPosition(); ok && last < prev {
			return after(order[1])
		}
		if next, ok := at(3).LastPosition(); ok && last > next {
			return before(order[3])
		}
	case 3:
		if prev, ok := at(2).LastPosition(); ok && last < prev {
			return after(order[2])
		}
	}
	return Violation{}, false
}
