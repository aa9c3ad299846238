/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ordering

import "slices"

// AppliedOrder is the four-category order enforced for one node: the
// configured order with splattributes bound to the front or the back.
type AppliedOrder []Category

// Rank returns the index of c in the order, or -1 for comments.
func (o AppliedOrder) Rank(c Category) int {
	return slices.Index(o, c)
}

// ResolveOrder decides where splattributes goes for this node.
//
// It binds to the edge the author put it at: last when it is the last
// category or follows the attributes, first when it is the first or
// precedes them. Without it, or when ambiguous, it goes last.
func ResolveOrder(order []Category, groups Groups) AppliedOrder {
	applied := make(AppliedOrder, 0, len(order)+1)
	if splattributesFirst(groups) {
		applied = append(applied, Splattributes)
		return append(applied, order...)
	}
	applied = append(applied, order...)
	return append(applied, Splattributes)
}

func splattributesFirst(groups Groups) bool {
	s, sOK := groups[Splattributes].LastPosition()
	if !sOK {
		return false
	}
	a, aOK := groups[Attributes].LastPosition()
	_, minLast, maxLast, _ := groups.span()

	if s == maxLast || (aOK && s > a) {
		return false
	}
	return s == minLast || (aOK && s < a)
}
