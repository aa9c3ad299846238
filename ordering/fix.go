/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ordering

import (
	"cmp"
	"slices"
)

// Sort lays tokens out in the applied order and returns a new slice; the
// input is not modified.
//
// Non-comment tokens are stably sorted by category rank, then, when
// alphabetize is set, by normalized name, then by source position.
// ...attributes has a rank of its own, so it stays on the edge the
// resolver bound it to. Comments are then put back in front of the token
// that followed them in the source.
func Sort(tokens []*Token, order AppliedOrder, alphabetize bool) []*Token {
	var sorted, comments []*Token
	for _, t := range tokens {
		if t.Category == Comments {
			comments = append(comments, t)
			continue
		}
		sorted = append(sorted, t)
	}

	slices.SortStableFunc(sorted, func(a, b *Token) int {
		if c := cmp.Compare(order.Rank(a.Category), order.Rank(b.Category)); c != 0 {
			return c
		}
		if alphabetize && a.Category != Splattributes {
			if c := cmp.Compare(a.normalizedName(), b.normalizedName()); c != 0 {
				return c
			}
		}
		return compareSource(a, b)
	})

	if len(comments) == 0 {
		return sorted
	}
	return reinsertComments(sorted, tokens, comments)
}

// reinsertComments places each comment immediately before its anchor, the
// token that followed it in the source. Comments are handled last to first
// so an anchor that is itself a comment is already placed. A comment with
// no anchor ends up at the end.
func reinsertComments(sorted, tokens, comments []*Token) []*Token {
	original := slices.Clone(tokens)
	slices.SortStableFunc(original, compareSource)
	slices.SortStableFunc(comments, compareSource)

	result := slices.Clone(sorted)
	for i := len(comments) - 1; i >= 0; i-- {
		comment := comments[i]
		at := -1
		if anchor := follower(original, comment); anchor != nil {
			at = slices.Index(result, anchor)
		}
		if at < 0 {
			result = append(result, comment)
			continue
		}
		result = slices.Insert(result, at, comment)
	}
	return result
}

// follower returns the token right after t in original, or nil.
func follower(original []*Token, t *Token) *Token {
	i := slices.Index(original, t)
	if i < 0 || i+1 >= len(original) {
		return nil
	}
	return original[i+1]
}
