/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ordering

import (
	"fmt"
	"strings"
)

// UnalphabetizedMessage formats the alphabetization diagnostic.
func UnalphabetizedMessage(c Category, source string) string {
	return fmt.Sprintf("%s `%s` is not alphabetized", c.Title(), source)
}

// MisorderedMessage formats the category-order diagnostic.
func MisorderedMessage(c Category, source string, dir Direction, others []Category) string {
	return fmt.Sprintf("%s `%s` must go %s %s", c.Title(), source, dir, joinCategories(others))
}

// Message formats v.
func (v Violation) Message() string {
	if v.Kind == Unalphabetized {
		return UnalphabetizedMessage(v.Category, v.Token.Source)
	}
	return MisorderedMessage(v.Category, v.Token.Source, v.Direction, v.Others)
}

// joinCategories renders "a", "a and b" or "a, b and c".
func joinCategories(categories []Category) string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
