/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package template

import "fmt"

// Position is a point in template source.
// Line is 1-based, Column is 0-based, matching Glimmer.
type Position struct {
	Line   int
	Column int
}

// String returns the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// SourceLocation is the source range of a node.
// Parsed nodes carry byte offsets into the source they came from;
// nodes made by the builders are synthetic and carry positions only.
type SourceLocation struct {
	Start Position
	End   Position

	startOffset int
	endOffset   int
	synthetic   bool
}

// IsSynthetic reports whether the location was made up rather than parsed.
// Synthetic nodes have no source text.
func (l SourceLocation) IsSynthetic() bool {
	return l.synthetic
}

// Offsets returns the byte range of the node in its source.
// ok is false for synthetic locations.
func (l SourceLocation) Offsets() (start, end int, ok bool) {
	if l.synthetic {
		return 0, 0, false
	}
	return l.startOffset, l.endOffset, true
}

// String returns the location as "line:column-line:column".
func (l SourceLocation) String() string {
	return l.Start.String() + "-" + l.End.String()
}

// SyntheticLoc returns a synthetic location spanning start to end.
func SyntheticLoc(start, end Position) SourceLocation {
	return SourceLocation{Start: start, End: end, synthetic: true}
}

func sourceLoc(start, end Position, startOffset, endOffset int) SourceLocation {
	return SourceLocation{
		Start:       start,
		End:         end,
		startOffset: startOffset,
		endOffset:   endOffset,
	}
}
