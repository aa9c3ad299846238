/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package template

import "strings"

const (
	embeddedOpen  = "<template"
	embeddedClose = "</template>"
)

// Region is the content of a `<template>` tag embedded in a .gjs or .gts file.
type Region struct {
	// Start and End are byte offsets of the content, excluding the tags.
	Start int
	End   int

	// Line and Column locate Start in the enclosing file.
	Line   int
	Column int
}

// Options returns parse options that place positions in the enclosing file.
func (r Region) Options() ParseOptions {
	return ParseOptions{StartLine: r.Line, StartColumn: r.Column}
}

// FindEmbedded returns the `<template>` regions of a .gjs/.gts source in order.
// An unterminated tag ends the search.
func FindEmbedded(source string) []Region {
	var regions []Region
	line, col, scanned := 1, 0, 0

	// track advances the line/column counters to offset.
	track := func(offset int) {
		for ; scanned < offset; scanned++ {
			c := source[scanned]
			switch {
			case c == '\n':
				line++
				col = 0
			case c&0xC0 != 0x80:
				col++
			}
		}
	}

	pos := 0
	for {
		i := strings.Index(source[pos:], embeddedOpen)
		if i < 0 {
			return regions
		}
		tagStart := pos + i
		after := tagStart + len(embeddedOpen)
		if after < len(source) && source[after] != '>' && !isSpace(source[after]) {
			pos = after
			continue
		}
		gt := strings.IndexByte(source[after:], '>')
		if gt < 0 {
			return regions
		}
		start := after + gt + 1
		end := strings.Index(source[start:], embeddedClose)
		if end < 0 {
			return regions
		}
		end += start

		track(start)
		regions = append(regions, Region{Start: start, End: end, Line: line, Column: col})
		pos = end + len(embeddedClose)
	}
}

// IsEmbeddedFile reports whether path holds templates embedded in JavaScript.
func IsEmbeddedFile(path string) bool {
	return strings.HasSuffix(path, ".gjs") || strings.HasSuffix(path, ".gts")
}
