/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package template

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax is wrapped by every ParseError.
var ErrSyntax = errors.New("template syntax error")

// ParseError describes malformed template source.
type ParseError struct {
	// FilePath is the file being parsed, if known.
	FilePath string
	// Line is the 1-based line of the error.
	Line int
	// Column is the 0-based column of the error.
	Column int
	// Message describes what's wrong.
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var sb strings.Builder
	if e.FilePath != "" {
		sb.WriteString(e.FilePath)
		sb.WriteString(":")
	}
	fmt.Fprintf(&sb, "%d:%d: ", e.Line, e.Column)
	sb.WriteString(e.Message)
	return sb.String()
}

// Unwrap lets errors.Is match ErrSyntax.
func (e *ParseError) Unwrap() error {
	return ErrSyntax
}
