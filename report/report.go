/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package report formats lint results for people and for tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"bennypowers.dev/attrorder/lint"
)

// Format selects an output format.
type Format string

// Formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want text or json)", s)
}

// Write formats results to w.
func Write(w io.Writer, format Format, results []*lint.Result) error {
	if format == FormatJSON {
		return JSON(w, results)
	}
	return Text(w, results)
}

// Summary totals a set of results.
type Summary struct {
	Files   int
	Errors  int
	Fixable int
	Fixed   int
}

// Summarize totals results.
func Summarize(results []*lint.Result) Summary {
	var s Summary
	for _, r := range results {
		s.Files++
		s.Errors += r.ErrorCount()
		s.Fixable += r.FixableCount()
		if r.Changed() {
			s.Fixed++
		}
	}
	return s
}

var (
	pathStyle    = color.New(color.Underline)
	errorStyle   = color.New(color.FgRed)
	dimStyle     = color.New(color.Faint)
	summaryStyle = color.New(color.FgRed, color.Bold)
	successStyle = color.New(color.FgGreen)
	fixableStyle = color.New(color.FgYellow)
)

// Text writes results grouped by file, one problem per line, followed by
// a summary. Files without problems are not listed.
func Text(w io.Writer, results []*lint.Result) error {
	ew := &errWriter{w: w}

	for _, r := range results {
		if r.ErrorCount() == 0 {
			continue
		}
		ew.println(pathStyle.Sprint(r.FilePath))
		if r.Err != nil {
			ew.printf("  %s  %s\n", errorStyle.Sprint("error"), r.Err)
		}
		for _, d := range r.Diagnostics {
			ew.printf("  %s  %s  %s  %s\n",
				dimStyle.Sprintf("%d:%d", d.Line, d.Column),
				errorStyle.Sprint("error"),
				d.Message,
				dimStyle.Sprint(d.Rule))
		}
		ew.println("")
	}

	s := Summarize(results)
	if s.Fixed > 0 {
		ew.println(successStyle.Sprintf("Fixed %d %s", s.Fixed, plural(s.Fixed, "file")))
	}
	if s.Errors == 0 {
		return ew.err
	}
	ew.println(summaryStyle.Sprintf("✖ %d %s", s.Errors, plural(s.Errors, "problem")))
	if s.Fixable > 0 {
		ew.println(fixableStyle.Sprintf("  %d %s potentially fixable with the `--fix` option.",
			s.Fixable, plural(s.Fixable, "problem is", "problems are")))
	}
	return ew.err
}

// plural picks the singular form for n == 1. The plural defaults to
// singular + "s".
func plural(n int, forms ...string) string {
	if n == 1 {
		return forms[0]
	}
	if len(forms) > 1 {
		return forms[1]
	}
	return forms[0] + "s"
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err == nil {
		_, e.err = fmt.Fprintf(e.w, format, args...)
	}
}

func (e *errWriter) println(s string) {
	e.printf("%s\n", s)
}

// FileResult is the JSON shape of one file's result.
type FileResult struct {
	FilePath          string    `json:"filePath"`
	Messages          []Message `json:"messages"`
	ErrorCount        int       `json:"errorCount"`
	FixableErrorCount int       `json:"fixableErrorCount"`
	Fixed             bool      `json:"fixed,omitempty"`
	Output            string    `json:"output,omitempty"`
}

// Message is the JSON shape of one problem.
type Message struct {
	RuleID    string `json:"ruleId,omitempty"`
	Severity  int    `json:"severity"`
	Message   string `json:"message"`
	Line      int    `json:"line,omitempty"`
	Column    int    `json:"column,omitempty"`
	EndLine   int    `json:"endLine,omitempty"`
	EndColumn int    `json:"endColumn,omitempty"`
	Source    string `json:"source,omitempty"`
	Fatal     bool   `json:"fatal,omitempty"`
	Fixable   bool   `json:"isFixable,omitempty"`
}

// severityError matches the numeric severity used by template linters.
const severityError = 2

// ToJSON converts results to their JSON shapes.
func ToJSON(results []*lint.Result) []FileResult {
	out := make([]FileResult, 0, len(results))
	for _, r := range results {
		fr := FileResult{
			FilePath:          r.FilePath,
			Messages:          []Message{},
			ErrorCount:        r.ErrorCount(),
			FixableErrorCount: r.FixableCount(),
			Fixed:             r.Changed(),
		}
		if r.Changed() {
			fr.Output = r.Output
		}
		if r.Err != nil {
			fr.Messages = append(fr.Messages, Message{Severity: severityError, Message: r.Err.Error(), Fatal: true})
		}
		for _, d := range r.Diagnostics {
			fr.Messages = append(fr.Messages, Message{
				RuleID:    d.Rule,
				Severity:  severityError,
				Message:   d.Message,
				Line:      d.Line,
				Column:    d.Column,
				EndLine:   d.EndLine,
				EndColumn: d.EndColumn,
				Source:    d.Source,
				Fixable:   d.IsFixable,
			})
		}
		out = append(out, fr)
	}
	return out
}

// JSON writes results as an indented JSON array.
func JSON(w io.Writer, results []*lint.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(ToJSON(results))
}
