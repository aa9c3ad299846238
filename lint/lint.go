/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package lint runs the attribute-order rule over template files.
//
// Handlebars files are linted whole. In .gjs and .gts files each
// `<template>` region is parsed and fixed on its own, with positions
// reported in the enclosing file.
package lint

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	afs "bennypowers.dev/attrorder/fs"
	"bennypowers.dev/attrorder/internal/logger"
	"bennypowers.dev/attrorder/ordering"
	"bennypowers.dev/attrorder/template"
)

// MaxFixPasses bounds how often a file is re-fixed before giving up on
// reaching a stable result.
const MaxFixPasses = 10

// Result is the outcome of linting one file.
type Result struct {
	FilePath string
	// Diagnostics remaining after any fixes.
	Diagnostics []ordering.Diagnostic
	// Source is the file as read; Output is the file after fixing.
	Source string
	Output string
	// Passes is the number of fix passes that changed the file.
	Passes int
	// Err is set when the file could not be read, parsed or written.
	Err error
}

// Changed reports whether fixing changed the file.
func (r *Result) Changed() bool {
	return r.Output != r.Source
}

// ErrorCount returns the number of remaining problems, counting a fatal
// error as one.
func (r *Result) ErrorCount() int {
	if r.Err != nil {
		return 1
	}
	return len(r.Diagnostics)
}

// FixableCount returns the number of remaining fixable diagnostics.
func (r *Result) FixableCount() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.IsFixable {
			n++
		}
	}
	return n
}

// Linter applies one rule configuration to many files.
type Linter struct {
	Config ordering.Config
	// Fix rewrites files instead of only reporting.
	Fix bool
	// Jobs bounds concurrent files; zero means GOMAXPROCS.
	Jobs int
}

// New creates a linter.
func New(cfg ordering.Config, fix bool, jobs int) *Linter {
	return &Linter{Config: cfg, Fix: fix, Jobs: jobs}
}

// unit is one independently parsed piece of a file.
type unit struct {
	start, end int
	opts       template.ParseOptions
}

func units(path, source string) []unit {
	if !template.IsEmbeddedFile(path) {
		return []unit{{start: 0, end: len(source)}}
	}
	regions := template.FindEmbedded(source)
	out := make([]unit, len(regions))
	for i, r := range regions {
		out[i] = unit{start: r.Start, end: r.End, opts: r.Options()}
	}
	return out
}

// LintSource lints source as if read from path. In fix mode the source is
// fixed repeatedly until it stops changing, then checked again so the
// result only lists what could not be fixed.
func (l *Linter) LintSource(path, source string) (*Result, error) {
	res := &Result{FilePath: path, Source: source, Output: source}

	if l.Fix {
		for res.Passes < MaxFixPasses {
			fixed, err := l.fixSource(path, res.Output)
			if err != nil {
				return nil, err
			}
			if fixed == res.Output {
				break
			}
			res.Output = fixed
			res.Passes++
			logger.Debug("%s: fix pass %d", path, res.Passes)
		}
		if res.Passes == MaxFixPasses {
			logger.Warn("%s: still changing after %d fix passes", path, MaxFixPasses)
		}
	}

	diagnostics, err := l.checkSource(path, res.Output)
	if err != nil {
		return nil, err
	}
	res.Diagnostics = diagnostics
	return res, nil
}

func (l *Linter) parse(path, source string, u unit) (*template.Template, error) {
	tmpl, err := template.ParseWithOptions(source[u.start:u.end], u.opts)
	if err != nil {
		var perr *template.ParseError
		if errors.As(err, &perr) {
			perr.FilePath = path
		}
		return nil, err
	}
	return tmpl, nil
}

func (l *Linter) checkSource(path, source string) ([]ordering.Diagnostic, error) {
	var diagnostics []ordering.Diagnostic
	for _, u := range units(path, source) {
		tmpl, err := l.parse(path, source, u)
		if err != nil {
			return nil, err
		}
		rule := ordering.NewRule(l.Config, template.NewPrinter(source[u.start:u.end]), false)
		var found []ordering.Diagnostic
		if err := template.Walk(tmpl, rule.Visitor(&found)); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for i := range found {
			found[i].FilePath = path
		}
		diagnostics = append(diagnostics, found...)
	}
	return diagnostics, nil
}

// fixSource runs one fix pass. Units are rewritten back to front so the
// offsets of earlier units stay valid.
func (l *Linter) fixSource(path, source string) (string, error) {
	us := units(path, source)
	for i := len(us) - 1; i >= 0; i-- {
		u := us[i]
		text := source[u.start:u.end]
		tmpl, err := l.parse(path, source, u)
		if err != nil {
			return "", err
		}
		rule := ordering.NewRule(l.Config, template.NewPrinter(text), true)
		var ignored []ordering.Diagnostic
		if err := template.Walk(tmpl, rule.Visitor(&ignored)); err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
		fixed := template.Print(text, tmpl)
		if fixed == text {
			continue
		}
		var sb strings.Builder
		sb.WriteString(source[:u.start])
		sb.WriteString(fixed)
		sb.WriteString(source[u.end:])
		source = sb.String()
	}
	return source, nil
}

// LintFiles lints paths concurrently and returns one result per path, in
// order. Read, parse and write failures are recorded on the result; the
// returned error is only set when ctx is cancelled. Fixed files are
// written back through filesystem.
func (l *Linter) LintFiles(ctx context.Context, filesystem afs.FileSystem, paths []string) ([]*Result, error) {
	results := make([]*Result, len(paths))

	jobs := l.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = l.lintFile(filesystem, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (l *Linter) lintFile(filesystem afs.FileSystem, path string) *Result {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return &Result{FilePath: path, Err: fmt.Errorf("reading %s: %w", path, err)}
	}
	source := string(data)

	res, err := l.LintSource(path, source)
	if err != nil {
		return &Result{FilePath: path, Source: source, Output: source, Err: err}
	}

	if l.Fix && res.Changed() {
		if err := filesystem.WriteFile(path, []byte(res.Output), 0644); err != nil {
			res.Err = fmt.Errorf("writing %s: %w", path, err)
			return res
		}
		logger.Debug("fixed %s", path)
	}
	return res
}
