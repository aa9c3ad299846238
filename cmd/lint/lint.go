/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package lint provides the lint command for attrorder.
package lint

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/attrorder/config"
	"bennypowers.dev/attrorder/fs"
	"bennypowers.dev/attrorder/internal/logger"
	lintlib "bennypowers.dev/attrorder/lint"
	"bennypowers.dev/attrorder/ordering"
	"bennypowers.dev/attrorder/report"
)

// ErrProblems is returned when linted files still have problems, so the
// process exits non-zero.
var ErrProblems = errors.New("problems found")

// Cmd is the lint cobra command.
var Cmd = &cobra.Command{
	Use:   "lint [files...]",
	Short: "Check attribute order in templates",
	Long: `Check that element tokens and mustache hash pairs follow the configured
category order and are alphabetized.

Files, directories and globs may be given as arguments. Without arguments,
the files listed in .config/attrorder.{yaml,yml,json} are linted.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("fix", false, "Rewrite files to fix problems")
	Cmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
	Cmd.Flags().BoolP("quiet", "q", false, "Only report files with problems")
	Cmd.Flags().IntP("jobs", "j", 0, "Files to lint in parallel (default: number of CPUs)")

	for _, name := range []string{"fix", "format", "quiet", "jobs"} {
		_ = viper.BindPFlag(name, Cmd.Flags().Lookup(name))
	}
}

func run(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(viper.GetString("format"))
	if err != nil {
		return err
	}

	filesystem := fs.NewOSFileSystem()
	cfg := config.LoadOrDefault(filesystem, ".")

	rule, err := cfg.RuleConfig()
	if errors.Is(err, ordering.ErrDisabled) {
		logger.Info("%s is disabled in config; nothing to do", ordering.RuleName)
		return nil
	}
	if err != nil {
		return err
	}

	files, err := cfg.ExpandFiles(filesystem, ".", args...)
	if err != nil {
		return fmt.Errorf("error expanding files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no template files found")
	}
	logger.Debug("linting %d files", len(files))

	linter := lintlib.New(rule, viper.GetBool("fix"), viper.GetInt("jobs"))
	results, err := linter.LintFiles(cmd.Context(), filesystem, files)
	if err != nil {
		return err
	}

	if viper.GetBool("quiet") {
		results = withProblems(results)
	}
	if err := report.Write(cmd.OutOrStdout(), format, results); err != nil {
		return err
	}

	if n := report.Summarize(results).Errors; n > 0 {
		return fmt.Errorf("%w: %d", ErrProblems, n)
	}
	return nil
}

func withProblems(results []*lintlib.Result) []*lintlib.Result {
	var out []*lintlib.Result
	for _, r := range results {
		if r.ErrorCount() > 0 {
			out = append(out, r)
		}
	}
	return out
}
