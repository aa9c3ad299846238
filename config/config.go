/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config loads attrorder project configuration.
package config

import (
	"fmt"
	"path/filepath"
	"slices"

	"bennypowers.dev/attrorder/ordering"
)

// Config is the contents of .config/attrorder.{yaml,yml,json}.
type Config struct {
	// Files are the templates to lint: paths, directories or globs,
	// relative to the project root.
	Files []string `yaml:"files" json:"files"`

	// Ignore excludes matching files. Patterns are matched against paths
	// relative to the project root.
	Ignore []string `yaml:"ignore" json:"ignore"`

	// Rules maps a rule name to its raw setting.
	Rules map[string]any `yaml:"rules" json:"rules"`
}

// DefaultFiles are linted when neither the config nor the command line
// names any files.
var DefaultFiles = []string{"**/*.hbs", "**/*.handlebars", "**/*.gjs", "**/*.gts"}

// DefaultIgnore is always applied in addition to Ignore.
var DefaultIgnore = []string{"**/node_modules/**", "**/dist/**", "**/tmp/**"}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Files: slices.Clone(DefaultFiles),
	}
}

// RuleConfig parses the attribute-order setting. A missing setting means
// the defaults; a disabled rule returns ordering.ErrDisabled.
func (c *Config) RuleConfig() (ordering.Config, error) {
	raw, ok := c.Rules[ordering.RuleName]
	if !ok {
		return ordering.DefaultConfig(), nil
	}
	cfg, err := ordering.ParseConfig(raw)
	if err != nil {
		return ordering.Config{}, fmt.Errorf("rules.%s: %w", ordering.RuleName, err)
	}
	return cfg, nil
}

// IsTemplate reports whether path has a template extension the linter reads.
func IsTemplate(path string) bool {
	switch filepath.Ext(path) {
	case ".hbs", ".handlebars", ".gjs", ".gts":
		return true
	}
	return false
}
