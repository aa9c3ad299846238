/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	afs "bennypowers.dev/attrorder/fs"
	"bennypowers.dev/attrorder/internal/logger"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "attrorder"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json"}

// Load searches for .config/attrorder.{yaml,yml,json} in rootDir.
// Returns nil if no config is found. JSON files may contain comments.
func Load(filesystem afs.FileSystem, rootDir string) (*Config, error) {
	for _, ext := range configExtensions {
		configPath := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		if !filesystem.Exists(configPath) {
			continue
		}

		data, err := filesystem.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		cfg := &Config{}
		switch ext {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, cfg)
		case ".json":
			err = json.Unmarshal(jsonc.ToJSON(data), cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", configPath, err)
		}

		logger.Debug("loaded config from %s", configPath)
		if len(cfg.Files) == 0 {
			cfg.Files = slices.Clone(DefaultFiles)
		}
		return cfg, nil
	}

	return nil, nil
}

// LoadOrDefault returns the config, or defaults when there is none or it
// cannot be read.
func LoadOrDefault(filesystem afs.FileSystem, rootDir string) *Config {
	cfg, err := Load(filesystem, rootDir)
	if err != nil {
		logger.Warn("%v; using defaults", err)
	}
	if err != nil || cfg == nil {
		return Default()
	}
	return cfg
}

// ExpandFiles resolves patterns (or Files, when patterns is empty) into
// template paths. Plain paths are kept as given, directories are searched
// for templates and globs are matched with doublestar. Ignored paths are
// dropped. The result is sorted and free of duplicates.
func (c *Config) ExpandFiles(filesystem afs.FileSystem, rootDir string, patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = c.Files
	}

	var result []string
	for _, pattern := range patterns {
		expanded, err := expandFilePath(filesystem, rootDir, pattern)
		if err != nil {
			return nil, err
		}
		for _, path := range expanded {
			if !c.ignored(rootDir, path) {
				result = append(result, path)
			}
		}
	}

	slices.Sort(result)
	return slices.Compact(result), nil
}

func (c *Config) ignored(rootDir, path string) bool {
	rel, err := filepath.Rel(rootDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range slices.Concat(DefaultIgnore, c.Ignore) {
		if matchDoublestar(pattern, rel) {
			logger.Debug("ignoring %s (%s)", rel, pattern)
			return true
		}
	}
	return false
}

// expandFilePath expands a single path, directory or glob.
func expandFilePath(filesystem afs.FileSystem, rootDir, pattern string) ([]string, error) {
	if !filepath.IsAbs(pattern) {
		pattern = filepath.Join(rootDir, pattern)
	}

	if !containsGlob(pattern) {
		if info, err := filesystem.Stat(pattern); err == nil && info.IsDir() {
			return expandGlob(filesystem, filepath.Join(pattern, "**", "*"))
		}
		return []string{pattern}, nil
	}

	return expandGlob(filesystem, pattern)
}

// containsGlob returns true if the pattern contains glob characters.
func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// expandGlob walks the non-glob prefix of pattern and keeps template files
// that match the rest.
func expandGlob(filesystem afs.FileSystem, pattern string) ([]string, error) {
	baseDir := pattern
	for containsGlob(baseDir) {
		baseDir = filepath.Dir(baseDir)
	}

	relPattern := strings.TrimPrefix(pattern, baseDir)
	relPattern = filepath.ToSlash(strings.TrimPrefix(relPattern, string(filepath.Separator)))

	var matches []string
	err := fs.WalkDir(filesystem, baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsTemplate(path) {
			return nil
		}

		relPath := strings.TrimPrefix(path, baseDir)
		relPath = filepath.ToSlash(strings.TrimPrefix(relPath, string(filepath.Separator)))
		if matchDoublestar(relPattern, relPath) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return matches, nil
}

func matchDoublestar(pattern, path string) bool {
	matched, _ := doublestar.Match(pattern, path)
	return matched
}
