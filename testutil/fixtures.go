/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package testutil loads template fixtures and golden files for attrorder tests.
package testutil

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/attrorder/internal/mapfs"
)

// updateGolden rewrites golden files with the actual output when -update is set.
var updateGolden = flag.Bool("update", false, "update golden files with actual output")

// locate finds name under testdata, looking upward since go test runs in
// the package directory.
func locate(name string) (string, bool) {
	for _, dir := range []string{".", "..", filepath.Join("..", "..")} {
		candidate := filepath.Join(dir, "testdata", name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// NewFixtureFS loads testdata/<fixtureDir> into a MapFileSystem rooted at rootPath.
func NewFixtureFS(t *testing.T, fixtureDir string, rootPath string) *mapfs.MapFileSystem {
	t.Helper()

	fixturePath, ok := locate(fixtureDir)
	if !ok {
		t.Fatalf("Could not find fixtures at %s (tried all paths)", fixtureDir)
	}

	mfs := mapfs.New()
	err := filepath.WalkDir(fixturePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(fixturePath, path)
		if err != nil {
			return err
		}
		mfs.AddFile(filepath.ToSlash(filepath.Join(rootPath, relPath)), string(content), 0644)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to load fixtures from %s: %v", fixtureDir, err)
	}

	return mfs
}

// LoadFixtureFile reads testdata/<fixturePath>.
func LoadFixtureFile(t *testing.T, fixturePath string) []byte {
	t.Helper()

	path, ok := locate(fixturePath)
	if !ok {
		t.Fatalf("Failed to read fixture %s (tried all paths)", fixturePath)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", fixturePath, err)
	}
	return content
}

// CheckGolden compares actual with testdata/<goldenPath>, or rewrites the
// golden file when -update is set.
func CheckGolden(t *testing.T, goldenPath string, actual []byte) {
	t.Helper()

	if *updateGolden {
		target, ok := locate(goldenPath)
		if !ok {
			target = filepath.Join("testdata", goldenPath)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			t.Fatalf("Failed to create directory for golden file %s: %v", goldenPath, err)
		}
		if err := os.WriteFile(target, actual, 0644); err != nil {
			t.Fatalf("Failed to write golden file %s: %v", goldenPath, err)
		}
		t.Logf("Updated golden file: %s", target)
		return
	}

	expected := LoadFixtureFile(t, goldenPath)
	if string(expected) != string(actual) {
		t.Errorf("output does not match %s\nexpected:\n%s\nactual:\n%s", goldenPath, expected, actual)
	}
}
