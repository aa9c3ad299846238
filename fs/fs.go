/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package fs is the filesystem seam used by the linter, so templates and
// config can be read from disk or from memory in tests.
package fs

import (
	"io/fs"
	"os"
)

// FileSystem is what the linter needs from a filesystem.
// It also satisfies fs.ReadDirFS, so it can be walked with fs.WalkDir.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	// WriteFile replaces the contents of a fixed template.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	ReadDir(name string) ([]fs.DirEntry, error)
	Stat(name string) (fs.FileInfo, error)
	Exists(path string) bool

	Open(name string) (fs.File, error)
}

// OSFileSystem implements FileSystem with the os package.
type OSFileSystem struct{}

// NewOSFileSystem returns the real filesystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (f *OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile keeps the mode of an existing file and uses perm for new ones.
func (f *OSFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if info, err := os.Stat(name); err == nil {
		perm = info.Mode().Perm()
	}
	return os.WriteFile(name, data, perm)
}

func (f *OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (f *OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Exists reports whether path can be stat'ed.
func (f *OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (f *OSFileSystem) Open(name string) (fs.File, error) {
	return os.Open(name)
}
