/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version reports the attrorder build version.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set at build time with -ldflags "-X bennypowers.dev/attrorder/internal/version.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildTime = "unknown"
	GitDirty  = ""
)

const (
	unknown     = "unknown"
	shortCommit = 7
)

// Build describes the running binary.
type Build struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
	Dirty     bool   `json:"dirty"`
}

// Current returns the build information of the running binary.
func Current() Build {
	return Build{
		Version:   Get(),
		GitCommit: GitCommit,
		GitTag:    GitTag,
		BuildTime: BuildTime,
		Dirty:     GitDirty == "dirty",
	}
}

// String renders the version with the commit when it is known.
func (b Build) String() string {
	if b.GitCommit == unknown || b.GitCommit == "" {
		return b.Version
	}
	return fmt.Sprintf("%s (commit: %s)", b.Version, b.GitCommit)
}

// Get returns the version: the ldflags value, then the module version
// from go install, then tag plus short commit, then "dev".
func Get() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	if GitTag == unknown || GitCommit == unknown {
		return "dev"
	}
	return fromGit(GitTag, GitCommit, GitDirty == "dirty")
}

func fromGit(tag, commit string, dirty bool) string {
	v := tag
	short := commit[:min(len(commit), shortCommit)]
	if short != "" && !strings.HasSuffix(tag, short) {
		v += "-" + short
	}
	if dirty {
		v += "-dirty"
	}
	return v
}
