/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package version

import "testing"

func TestFromGit(t *testing.T) {
	tests := []struct {
		name   string
		tag    string
		commit string
		dirty  bool
		want   string
	}{
		{"tag and commit", "v1.2.0", "0123456789abcdef", false, "v1.2.0-0123456"},
		{"tag already has commit", "v1.2.0-0123456", "0123456789abcdef", false, "v1.2.0-0123456"},
		{"short commit", "v1.2.0", "abc", false, "v1.2.0-abc"},
		{"dirty", "v1.2.0", "0123456789", true, "v1.2.0-0123456-dirty"},
		{"no commit", "v1.2.0", "", false, "v1.2.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fromGit(tt.tag, tt.commit, tt.dirty); got != tt.want {
				t.Errorf("fromGit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild_String(t *testing.T) {
	if got := (Build{Version: "v1.0.0", GitCommit: unknown}).String(); got != "v1.0.0" {
		t.Errorf("unexpected %q", got)
	}
	if got := (Build{Version: "v1.0.0", GitCommit: "abc"}).String(); got != "v1.0.0 (commit: abc)" {
		t.Errorf("unexpected %q", got)
	}
}

func TestGet_LdflagsWin(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v9.9.9"
	if got := Get(); got != "v9.9.9" {
		t.Errorf("expected ldflags version, got %q", got)
	}
	if got := Current().Version; got != "v9.9.9" {
		t.Errorf("expected Current to use Get, got %q", got)
	}
}
