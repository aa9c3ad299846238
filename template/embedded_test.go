/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package template

import "testing"

func TestFindEmbedded(t *testing.T) {
	src := "let a = <template>hi</template>;\nlet b = <template>\n  <p></p>\n</template>;\nlet c = <templates>x</templates>;\n"

	regions := FindEmbedded(src)
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %d: %+v", len(regions), regions)
	}

	first := regions[0]
	if got := src[first.Start:first.End]; got != "hi" {
		t.Errorf("unexpected first region %q", got)
	}
	if first.Line != 1 || first.Column != 18 {
		t.Errorf("expected first region at 1:18, got %d:%d", first.Line, first.Column)
	}

	second := regions[1]
	if got := src[second.Start:second.End]; got != "\n  <p></p>\n" {
		t.Errorf("unexpected second region %q", got)
	}
	if second.Line != 2 || second.Column != 18 {
		t.Errorf("expected second region at 2:18, got %d:%d", second.Line, second.Column)
	}

	tmpl, err := ParseWithOptions(src[second.Start:second.End], second.Options())
	if err != nil {
		t.Fatal(err)
	}
	var el *ElementNode
	for _, stmt := range tmpl.Body {
		if e, ok := stmt.(*ElementNode); ok {
			el = e
		}
	}
	if el == nil {
		t.Fatal("expected an element")
	}
	if want := (Position{Line: 3, Column: 2}); el.Loc().Start != want {
		t.Errorf("expected element at %s, got %s", want, el.Loc().Start)
	}
}

func TestFindEmbedded_Unterminated(t *testing.T) {
	if regions := FindEmbedded("a = <template><p></p>"); len(regions) != 0 {
		t.Errorf("expected no regions, got %+v", regions)
	}
}

func TestIsEmbeddedFile(t *testing.T) {
	tests := map[string]bool{
		"a.gjs":   true,
		"b.gts":   true,
		"c.hbs":   false,
		"d.js":    false,
		"gjs.hbs": false,
	}
	for path, want := range tests {
		if got := IsEmbeddedFile(path); got != want {
			t.Errorf("IsEmbeddedFile(%q) = %v, want %v", path, got, want)
		}
	}
}
