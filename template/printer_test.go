/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package template

import (
	"errors"
	"testing"
)

func TestPrint_RoundTrip(t *testing.T) {
	sources := []string{
		`<div class="a"   id=b  {{on "click" this.go}}>hi</div>`,
		"<ul>\n  {{#each items as |item|}}\n    <li>{{item}}</li>\n  {{/each}}\n</ul>\n",
		`{{#if a}}1{{else if b}}2{{else}}3{{/if}}`,
		`<Foo @bar={{baz}} ...attributes {{!-- note --}} />`,
		`<input disabled><br/>{{{raw}}}<!-- html -->`,
		`<p title="é {{x}} ü">{{~foo k='v'~}}</p>`,
		`<div {{~on "c" f~}} {{mod~}} class="x"></div>`,
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			tmpl := mustParse(t, src)
			if got := Print(src, tmpl); got != src {
				t.Errorf("round trip changed source:\nwant %q\ngot  %q", src, got)
			}
		})
	}
}

func TestPrint_ReplacedValue(t *testing.T) {
	src := `<div  id="a"   class="b">x</div>`
	tmpl := mustParse(t, src)

	err := Walk(tmpl, func(path *Path) error {
		attr, ok := path.ParentNode().(*AttrNode)
		if ok && attr.Name == "class" && path.Key == "value" {
			return path.Replace(Text("c", Loc(1, 21, 1, 24)))
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if got, want := Print(src, tmpl), `<div id="a" class="c">x</div>`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPrint_MustacheWithHash(t *testing.T) {
	src := `{{foo  bar   b=1 a=2}}`
	m := mustParse(t, src).Body[0].(*MustacheStatement)
	pairs := m.Hash.Pairs

	rebuilt := MustacheWithHash(m, NewHash([]*HashPair{pairs[1], pairs[0]}, Loc(1, 0, 1, 0)), Loc(1, 0, 1, 0))
	if got, want := Print(src, rebuilt), `{{foo bar a=2 b=1}}`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPrint_BlockWithHash(t *testing.T) {
	src := `{{#foo b=1 a=2 as |x|}}{{x}}{{else}}none{{/foo}}`
	bs := mustParse(t, src).Body[0].(*BlockStatement)
	pairs := bs.Hash.Pairs

	rebuilt := BlockWithHash(bs, NewHash([]*HashPair{pairs[1], pairs[0]}, Loc(1, 0, 1, 0)), Loc(1, 0, 1, 0))
	if got, want := Print(src, rebuilt), `{{#foo a=2 b=1 as |x|}}{{x}}{{else}}none{{/foo}}`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPrint_BuiltElement(t *testing.T) {
	el := Element("input", ElementParts{
		Attributes: []*AttrNode{
			Attr("disabled", nil, Loc(1, 19, 1, 27)),
			Attr("type", Text("text", Loc(1, 12, 1, 18)), Loc(1, 7, 1, 18)),
		},
		Comments:    []*MustacheCommentStatement{MustacheComment(" x ", false, Loc(1, 28, 1, 35))},
		SelfClosing: true,
	}, Loc(1, 0, 1, 38))

	if got, want := Print("", el), `<input type="text" disabled {{! x }} />`; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestQuoteAttr(t *testing.T) {
	tests := map[string]string{
		"plain":   `"plain"`,
		`say "hi"`: `'say "hi"'`,
		`a"b'c`:   `"a&quot;b'c"`,
	}
	for in, want := range tests {
		if got := quoteAttr(in); got != want {
			t.Errorf("quoteAttr(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSourceFor(t *testing.T) {
	src := `<div class="a"></div>`
	attr := mustParse(t, src).Body[0].(*ElementNode).Attributes[0]

	p := NewPrinter(src)
	if got, ok := p.SourceFor(attr); !ok || got != `class="a"` {
		t.Errorf("unexpected source %q (ok=%v)", got, ok)
	}
	if _, ok := p.SourceFor(Text("x", Loc(1, 0, 1, 1))); ok {
		t.Error("synthetic nodes have no source")
	}
}

func TestTagParts(t *testing.T) {
	el := mustParse(t, `<div {{! c }} b="1" {{m}} a></div>`).Body[0].(*ElementNode)
	parts := TagParts(el)

	want := []NodeType{MustacheCommentStatementType, AttrNodeType, ElementModifierStatementType, AttrNodeType}
	if len(parts) != len(want) {
		t.Fatalf("expected %d parts, got %d", len(want), len(parts))
	}
	for i, part := range parts {
		if part.Type() != want[i] {
			t.Errorf("part %d: expected %s, got %s", i, want[i], part.Type())
		}
	}
}

func TestWalk_Order(t *testing.T) {
	tmpl := mustParse(t, `<div {{m}}>{{x}}</div>`)

	var got []NodeType
	err := Walk(tmpl, func(path *Path) error {
		got = append(got, path.Node.Type())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []NodeType{
		TemplateType,
		ElementNodeType,
		ElementModifierStatementType,
		PathExpressionType,
		MustacheStatementType,
		PathExpressionType,
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("node %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestPath_ReplaceErrors(t *testing.T) {
	tmpl := mustParse(t, `<div a="1"></div>`)

	root := &Path{Node: tmpl, Index: -1}
	if err := root.Replace(Text("x", Loc(1, 0, 1, 1))); !errors.Is(err, ErrReplace) {
		t.Errorf("expected ErrReplace for the root, got %v", err)
	}

	err := Walk(tmpl, func(path *Path) error {
		if _, ok := path.Node.(*AttrNode); ok {
			return path.Replace(Text("x", Loc(1, 0, 1, 1)))
		}
		return nil
	})
	if !errors.Is(err, ErrReplace) {
		t.Errorf("expected ErrReplace for a mismatched node, got %v", err)
	}
}

func TestPosition_Before(t *testing.T) {
	a := Position{Line: 1, Column: 9}
	b := Position{Line: 2, Column: 0}
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Errorf("unexpected ordering of %s and %s", a, b)
	}
	if !(Position{Line: 2, Column: 1}).Before(Position{Line: 2, Column: 2}) {
		t.Error("columns break ties")
	}
}
