/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ordering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/attrorder/template"
)

func parse(t *testing.T, src string) *template.Template {
	t.Helper()
	tmpl, err := template.Parse(src)
	require.NoError(t, err)
	return tmpl
}

func lint(t *testing.T, src string, cfg Config) []Diagnostic {
	t.Helper()
	tmpl := parse(t, src)
	rule := NewRule(cfg, template.NewPrinter(src), false)
	var diagnostics []Diagnostic
	require.NoError(t, template.Walk(tmpl, rule.Visitor(&diagnostics)))
	return diagnostics
}

func fix(t *testing.T, src string, cfg Config) string {
	t.Helper()
	tmpl := parse(t, src)
	rule := NewRule(cfg, template.NewPrinter(src), true)
	var diagnostics []Diagnostic
	require.NoError(t, template.Walk(tmpl, rule.Visitor(&diagnostics)))
	require.Empty(t, diagnostics, "fix mode reports nothing")
	return template.Print(src, tmpl)
}

func messages(diagnostics []Diagnostic) []string {
	out := make([]string, len(diagnostics))
	for i, d := range diagnostics {
		out[i] = d.Message
	}
	return out
}

func TestCheck_Examples(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		messages []string
		fixed    string
	}{
		{
			name:     "unalphabetized attributes",
			src:      `<div b="1" a="2"></div>`,
			messages: []string{"Attributes `a=\"2\"` is not alphabetized"},
			fixed:    `<div a="2" b="1"></div>`,
		},
		{
			name: "modifier before argument",
			src:  `<Foo {{mod}} @a="1" class="x" />`,
			messages: []string{
				"Arguments `@a=\"1\"` must go before modifiers",
				"Attributes `class=\"x\"` must go before modifiers",
				"Modifiers `{{mod}}` must go after attributes",
			},
			fixed: `<Foo @a="1" class="x" {{mod}} />`,
		},
		{
			name:  "leading splattributes",
			src:   `<div ...attributes @a="1" class="x"></div>`,
			fixed: `<div ...attributes @a="1" class="x"></div>`,
		},
		{
			name:     "statement hash pairs",
			src:      `{{foo b=1 a=2}}`,
			messages: []string{"Attributes `a=2` is not alphabetized"},
			fixed:    `{{foo a=2 b=1}}`,
		},
		{
			name: "modifier keeps whitespace control",
			src:  `<div {{~on "c" f~}} class="x"></div>`,
			messages: []string{
				"Attributes `class=\"x\"` must go before modifiers",
				"Modifiers `{{~on \"c\" f~}}` must go after attributes",
			},
			fixed: `<div class="x" {{~on "c" f~}}></div>`,
		},
		{
			name:     "comment stays with its attribute",
			src:      `<div {{! about b }} b="1" a="2"></div>`,
			messages: []string{"Attributes `a=\"2\"` is not alphabetized"},
			fixed:    `<div a="2" {{! about b }} b="1"></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diagnostics := lint(t, tt.src, DefaultConfig())
			if len(tt.messages) == 0 {
				assert.Empty(t, diagnostics)
			} else {
				assert.Equal(t, tt.messages, messages(diagnostics))
			}
			for _, d := range diagnostics {
				assert.True(t, d.IsFixable)
				assert.Equal(t, RuleName, d.Rule)
			}
			assert.Equal(t, tt.fixed, fix(t, tt.src, DefaultConfig()))
		})
	}
}

func TestCheck_Sandwiched(t *testing.T) {
	for _, src := range []string{
		`<div @a="1" ...attributes class="x"></div>`,
		`<div class="x" ...attributes @a="1"></div>`,
		`<div z="1" ...attributes a="2" {{mod}}></div>`,
		`<div {{! start }} ...attributes b="1" a="2"></div>`,
		`<div b="1" a="2" ...attributes {{! end }}></div>`,
	} {
		t.Run(src, func(t *testing.T) {
			assert.Empty(t, lint(t, src, DefaultConfig()))
			assert.Equal(t, src, fix(t, src, DefaultConfig()))
		})
	}
}

func TestCheck_TrailingSplattributes(t *testing.T) {
	src := `<div class="x" {{mod}} @a="1" ...attributes></div>`

	diagnostics := lint(t, src, DefaultConfig())
	assert.Contains(t, messages(diagnostics), "Arguments `@a=\"1\"` must go before attributes and modifiers")
	assert.Equal(t, `<div @a="1" class="x" {{mod}} ...attributes></div>`, fix(t, src, DefaultConfig()))
}

func TestCheck_CustomOrder(t *testing.T) {
	cfg := Config{Alphabetize: true, Order: []Category{Modifiers, Attributes, Arguments}}
	src := `<Foo @a="1" class="x" {{mod}} />`

	diagnostics := lint(t, src, cfg)
	assert.Equal(t, []string{
		"Modifiers `{{mod}}` must go before attributes and arguments",
	}, messages(diagnostics)[:1])
	assert.Equal(t, `<Foo {{mod}} class="x" @a="1" />`, fix(t, src, cfg))
}

func TestCheck_AlphabetizeOff(t *testing.T) {
	cfg := Config{Alphabetize: false, Order: DefaultOrder}
	src := `<div b="1" a="2" {{on "click" this.go}}></div>`

	assert.Empty(t, lint(t, src, cfg))
	assert.Equal(t, src, fix(t, src, cfg))
}

func TestCheck_AlphabetizesModifiersAndArguments(t *testing.T) {
	src := `<Foo @b="1" @a="2" {{z}} {{y}} />`

	assert.Equal(t, []string{
		"Arguments `@a=\"2\"` is not alphabetized",
		"Modifiers `{{y}}` is not alphabetized",
	}, messages(lint(t, src, DefaultConfig())))
	assert.Equal(t, `<Foo @a="2" @b="1" {{y}} {{z}} />`, fix(t, src, DefaultConfig()))
}

func TestCheck_Skips(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"compliant element", `<div class="a" id="b" {{on "click" this.go}}></div>`},
		{"no tokens", `<div></div>`},
		{"sub-expression callee", `{{(helper) b=1 a=2}}`},
		{"text only", `hello`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, lint(t, tt.src, DefaultConfig()))
		})
	}
}

func TestCheck_SkipsSyntheticNodes(t *testing.T) {
	src := `<div b="1" a="2"></div>`
	tmpl := parse(t, src)
	el := tmpl.Body[0].(*template.ElementNode)
	rebuilt := RebuildElement(el, TokensFromElement(el, template.NewPrinter(src)))
	tmpl.Body[0] = rebuilt

	rule := NewRule(DefaultConfig(), template.NewPrinter(src), false)
	var diagnostics []Diagnostic
	require.NoError(t, template.Walk(tmpl, rule.Visitor(&diagnostics)))
	assert.Empty(t, diagnostics)
}

func TestCheck_NestedNodes(t *testing.T) {
	src := `<div b="1" a="2"><span class={{helper y=1 x=2}} {{mod}} id="i"></span></div>`

	assert.Equal(t, []string{
		"Attributes `a=\"2\"` is not alphabetized",
		"Attributes `id=\"i\"` must go before modifiers",
		"Modifiers `{{mod}}` must go after attributes",
		"Attributes `x=2` is not alphabetized",
	}, messages(lint(t, src, DefaultConfig())))

	assert.Equal(t,
		`<div a="2" b="1"><span class={{helper x=2 y=1}} id="i" {{mod}}></span></div>`,
		fix(t, src, DefaultConfig()))
}

func TestCheck_BlockStatement(t *testing.T) {
	src := `{{#let b=1 a=2 as |x|}}{{x}}{{else}}none{{/let}}`

	assert.Equal(t, []string{"Attributes `a=2` is not alphabetized"}, messages(lint(t, src, DefaultConfig())))
	assert.Equal(t, `{{#let a=2 b=1 as |x|}}{{x}}{{else}}none{{/let}}`, fix(t, src, DefaultConfig()))
}

func TestCheck_DiagnosticLocation(t *testing.T) {
	diagnostics := lint(t, `<div b="1" a="2"></div>`, DefaultConfig())
	require.Len(t, diagnostics, 1)

	d := diagnostics[0]
	assert.Equal(t, 1, d.Line)
	assert.Equal(t, 11, d.Column)
	assert.Equal(t, 1, d.EndLine)
	assert.Equal(t, 16, d.EndColumn)
	assert.Equal(t, `<div b="1" a="2"></div>`, d.Source)
	assert.Equal(t, "1:11: Attributes `a=\"2\"` is not alphabetized (attribute-order)", d.Error())
}

func TestFix_Idempotent(t *testing.T) {
	sources := []string{
		`<div b="1" a="2"></div>`,
		`<Foo {{mod}} @a="1" class="x" />`,
		`<Foo {{! one }} class="x" {{! two }} @b="1" @a="2" {{mod}} ...attributes />`,
		`<input ...attributes {{on "input" this.set}} type="text" @value={{this.v}} disabled>`,
		`{{foo (bar) z=1 y=2}}`,
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			once := fix(t, src, DefaultConfig())
			assert.Empty(t, lint(t, once, DefaultConfig()), "fixed output %q still reports", once)
			assert.Equal(t, once, fix(t, once, DefaultConfig()))
		})
	}
}

func TestFix_KeepsLayout(t *testing.T) {
	src := "<ul b=\"1\" a=\"2\" as |item|>\n  <li>{{item}}</li>\n</ul>"

	assert.Equal(t,
		"<ul a=\"2\" b=\"1\" as |item|>\n  <li>{{item}}</li>\n</ul>",
		fix(t, src, DefaultConfig()))
}
