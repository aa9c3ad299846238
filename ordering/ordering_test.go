/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package ordering

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/attrorder/template"
)

// tokens builds single-line tokens at the given columns, in order.
func tokens(fields ...any) []*Token {
	var out []*Token
	for i := 0; i+2 < len(fields); i += 3 {
		out = append(out, &Token{
			Category: fields[i].(Category),
			Name:     fields[i+1].(string),
			Source:   fields[i+1].(string),
			Line:     1,
			Column:   fields[i+2].(int),
			index:    len(out),
		})
	}
	return out
}

func names(ts []*Token) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name
	}
	return out
}

func TestClassify(t *testing.T) {
	loc := template.Loc(1, 0, 1, 1)
	tests := []struct {
		name string
		node template.Node
		want Category
	}{
		{"argument", template.Attr("@value", nil, loc), Arguments},
		{"attribute", template.Attr("class", nil, loc), Attributes},
		{"splattributes", template.Attr("...attributes", nil, loc), Splattributes},
		{"modifier", template.ElementModifier(template.PathExpr("on", loc), nil, nil, template.StripFlags{}, loc), Modifiers},
		{"comment", template.MustacheComment(" note ", false, loc), Comments},
		{"hash pair", template.Pair("title", template.PathExpr("x", loc), loc), Attributes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.node))
		})
	}
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "Splattributes", Splattributes.Title())
	assert.Equal(t, Attributes, Arguments.SuperCategory())
	assert.Equal(t, Attributes, Splattributes.SuperCategory())
	assert.Equal(t, Modifiers, Modifiers.SuperCategory())
	assert.Equal(t, Comments, Comments.SuperCategory())
	assert.True(t, Arguments.Configurable())
	assert.False(t, Splattributes.Configurable())
	assert.False(t, Comments.Configurable())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "foo", normalize("@foo"))
	assert.Equal(t, "attributes", normalize("...attributes"))
	assert.Equal(t, "on", normalize("on"))
	assert.Equal(t, "", normalize("@@"))
}

func TestGroup(t *testing.T) {
	groups := GroupTokens(tokens(
		Attributes, "b", 5,
		Arguments, "@z", 11,
		Attributes, "a", 17,
		Attributes, "c", 23,
	))

	require.Len(t, groups, len(Categories))
	attrs := groups[Attributes]
	assert.True(t, attrs.Exists())
	assert.Equal(t, []int{5, 17, 23}, attrs.Positions())

	first, ok := attrs.FirstPosition()
	assert.True(t, ok)
	assert.Equal(t, 5, first)
	last, ok := attrs.LastPosition()
	assert.True(t, ok)
	assert.Equal(t, 23, last)
	assert.Equal(t, "b", attrs.First().Name)
	assert.Equal(t, "c", attrs.Last().Name)

	i, ok := attrs.FirstUnalphabetizedIndex()
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = groups[Arguments].FirstUnalphabetizedIndex()
	assert.False(t, ok)

	mods := groups[Modifiers]
	assert.False(t, mods.Exists())
	_, ok = mods.FirstPosition()
	assert.False(t, ok)
	_, ok = mods.LastPosition()
	assert.False(t, ok)
	assert.Nil(t, mods.Last())
}

func TestGroup_PositionIsLineTimesColumn(t *testing.T) {
	a := &Token{Category: Attributes, Name: "a", Line: 2, Column: 3}
	b := &Token{Category: Attributes, Name: "b", Line: 3, Column: 2, index: 1}
	assert.Equal(t, 6, a.Position())
	assert.Equal(t, 6, b.Position())
	assert.Negative(t, compareSource(a, b), "ties break on line")
}

func TestGroup_NormalizedAlphabetization(t *testing.T) {
	g := &Group{Category: Arguments, Tokens: tokens(Arguments, "@a", 5, Arguments, "@B", 10)}
	i, ok := g.FirstUnalphabetizedIndex()
	assert.True(t, ok, "comparison is byte-wise")
	assert.Equal(t, 1, i)
}

func TestResolveOrder(t *testing.T) {
	tests := []struct {
		name   string
		tokens []*Token
		first  bool
	}{
		{"no splattributes", tokens(Attributes, "a", 5), false},
		{"only splattributes", tokens(Splattributes, "...attributes", 5), false},
		{"at the end", tokens(Attributes, "a", 5, Splattributes, "...attributes", 11), false},
		{"at the start", tokens(Splattributes, "...attributes", 5, Attributes, "a", 19), true},
		{"before attributes", tokens(Arguments, "@a", 5, Splattributes, "...attributes", 12, Attributes, "b", 26), true},
		{"after attributes", tokens(Attributes, "a", 5, Splattributes, "...attributes", 11, Modifiers, "m", 25), false},
		{"first with modifiers only", tokens(Splattributes, "...attributes", 5, Modifiers, "m", 19), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := ResolveOrder(DefaultOrder, GroupTokens(tt.tokens))
			require.Len(t, order, 4)
			if tt.first {
				assert.Equal(t, AppliedOrder{Splattributes, Arguments, Attributes, Modifiers}, order)
			} else {
				assert.Equal(t, AppliedOrder{Arguments, Attributes, Modifiers, Splattributes}, order)
			}
		})
	}
}

func TestAppliedOrder_Rank(t *testing.T) {
	order := AppliedOrder{Splattributes, Modifiers, Arguments, Attributes}
	assert.Equal(t, 0, order.Rank(Splattributes))
	assert.Equal(t, 3, order.Rank(Attributes))
	assert.Equal(t, -1, order.Rank(Comments))
}

func TestIsSandwiched(t *testing.T) {
	tests := []struct {
		name   string
		tokens []*Token
		want   bool
	}{
		{"between", tokens(Arguments, "@a", 5, Splattributes, "...attributes", 12, Attributes, "b", 26), true},
		{"leading", tokens(Splattributes, "...attributes", 5, Attributes, "b", 19), false},
		{"trailing", tokens(Attributes, "b", 5, Splattributes, "...attributes", 11), false},
		{"absent", tokens(Attributes, "b", 5, Attributes, "a", 11), false},
		{"leading comment", tokens(Comments, "c", 5, Splattributes, "...attributes", 12, Attributes, "b", 26), true},
		{"trailing comment", tokens(Attributes, "b", 5, Splattributes, "...attributes", 11, Comments, "c", 25), true},
		{"comment before leading", tokens(Splattributes, "...attributes", 5, Comments, "c", 19, Attributes, "b", 27), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSandwiched(GroupTokens(tt.tokens)))
		})
	}
}

func TestDetect_Ranks(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name   string
		tokens []*Token
		want   []Violation
	}{
		{
			name:   "compliant",
			tokens: tokens(Arguments, "@a", 5, Attributes, "b", 10, Modifiers, "c", 15),
		},
		{
			name:   "rank 0 after two later ranks",
			tokens: tokens(Attributes, "b", 5, Modifiers, "c", 10, Arguments, "@a", 15),
			want: []Violation{
				{Kind: Misordered, Category: Arguments, Direction: Before, Others: []Category{Attributes, Modifiers}},
				{Kind: Misordered, Category: Attributes, Direction: After, Others: []Category{Arguments}},
			},
		},
		{
			name:   "rank 1 before rank 0",
			tokens: tokens(Attributes, "b", 5, Arguments, "@a", 10),
			want: []Violation{
				{Kind: Misordered, Category: Arguments, Direction: Before, Others: []Category{Attributes}},
				{Kind: Misordered, Category: Attributes, Direction: After, Others: []Category{Arguments}},
			},
		},
		{
			name:   "rank 2 before rank 1",
			tokens: tokens(Modifiers, "m", 5, Attributes, "b", 10),
			want: []Violation{
				{Kind: Misordered, Category: Attributes, Direction: Before, Others: []Category{Modifiers}},
				{Kind: Misordered, Category: Modifiers, Direction: After, Others: []Category{Attributes}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := GroupTokens(tt.tokens)
			got := Detect(cfg, groups, ResolveOrder(cfg.Order, groups))
			require.Len(t, got, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want.Kind, got[i].Kind)
				assert.Equal(t, want.Category, got[i].Category)
				assert.Equal(t, want.Direction, got[i].Direction)
				assert.Equal(t, want.Others, got[i].Others)
			}
		})
	}
}

func TestDetect_ReportedToken(t *testing.T) {
	cfg := DefaultConfig()
	groups := GroupTokens(tokens(Attributes, "b", 5, Arguments, "@x", 10, Arguments, "@y", 15))
	got := Detect(cfg, groups, ResolveOrder(cfg.Order, groups))
	require.Len(t, got, 2)

	assert.Equal(t, "@y", got[0].Token.Name, "before reports the category's last token")
	assert.Equal(t, "b", got[1].Token.Name, "after reports the category's first token")
}

func TestSort(t *testing.T) {
	order := AppliedOrder{Arguments, Attributes, Modifiers, Splattributes}
	input := tokens(
		Splattributes, "...attributes", 5,
		Modifiers, "on", 19,
		Attributes, "b", 24,
		Attributes, "a", 30,
		Arguments, "@z", 36,
	)
	snapshot := names(input)

	assert.Equal(t, []string{"@z", "a", "b", "on", "...attributes"}, names(Sort(input, order, true)))
	assert.Equal(t, []string{"@z", "b", "a", "on", "...attributes"}, names(Sort(input, order, false)))
	assert.Equal(t, snapshot, names(input), "input is not reordered")
}

func TestSort_Comments(t *testing.T) {
	order := AppliedOrder{Arguments, Attributes, Modifiers, Splattributes}
	tests := []struct {
		name  string
		input []*Token
		want  []string
	}{
		{
			name:  "leading comment follows its anchor",
			input: tokens(Comments, "!c", 5, Attributes, "b", 10, Attributes, "a", 15),
			want:  []string{"a", "!c", "b"},
		},
		{
			name:  "trailing comment stays last",
			input: tokens(Attributes, "b", 5, Attributes, "a", 10, Comments, "!c", 15),
			want:  []string{"a", "b", "!c"},
		},
		{
			name:  "consecutive comments keep their order",
			input: tokens(Attributes, "b", 5, Comments, "!1", 10, Comments, "!2", 15, Arguments, "@a", 20),
			want:  []string{"!1", "!2", "@a", "b"},
		},
		{
			name:  "only comments",
			input: tokens(Comments, "!1", 5, Comments, "!2", 10),
			want:  []string{"!1", "!2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(Sort(tt.input, order, true)))
		})
	}
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want Config
	}{
		{"nil", nil, DefaultConfig()},
		{"true", true, DefaultConfig()},
		{"on", "on", DefaultConfig()},
		{"empty map", map[string]any{}, DefaultConfig()},
		{
			"alphabetize off",
			map[string]any{"alphabetize": false},
			Config{Alphabetize: false, Order: DefaultOrder},
		},
		{
			"custom order",
			map[string]any{"order": []any{"modifiers", "arguments", "attributes"}},
			Config{Alphabetize: true, Order: []Category{Modifiers, Arguments, Attributes}},
		},
		{
			"string order",
			map[string]any{"order": []string{"attributes", "arguments", "modifiers"}},
			Config{Alphabetize: true, Order: []Category{Attributes, Arguments, Modifiers}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConfig(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseConfig_Disabled(t *testing.T) {
	for _, raw := range []any{false, "off"} {
		_, err := ParseConfig(raw)
		assert.ErrorIs(t, err, ErrDisabled)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"number", 3},
		{"unknown string", "sometimes"},
		{"unknown key", map[string]any{"sort": true}},
		{"alphabetize not bool", map[string]any{"alphabetize": "yes"}},
		{"order not list", map[string]any{"order": "arguments"}},
		{"order entry not string", map[string]any{"order": []any{"arguments", 1, "modifiers"}}},
		{"missing category", map[string]any{"order": []any{"arguments", "attributes"}}},
		{"duplicate category", map[string]any{"order": []any{"arguments", "arguments", "modifiers"}}},
		{"splattributes", map[string]any{"order": []any{"arguments", "splattributes", "modifiers"}}},
		{"unknown category", map[string]any{"order": []any{"arguments", "attributes", "helpers"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
			assert.False(t, errors.Is(err, ErrDisabled))
		})
	}
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "Attributes `a=\"2\"` is not alphabetized", UnalphabetizedMessage(Attributes, `a="2"`))
	assert.Equal(t, "Modifiers `{{m}}` must go after attributes", MisorderedMessage(Modifiers, "{{m}}", After, []Category{Attributes}))
	assert.Equal(t, "Arguments `@a` must go before attributes and modifiers",
		MisorderedMessage(Arguments, "@a", Before, []Category{Attributes, Modifiers}))
	assert.Equal(t, "Arguments `@a` must go before attributes, modifiers and splattributes",
		MisorderedMessage(Arguments, "@a", Before, []Category{Attributes, Modifiers, Splattributes}))
}
