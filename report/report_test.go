/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fatih/color"

	"bennypowers.dev/attrorder/lint"
	"bennypowers.dev/attrorder/ordering"
	"bennypowers.dev/attrorder/testutil"
)

func init() {
	color.NoColor = true
}

func sampleResults() []*lint.Result {
	return []*lint.Result{
		{
			FilePath: "app/a.hbs",
			Source:   `<div b="1" a="2"></div>`,
			Output:   `<div b="1" a="2"></div>`,
			Diagnostics: []ordering.Diagnostic{{
				Rule:      ordering.RuleName,
				Message:   "Attributes `a=\"2\"` is not alphabetized",
				Line:      1,
				Column:    11,
				EndLine:   1,
				EndColumn: 16,
				Source:    `<div b="1" a="2"></div>`,
				IsFixable: true,
			}},
		},
		{FilePath: "app/ok.hbs", Source: "<p></p>", Output: "<p></p>"},
		{FilePath: "app/broken.hbs", Err: errors.New("1:10: unclosed opening tag <div>")},
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, sampleResults()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.CheckGolden(t, "golden/report/text.txt", buf.Bytes())
}

func TestText_Clean(t *testing.T) {
	results := []*lint.Result{
		{FilePath: "a.hbs", Source: "<a b c></a>", Output: "<a b c></a>"},
		{FilePath: "b.hbs", Source: `<i b="1" a="2"></i>`, Output: `<i a="2" b="1"></i>`},
	}

	var buf bytes.Buffer
	if err := Text(&buf, results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := buf.String(), "Fixed 1 file\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, sampleResults()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []FileResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 3 {
		t.Fatalf("expected 3 file results, got %d", len(decoded))
	}

	first := decoded[0]
	if first.ErrorCount != 1 || first.FixableErrorCount != 1 {
		t.Errorf("unexpected counts: %+v", first)
	}
	if len(first.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(first.Messages))
	}
	msg := first.Messages[0]
	if msg.RuleID != "attribute-order" || msg.Line != 1 || msg.Column != 11 || msg.Severity != 2 || !msg.Fixable {
		t.Errorf("unexpected message: %+v", msg)
	}

	if decoded[1].Messages == nil || len(decoded[1].Messages) != 0 {
		t.Errorf("expected empty message list for clean file, got %+v", decoded[1].Messages)
	}
	if !decoded[2].Messages[0].Fatal {
		t.Errorf("expected fatal message for unreadable file")
	}
	if !bytes.Contains(buf.Bytes(), []byte("<div>")) {
		t.Errorf("expected unescaped HTML in %s", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"text": FormatText, "JSON": FormatJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}
