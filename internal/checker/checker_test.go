package checker

import (
	"reflect"
	"strings"
	"testing"

	"synscan/internal/diag"
	"synscan/internal/lang"
)

func TestEmptyInputIsCleanForEveryLanguage(t *testing.T) {
	for _, l := range lang.All() {
		res := Check(Request{Text: "", Language: l, Options: DefaultOptions()})
		if len(res.Diagnostics) != 0 {
			t.Fatalf("%v: expected no diagnostics, got %s", l, render(res.Diagnostics))
		}
		if !res.Summary().Clean() {
			t.Fatalf("%v: empty input must be clean", l)
		}
	}
}

func TestUnknownLabelRoutesToGeneric(t *testing.T) {
	text := "int main() {\n\treturn x = 1 \n"
	res := CheckLabel("Brainfuck", text, DefaultOptions())
	for _, d := range res.Diagnostics {
		if d.Code != diag.TextTrailingSpace && d.Code != diag.TextTabUsage {
			t.Fatalf("unexpected language-specific diagnostic %v", d)
		}
	}
	expect(t, res.Diagnostics,
		want{diag.TextTrailingSpace, 2, 14},
		want{diag.TextTabUsage, 2, 1},
	)
}

func TestLabelRoutesToLanguageChecker(t *testing.T) {
	res := CheckLabel("Python (preinstalled)", "x = 1", Options{})
	expect(t, res.Diagnostics, want{diag.HeurIndentation, 1, 1})
}

func TestChecksAreIdempotent(t *testing.T) {
	samples := map[lang.Language]string{
		lang.Text:       "a \n\tb",
		lang.Python:     "x = 1\nif y = 2:\n    print 'z'",
		lang.CFamily:    "int x\nif (a = b) {\n",
		lang.Java:       "public x;\nSystem.out.println(\"x\")",
		lang.HTML:       "<div><span></div>",
		lang.JavaScript: "var a = [1, 2\n",
		lang.JSON:       "{\"a\": [1}",
		lang.CSS:        "p<q {\n  a: b: c\n",
		lang.PHP:        "echo 1",
		lang.Shell:      "x=1",
		lang.SQL:        "select 1",
		lang.Assembly:   "foo bar",
		lang.QML:        "Item {\n  a b: 1\n",
	}
	for l, text := range samples {
		first := strict(l, text)
		second := strict(l, text)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("%v: output differs between runs:\n%s\n%s", l, render(first), render(second))
		}
		if len(first) == 0 {
			t.Fatalf("%v: sample should produce diagnostics", l)
		}
	}
}

func TestEveryLanguageHasAChecker(t *testing.T) {
	for _, l := range lang.All() {
		if _, ok := table[l]; !ok {
			t.Fatalf("no checker registered for %v", l)
		}
	}
}

func TestCRLFLinesScanLikeLF(t *testing.T) {
	lf := heuristics(lang.CFamily, "int x;\nint y")
	crlf := heuristics(lang.CFamily, "int x;\r\nint y")
	if !reflect.DeepEqual(lf, crlf) {
		t.Fatalf("CRLF changed output: %s vs %s", render(lf), render(crlf))
	}
}

func TestPanickingCheckerBecomesOneError(t *testing.T) {
	bag := diag.NewBag(0)
	boom := func(diag.Reporter, *Document, Options) { panic("boom") }
	run(boom, diag.BagReporter{Bag: bag}, NewDocument("x"), Options{})
	if bag.Len() != 1 || !bag.Items()[0].IsError() || bag.Items()[0].Line != 1 {
		t.Fatalf("expected a single error at line 1, got %s", render(bag.Items()))
	}
}

func TestCheckReportingTapsEveryDiagnostic(t *testing.T) {
	tap := diag.NewBag(0)
	res := CheckReporting(Request{Text: "a \n\tb", Language: lang.Text}, diag.BagReporter{Bag: tap})
	if !reflect.DeepEqual(res.Diagnostics, tap.Items()) {
		t.Fatalf("tap saw %s, result %s", render(tap.Items()), render(res.Diagnostics))
	}
}

func TestParseSemicolonPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    SemicolonPolicy
		wantErr bool
	}{
		{"", SemicolonsLenient, false},
		{"lenient", SemicolonsLenient, false},
		{"STRICT", SemicolonsStrict, false},
		{"sometimes", SemicolonsLenient, true},
	}
	for _, tt := range tests {
		got, err := ParseSemicolonPolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("ParseSemicolonPolicy(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestKeywordIndexRespectsWordBoundaries(t *testing.T) {
	tests := []struct {
		s, kw string
		want  int
	}{
		{"double x", "do", -1},
		{"do {", "do", 0},
		{"elif x", "if", -1},
		{"} else if (x)", "else if", 2},
		{"gif = 1", "if ", -1},
		{"if x", "if ", 0},
		{"print x", "int ", -1},
		{"unsigned int x", "int ", 9},
	}
	for _, tt := range tests {
		if got := keywordIndex(tt.s, tt.kw); got != tt.want {
			t.Errorf("keywordIndex(%q, %q) = %d, want %d", tt.s, tt.kw, got, tt.want)
		}
	}
}

func TestDiagnosticLinesStayInsideDocument(t *testing.T) {
	// broken samples, each ending with unclosed input so that end-of-buffer
	// reports have to be anchored back inside the text
	samples := []string{
		"",
		"\n\n\n",
		"x = 1\nif y = 2:\n    print 'z'\ndef f(:\n",
		"int x\nif (a = b) {\n  cout << 1\n",
		"public x;\nclass A {\n  private int y\n",
		"<div><span></div>\n<p a=b>\n<ul>\n",
		"var a = [1, 2\nfunction f( {\n",
		"{\"a\": [1,\n  \"b\": \n",
		"p<q {\n  a: b: c\n",
		"<?php\necho 1\n",
		"x=1\ny = 2\n",
		"select 1\n-- c\nselect 2",
		"foo bar\n  mov eax\n",
		"import QtQuick\nItem {\n  a b: 1\n  text: \"x\n",
		"a \n\tb\n(((\n",
	}
	for _, l := range lang.All() {
		for _, text := range samples {
			lines := len(strings.Split(text, "\n"))
			for _, opts := range []Options{DefaultOptions(), {Semicolons: SemicolonsStrict, Validate: true}} {
				for _, d := range Check(Request{Text: text, Language: l, Options: opts}).Diagnostics {
					if d.Line < 1 || d.Line > lines {
						t.Fatalf("%v: line %d outside [1, %d] for %q: %v", l, d.Line, lines, text, d)
					}
					if d.Column < 0 {
						t.Fatalf("%v: negative column in %v", l, d)
					}
				}
			}
		}
	}
}
