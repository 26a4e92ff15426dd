package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"synscan/internal/diag"
	"synscan/internal/source"
)

func sample() []diag.Diagnostic {
	return []diag.Diagnostic{
		diag.NewError(diag.BrkMismatch, 1, 10, "mismatched delimiter: expected ')', found ']'"),
		diag.NewWarning(diag.HeurMissingSemicolon, 2, 0, "possibly missing semicolon"),
		diag.NewError(diag.BrkMismatch, 1, 10, "mismatched delimiter: expected ')', found ']'"),
	}
}

func TestProblemsKeepsOrderAndDuplicates(t *testing.T) {
	got := Problems(sample(), ProblemsOpts{})
	want := []string{
		"error: line 1, col 10: mismatched delimiter: expected ')', found ']'",
		"warning: line 2, col 0: possibly missing semicolon",
		"error: line 1, col 10: mismatched delimiter: expected ')', found ']'",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProblemsCodesAndHints(t *testing.T) {
	got := Problems(sample()[:2], ProblemsOpts{Codes: true, Hints: true})
	if got[0] != "error [BRK1002]: line 1, col 10: mismatched delimiter: expected ')', found ']' (fix: check bracket pairing)" {
		t.Fatalf("unexpected first line %q", got[0])
	}
	if !strings.HasPrefix(got[1], "warning [HEU2001]: line 2, col 0:") {
		t.Fatalf("unexpected second line %q", got[1])
	}
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		sum  diag.Summary
		want string
	}{
		{diag.Summary{}, "check passed"},
		{diag.Summary{Errors: 2, Warnings: 1}, "2 errors and 1 warning"},
		{diag.Summary{Errors: 1}, "1 error and 0 warnings"},
		{diag.Summary{Warnings: 3}, "3 warnings"},
	}
	for _, tt := range tests {
		if got := StatusLine(tt.sum); got != tt.want {
			t.Errorf("StatusLine(%+v) = %q, want %q", tt.sum, got, tt.want)
		}
	}
}

func TestPanelTitle(t *testing.T) {
	dirty := diag.Summary{Warnings: 1}
	title := PanelTitle("Problems", dirty)
	if title != "Problems ●" {
		t.Fatalf("got %q", title)
	}
	if again := PanelTitle(title, dirty); again != title {
		t.Fatalf("marker must not stack: %q", again)
	}
	if clean := PanelTitle(title, diag.Summary{}); clean != "Problems" {
		t.Fatalf("marker must be removed: %q", clean)
	}
}

func entryFor(t *testing.T, name, text string, diags ...diag.Diagnostic) Entry {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual(name, []byte(text)))
	return Entry{Path: name, Language: "javascript", File: f, Diagnostics: diags}
}

func TestPrettyCaret(t *testing.T) {
	e := entryFor(t, "a.js", "let x = (1;\n", diag.NewError(diag.BrkUnclosed, 1, 9, "unclosed delimiter: '('"))
	var buf bytes.Buffer
	if err := Pretty(&buf, []Entry{e}, PrettyOpts{Context: 2}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "a.js:1:9: error BRK1003: unclosed delimiter: '('\n" +
		"1 | let x = (1;\n" +
		"  |         ^\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyWithoutColumnAndContext(t *testing.T) {
	e := entryFor(t, "b.sql", "select 1\nselect 2\n", diag.NewWarning(diag.HeurMissingSemicolon, 2, 0, "possibly missing semicolon"))
	var buf bytes.Buffer
	if err := Pretty(&buf, []Entry{e}, PrettyOpts{Context: 1, Hints: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := "b.sql:2: warning HEU2001: possibly missing semicolon\n" +
		"1 | select 1\n" +
		"2 | select 2\n" +
		"  = fix: add a semicolon at the end of the line\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestCaretOffsetWideRunes(t *testing.T) {
	if got := caretOffset("日本x", 3); got != 4 {
		t.Fatalf("caretOffset = %d, want 4", got)
	}
	if got := caretOffset("\tx", 2); got != tabWidth {
		t.Fatalf("caretOffset with tab = %d", got)
	}
	if got := caretOffset("ab", 10); got != 2 {
		t.Fatalf("caret past end = %d", got)
	}
}

func TestShort(t *testing.T) {
	e := Entry{Path: "x.py", Diagnostics: sample()[:2]}
	var buf bytes.Buffer
	if err := Short(&buf, []Entry{e}, PathModeAuto, ""); err != nil {
		t.Fatalf("Short: %v", err)
	}
	want := "x.py:1:10: error BRK1002 mismatched delimiter: expected ')', found ']'\n" +
		"x.py:2:0: warning HEU2001 possibly missing semicolon\n"
	if buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}
}

func TestBuildReportTruncatesListButNotCounts(t *testing.T) {
	e := Entry{Path: "x.js", Language: "javascript", Diagnostics: sample()}
	rep := BuildReport([]Entry{e}, JSONOpts{Max: 1, Hints: true})
	if len(rep.Files) != 1 || len(rep.Files[0].Diagnostics) != 1 {
		t.Fatalf("unexpected shape: %+v", rep)
	}
	if rep.Errors != 2 || rep.Warnings != 1 {
		t.Fatalf("counts = %d/%d", rep.Errors, rep.Warnings)
	}
	if rep.Status != "2 errors and 1 warning" {
		t.Fatalf("status = %q", rep.Status)
	}
	if rep.Files[0].Diagnostics[0].Hint == "" {
		t.Fatalf("hint missing")
	}

	var buf bytes.Buffer
	if err := JSON(&buf, []Entry{e}, JSONOpts{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var back ReportJSON
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(back.Files[0].Diagnostics) != 3 || back.Files[0].Diagnostics[0].Code != "BRK1002" {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestSarif(t *testing.T) {
	e := Entry{Path: "x.js", Diagnostics: sample()}
	var buf bytes.Buffer
	if err := Sarif(&buf, []Entry{e}, SarifRunMeta{ToolName: "synscan", ToolVersion: "test"}); err != nil {
		t.Fatalf("Sarif: %v", err)
	}
	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID string `json:"ruleId"`
				Level  string `json:"level"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("bad envelope: %+v", log)
	}
	run := log.Runs[0]
	if len(run.Results) != 3 || run.Results[1].Level != "warning" {
		t.Fatalf("bad results: %+v", run.Results)
	}
	if len(run.Tool.Driver.Rules) != 2 || run.Tool.Driver.Rules[0].ID != "BRK1002" {
		t.Fatalf("bad rules: %+v", run.Tool.Driver.Rules)
	}
}
