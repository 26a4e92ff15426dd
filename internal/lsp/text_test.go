package lsp

import (
	"testing"

	"github.com/sourcegraph/go-lsp"

	"synscan/internal/diag"
)

func TestApplyChanges(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		changes []lsp.TextDocumentContentChangeEvent
		want    string
	}{
		{
			name:    "full replace",
			text:    "old",
			changes: []lsp.TextDocumentContentChangeEvent{{Text: "new"}},
			want:    "new",
		},
		{
			name: "insert at start of second line",
			text: "one\ntwo\n",
			changes: []lsp.TextDocumentContentChangeEvent{{
				Range: &lsp.Range{Start: lsp.Position{Line: 1}, End: lsp.Position{Line: 1}},
				Text:  "// ",
			}},
			want: "one\n// two\n",
		},
		{
			name: "replace after astral rune",
			text: "a😀b",
			changes: []lsp.TextDocumentContentChangeEvent{{
				Range: &lsp.Range{Start: lsp.Position{Character: 3}, End: lsp.Position{Character: 4}},
				Text:  "c",
			}},
			want: "a😀c",
		},
		{
			name: "range past end clamps",
			text: "x",
			changes: []lsp.TextDocumentContentChangeEvent{{
				Range: &lsp.Range{Start: lsp.Position{Line: 5}, End: lsp.Position{Line: 6}},
				Text:  "y",
			}},
			want: "xy",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applyChanges(tt.text, tt.changes); got != tt.want {
				t.Fatalf("applyChanges = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUTF16Column(t *testing.T) {
	tests := []struct {
		line string
		col  int
		want int
	}{
		{"abc", 0, 0},
		{"abc", 1, 0},
		{"abc", 3, 2},
		{"😀x", 2, 2},
		{"é=", 2, 1},
		{"ab", 10, 2},
	}
	for _, tt := range tests {
		if got := utf16Column(tt.line, tt.col); got != tt.want {
			t.Errorf("utf16Column(%q, %d) = %d, want %d", tt.line, tt.col, got, tt.want)
		}
	}
}

func TestToLSPDiagnostic(t *testing.T) {
	lines := []string{"x = (", "😀;"}

	d := toLSPDiagnostic(diag.NewError(diag.BrkUnclosed, 1, 5, "unclosed '('"), lines)
	if d.Severity != lsp.Error || d.Source != "synscan" || d.Code != diag.BrkUnclosed.ID() {
		t.Fatalf("unexpected header fields: %+v", d)
	}
	if d.Range.Start != (lsp.Position{Line: 0, Character: 4}) || d.Range.End != (lsp.Position{Line: 0, Character: 5}) {
		t.Fatalf("unexpected range: %+v", d.Range)
	}

	d = toLSPDiagnostic(diag.NewWarning(diag.HeurMissingSemicolon, 2, 2, "w"), lines)
	if d.Severity != lsp.Warning {
		t.Fatalf("severity = %d", d.Severity)
	}
	if d.Range.Start.Character != 2 || d.Range.End.Character != 3 {
		t.Fatalf("astral rune not counted as two units: %+v", d.Range)
	}

	d = toLSPDiagnostic(diag.NewError(diag.BrkUnclosed, 1, 0, "whole line"), lines)
	if d.Range.Start.Character != 0 || d.Range.End.Character != 5 {
		t.Fatalf("unknown column should span the line: %+v", d.Range)
	}
}

func TestURIRoundTrip(t *testing.T) {
	path := uriToPath(pathToURI("/tmp/some dir/a.py"))
	if path != "/tmp/some dir/a.py" {
		t.Fatalf("round trip = %q", path)
	}
	if got := uriToPath("untitled:Untitled-1"); got != "" {
		t.Fatalf("untitled scheme mapped to %q", got)
	}
}
