package checker

import (
	"fmt"
	"strings"
	"testing"

	"synscan/internal/diag"
	"synscan/internal/lang"
)

// want is the part of a diagnostic the checker tests pin down.
type want struct {
	code diag.Code
	line int
	col  int
}

func (w want) String() string {
	return fmt.Sprintf("%s@%d:%d", w.code.ID(), w.line, w.col)
}

func heuristics(l lang.Language, text string) []diag.Diagnostic {
	return Check(Request{Text: text, Language: l, Options: Options{}}).Diagnostics
}

func strict(l lang.Language, text string) []diag.Diagnostic {
	return Check(Request{Text: text, Language: l, Options: Options{Semicolons: SemicolonsStrict}}).Diagnostics
}

func render(diags []diag.Diagnostic) string {
	parts := make([]string, 0, len(diags))
	for _, d := range diags {
		parts = append(parts, want{d.Code, d.Line, d.Column}.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func expect(t *testing.T, got []diag.Diagnostic, exp ...want) {
	t.Helper()
	if len(got) != len(exp) {
		t.Fatalf("expected %d diagnostics, got %s", len(exp), render(got))
	}
	for i := range exp {
		g := want{got[i].Code, got[i].Line, got[i].Column}
		if g != exp[i] {
			t.Fatalf("diagnostic %d: want %s, got %s (all: %s)", i, exp[i], g, render(got))
		}
	}
}
