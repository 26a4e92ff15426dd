package pairs

import (
	"strings"
	"testing"

	"synscan/internal/diag"
)

func scan(lines []string, alpha Alphabet) []diag.Diagnostic {
	bag := diag.NewBag(0)
	CheckBalance(diag.BagReporter{Bag: bag}, lines, alpha)
	return bag.Items()
}

func TestMismatchReportedAtCloser(t *testing.T) {
	got := scan([]string{"func(a, b]"}, Brackets)
	if len(got) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(got), got)
	}
	d := got[0]
	if d.Severity != diag.SevError || d.Code != diag.BrkMismatch {
		t.Fatalf("unexpected diagnostic: %v", d)
	}
	if d.Line != 1 || d.Column != 10 {
		t.Fatalf("expected 1:10, got %d:%d", d.Line, d.Column)
	}
	if !strings.Contains(d.Message, "expected ')'") || !strings.Contains(d.Message, "found ']'") {
		t.Fatalf("unexpected message %q", d.Message)
	}
}

func TestUnclosedAnchoredAtOpener(t *testing.T) {
	got := scan([]string{"(a, (b)"}, Brackets)
	if len(got) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %v", len(got), got)
	}
	if got[0].Code != diag.BrkUnclosed || got[0].Line != 1 || got[0].Column != 1 {
		t.Fatalf("unexpected diagnostic: %v", got[0])
	}
}

func TestExtraClosing(t *testing.T) {
	got := scan([]string{"a)", "}"}, Brackets)
	if len(got) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", got)
	}
	if got[0].Code != diag.BrkExtraClosing || got[0].Column != 2 {
		t.Fatalf("unexpected first: %v", got[0])
	}
	if got[1].Line != 2 || got[1].Column != 1 {
		t.Fatalf("unexpected second: %v", got[1])
	}
}

func TestBalancedInputsProduceNothing(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"empty", nil},
		{"flat", []string{"()[]{}"}},
		{"nested", []string{"f(a[0], {b: (c)})"}},
		{"multiline", []string{"int main() {", "  if (x[1]) {", "  }", "}"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scan(tt.lines, Brackets); len(got) != 0 {
				t.Fatalf("expected no diagnostics, got %v", got)
			}
		})
	}
}

func TestBracesAlphabetIgnoresParens(t *testing.T) {
	if got := scan([]string{"a { color: rgb(1,2,3; }"}, Braces); len(got) != 0 {
		t.Fatalf("expected no diagnostics, got %v", got)
	}
}

func TestUnclosedOutermostFirst(t *testing.T) {
	got := scan([]string{"{", "  ["}, Brackets)
	if len(got) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", got)
	}
	if got[0].Line != 1 || got[1].Line != 2 {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestTagMismatch(t *testing.T) {
	bag := diag.NewBag(0)
	tags := NewTags(diag.BagReporter{Bag: bag})
	tags.Open("div", 1, 1)
	tags.Open("span", 1, 6)
	tags.Close("DIV", 1, 12)
	tags.Finish()

	items := bag.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", items)
	}
	if items[0].Code != diag.BrkTagMismatch {
		t.Fatalf("expected tag mismatch, got %v", items[0])
	}
	if !strings.Contains(items[0].Message, "</span>") {
		t.Fatalf("message should name the expected closer: %q", items[0].Message)
	}
}

func TestTagExtraAndUnclosed(t *testing.T) {
	bag := diag.NewBag(0)
	tags := NewTags(diag.BagReporter{Bag: bag})
	tags.Close("p", 1, 1)
	tags.Open("ul", 2, 3)
	tags.Finish()

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", items)
	}
	if items[0].Code != diag.BrkExtraClosingTag || items[1].Code != diag.BrkUnclosedTag {
		t.Fatalf("unexpected codes: %v", items)
	}
	if items[1].Line != 2 || items[1].Column != 3 {
		t.Fatalf("unclosed tag should anchor at opener: %v", items[1])
	}
}
