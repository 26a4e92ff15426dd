package checker

import (
	"testing"

	"synscan/internal/diag"
	"synscan/internal/lang"
)

func TestPythonHeuristics(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []want
	}{
		{"clean function", "def f():\n    return 1\n", nil},
		{"top-level statement", "x = 1", []want{{diag.HeurIndentation, 1, 1}}},
		{"legacy print", "print 'hi'", []want{
			{diag.HeurIndentation, 1, 1},
			{diag.HeurLegacyPrint, 1, 1},
		}},
		{"assignment in if", "if x = 1:\n    pass", []want{{diag.HeurAssignInCond, 1, 6}}},
		{"comparison is fine", "if x == 1:\n    pass", nil},
		{"unclosed string", "s = \"abc", []want{
			{diag.BrkUnclosedQuote, 1, 1},
			{diag.HeurIndentation, 1, 1},
		}},
		{"comment skipped", "# it's fine", nil},
		{"indented print", "def f():\n    print x", []want{{diag.HeurLegacyPrint, 2, 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expect(t, heuristics(lang.Python, tt.text), tt.want...)
		})
	}
}

func TestPythonValidationAppendsOneError(t *testing.T) {
	res := Check(Request{
		Text:     "def f(:\n    pass\n",
		Language: lang.Python,
		Options:  Options{Validate: true},
	})
	if len(res.Diagnostics) == 0 {
		t.Fatalf("expected a validation error")
	}
	last := res.Diagnostics[len(res.Diagnostics)-1]
	if !last.IsError() || (last.Code != diag.ValSyntax && last.Code != diag.ValMissing) {
		t.Fatalf("expected validation error last, got %s", render(res.Diagnostics))
	}
	vals := 0
	for _, d := range res.Diagnostics {
		if d.Code == diag.ValSyntax || d.Code == diag.ValMissing {
			vals++
		}
	}
	if vals != 1 {
		t.Fatalf("expected exactly one validation error, got %d", vals)
	}
}

func TestPythonValidationCleanSource(t *testing.T) {
	res := Check(Request{
		Text:     "def add(a, b):\n    return a + b\n",
		Language: lang.Python,
		Options:  DefaultOptions(),
	})
	expect(t, res.Diagnostics)
}

func TestPythonValidationAcceptsMatchStatement(t *testing.T) {
	res := Check(Request{
		Text:     "match x:\n    case 1:\n        pass\n",
		Language: lang.Python,
		Options:  DefaultOptions(),
	})
	for _, d := range res.Diagnostics {
		if d.IsError() {
			t.Fatalf("unexpected error for a match statement: %s", render(res.Diagnostics))
		}
	}
}
