package parsecheck

import (
	"testing"

	"synscan/internal/diag"
)

func TestParseAcceptsValidSource(t *testing.T) {
	tests := []struct {
		name string
		g    Grammar
		src  string
	}{
		{"python", Python, "def add(a, b):\n    return a + b\n"},
		{"javascript", JavaScript, "const x = [1, 2];\nfunction f() { return x; }\n"},
		{"json", JSON, "{\"a\": [1, 2, {\"b\": null}]}\n"},
		{"json scalar", JSON, "  42  \n"},
		{"json blank", JSON, "\n\n"},
		{"python match statement", Python, "match x:\n    case 1:\n        pass\n    case _:\n        pass\n"},
		{"python walrus", Python, "if (n := len(a)) > 10:\n    print(n)\n"},
		{"javascript private field", JavaScript, "class A {\n  #x = 1;\n  get x() { return this.#x; }\n}\n"},
		{"javascript optional chaining", JavaScript, "const v = a?.b ?? 0;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(tt.g, tt.src)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if f != nil {
				t.Fatalf("unexpected finding: %+v", f)
			}
		})
	}
}

func TestParseRejectsBrokenSource(t *testing.T) {
	tests := []struct {
		name string
		g    Grammar
		src  string
	}{
		{"python", Python, "x = 1\ndef f(:\n    pass\n"},
		{"javascript", JavaScript, "let a = 1;\nlet b = ;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(tt.g, tt.src)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if f == nil {
				t.Fatalf("expected a finding")
			}
			if f.Line < 1 || f.Line > 3 {
				t.Fatalf("finding outside document: %+v", f)
			}
		})
	}
}

func TestParseJSONIsStrict(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		line, col int
	}{
		{"trailing comma", "{\"a\": 1,}", 1, 9},
		{"comment", "{\n  // note\n  \"a\": 1\n}", 2, 3},
		{"single quotes", "{'a': 1}", 1, 2},
		{"bare key", "{a: 1}", 1, 2},
		{"undefined", "undefined", 1, 1},
		{"truncated", "{\"a\": 1", 1, 8},
		{"second value", "{} {}", 1, 4},
		{"multibyte column", "[\"привет\", x]", 1, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(JSON, tt.src)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if f == nil {
				t.Fatalf("expected a finding for %q", tt.src)
			}
			if f.Line != tt.line || f.Column != tt.col {
				t.Fatalf("finding at %d:%d, want %d:%d (%s)", f.Line, f.Column, tt.line, tt.col, f.Message())
			}
			if f.Detail == "" {
				t.Fatalf("expected decoder detail in %+v", f)
			}
		})
	}
}

func TestValidateReportsAtMostOneError(t *testing.T) {
	bag := diag.NewBag(0)
	Validate(diag.BagReporter{Bag: bag}, JavaScript, "let = ;\nlet = ;\nlet = ;\n", 3)
	if bag.Len() != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", bag.Items())
	}
	d := bag.Items()[0]
	if d.Severity != diag.SevError {
		t.Fatalf("expected error severity, got %v", d.Severity)
	}
	if d.Line < 1 || d.Line > 3 {
		t.Fatalf("line out of range: %d", d.Line)
	}
}

func TestRuneColumn(t *testing.T) {
	src := "ab\nпривет x"
	// "привет " is 13 bytes: 6 two-byte runes plus a space.
	if got := runeColumn(src, 1, 13); got != 8 {
		t.Fatalf("got %d, want 8", got)
	}
	if got := runeColumn(src, 5, 3); got != 1 {
		t.Fatalf("row past end: got %d, want 1", got)
	}
}
