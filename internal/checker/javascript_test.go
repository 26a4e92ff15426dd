package checker

import (
	"testing"

	"synscan/internal/diag"
	"synscan/internal/lang"
)

func TestJavaScriptHeuristics(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []want
	}{
		{"var declaration", "var x = 1;", []want{{diag.HeurVarDeclaration, 1, 1}}},
		{"assignment in if", "if (a = b) {\n}", []want{{diag.HeurAssignInCond, 1, 7}}},
		{"arrow function is not assignment", "if (ok) { run(() => 1) }", nil},
		{"lenient semicolons", "let x = 1\nfoo()", nil},
		{"unclosed brace", "function f() {", []want{{diag.BrkUnclosed, 1, 14}}},
		{"comment skipped", "// if (a = b) {", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expect(t, heuristics(lang.JavaScript, tt.text), tt.want...)
		})
	}
}

func TestJavaScriptStrictSemicolons(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []want
	}{
		{"missing", "let x = 1\nfoo()", []want{
			{diag.HeurMissingSemicolon, 1, 9},
			{diag.HeurMissingSemicolon, 2, 5},
		}},
		{"terminated", "const f = () => {\n  return [1, 2];\n}", nil},
		{"control lines", "if (ok)\n  go();\nelse\n  stop();", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expect(t, strict(lang.JavaScript, tt.text), tt.want...)
		})
	}
}

func TestJavaScriptValidation(t *testing.T) {
	res := Check(Request{Text: "let a = 1;\nlet b = ;\n", Language: lang.JavaScript, Options: DefaultOptions()})
	if len(res.Diagnostics) != 1 {
		t.Fatalf("expected one validation error, got %s", render(res.Diagnostics))
	}
	d := res.Diagnostics[0]
	if d.Code != diag.ValSyntax && d.Code != diag.ValMissing {
		t.Fatalf("unexpected code %s", d.Code.ID())
	}
}

func TestJSONValidationIsStrict(t *testing.T) {
	res := Check(Request{Text: "{\"a\": [1, 2], \"b\": null}\n", Language: lang.JSON, Options: DefaultOptions()})
	expect(t, res.Diagnostics)

	res = Check(Request{Text: "{\"a\": 1,}\n", Language: lang.JSON, Options: DefaultOptions()})
	expect(t, res.Diagnostics, want{diag.ValSyntax, 1, 9})

	res = Check(Request{Text: "{\n  // comment\n  \"a\": 1\n}\n", Language: lang.JSON, Options: DefaultOptions()})
	expect(t, res.Diagnostics, want{diag.ValSyntax, 2, 3})

	res = Check(Request{Text: "{\"a\": [1, 2}\n", Language: lang.JSON, Options: Options{}})
	expect(t, res.Diagnostics, want{diag.BrkMismatch, 1, 12}, want{diag.BrkUnclosed, 1, 1})
}

func TestJavaScriptValidationAcceptsPrivateFields(t *testing.T) {
	res := Check(Request{Text: "class A {\n  #x = 1;\n}\n", Language: lang.JavaScript, Options: DefaultOptions()})
	for _, d := range res.Diagnostics {
		if d.IsError() {
			t.Fatalf("unexpected error for valid class body: %s", render(res.Diagnostics))
		}
	}
}
