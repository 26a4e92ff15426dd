package checker

import (
	"strings"

	"synscan/internal/diag"
	"synscan/internal/pairs"
	"synscan/internal/parsecheck"
)

// jsStatementKeywords start lines that need no terminator of their own
// under the strict semicolon policy.
var jsStatementKeywords = []string{
	"if", "else", "for", "while", "do", "switch", "case", "default",
	"try", "catch", "finally", "function", "class",
}

// jsTerminators end a line that needs no semicolon, either because it is
// complete or because the statement continues on the next line.
var jsTerminators = []string{
	";", "{", "}", ",", "(", "[", ":",
	"+", "-", "*", "/", "&&", "||", "?", "=", ".", "=>",
}

func checkJavaScript(rep diag.Reporter, doc *Document, opts Options) {
	scanJavaScript(rep, doc, opts, true)
	if opts.Validate {
		parsecheck.Validate(rep, parsecheck.JavaScript, doc.Text, len(doc.Lines))
	}
}

// checkJSON shares the JavaScript bracket scan but validates the buffer as
// one strict JSON value.
func checkJSON(rep diag.Reporter, doc *Document, opts Options) {
	scanJavaScript(rep, doc, Options{Semicolons: SemicolonsLenient}, false)
	if opts.Validate {
		parsecheck.Validate(rep, parsecheck.JSON, doc.Text, len(doc.Lines))
	}
}

func scanJavaScript(rep diag.Reporter, doc *Document, opts Options, statements bool) {
	brackets := pairs.NewDelimiters(rep, pairs.Brackets)
	for i, line := range doc.Lines {
		n := i + 1
		trimmed := strings.TrimSpace(line)
		if slashComment(trimmed) {
			continue
		}

		brackets.ScanLine(line, n)

		if !statements {
			continue
		}

		if col := assignInCondition(line, trimmed, cCondKeywords); col > 0 {
			diag.ReportWarning(rep, diag.HeurAssignInCond, n, col, msgAssignInCondition)
		}

		if vi := keywordIndex(line, "var "); vi >= 0 {
			diag.ReportWarning(rep, diag.HeurVarDeclaration, n, column(line, vi), "prefer let or const over var")
		}

		if opts.Semicolons == SemicolonsStrict && trimmed != "" &&
			!hasSuffixAny(trimmed, jsTerminators...) &&
			!hasAnyKeyword(trimmed, jsStatementKeywords) {
			diag.ReportWarning(rep, diag.HeurMissingSemicolon, n, endColumn(line), msgMissingSemicolon)
		}
	}
	brackets.Finish()
}
